package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radonct/pkg/config"
	"radonct/pkg/metrics"
	"radonct/pkg/phantom"
	"radonct/pkg/reconstruction"
	"radonct/pkg/visualization"
)

const (
	testSize   = 32
	testAngles = 60
)

// writeTestConfig stores a small-geometry configuration whose output
// directory lives under a fresh temp dir.
func writeTestConfig(t *testing.T, angleCount int) (configPath, dir string) {
	t.Helper()
	dir = t.TempDir()

	cfg := config.DefaultConfig()
	cfg.Geometry.ImageSize = testSize
	cfg.Geometry.AngleCount = angleCount
	cfg.Reconstruction.Workers = 2
	cfg.Output.Dir = filepath.Join(dir, "out")

	configPath = filepath.Join(dir, "radonct.yaml")
	require.NoError(t, config.SaveConfig(cfg, configPath))
	return configPath, dir
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "radonct.yaml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	_, _, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)

	out, _, err = execute(t, "--config", path, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "imageSize: 256")
	assert.Contains(t, out, "backProjector: coordinate")
}

func TestPhantomSinogramReconstruct(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)
	phantomPath := filepath.Join(dir, "phantom.bin")
	sinoPath := filepath.Join(dir, "sino.bin")
	fbpPath := filepath.Join(dir, "fbp.bin")
	bpPath := filepath.Join(dir, "bp.bin")

	_, _, err := execute(t, "-c", configPath, "phantom", "--out", phantomPath)
	require.NoError(t, err)

	_, _, err = execute(t, "-c", configPath, "sinogram", "--in", phantomPath, "--out", sinoPath)
	require.NoError(t, err)

	sino, err := visualization.LoadGrid(sinoPath)
	require.NoError(t, err)
	rows, cols := sino.Dims()
	assert.Equal(t, reconstruction.DetectorCount(testSize), rows)
	assert.Equal(t, testAngles, cols)

	_, _, err = execute(t, "-c", configPath, "reconstruct", "--in", sinoPath, "--out", fbpPath)
	require.NoError(t, err)
	_, _, err = execute(t, "-c", configPath, "reconstruct", "--in", sinoPath, "--out", bpPath, "--unfiltered")
	require.NoError(t, err)

	fbp, err := visualization.LoadGrid(fbpPath)
	require.NoError(t, err)
	bp, err := visualization.LoadGrid(bpPath)
	require.NoError(t, err)

	r, c := fbp.Dims()
	assert.Equal(t, testSize, r)
	assert.Equal(t, testSize, c)

	reference := phantom.Generate(testSize)
	fbpScore, err := metrics.Evaluate(reference, fbp)
	require.NoError(t, err)
	bpScore, err := metrics.Evaluate(reference, bp)
	require.NoError(t, err)
	assert.Less(t, fbpScore.MSE, bpScore.MSE, "filtered reconstruction should be closer to the phantom")
}

func TestSinogramFromPNG(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)
	phantomPath := filepath.Join(dir, "phantom.png")
	sinoPath := filepath.Join(dir, "sino.png")

	_, _, err := execute(t, "-c", configPath, "phantom", "--out", phantomPath, "--size", "24")
	require.NoError(t, err)
	_, _, err = execute(t, "-c", configPath, "sinogram", "-i", phantomPath, "-o", sinoPath)
	require.NoError(t, err)

	img, err := visualization.LoadImage(sinoPath)
	require.NoError(t, err)
	rows, cols := img.Dims()
	assert.Equal(t, reconstruction.DetectorCount(24), rows)
	assert.Equal(t, testAngles, cols)
}

func TestReconstructAngleMismatch(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)
	otherConfig, _ := writeTestConfig(t, 45)
	phantomPath := filepath.Join(dir, "phantom.bin")
	sinoPath := filepath.Join(dir, "sino.bin")

	_, _, err := execute(t, "-c", configPath, "phantom", "-o", phantomPath)
	require.NoError(t, err)
	_, _, err = execute(t, "-c", configPath, "sinogram", "-i", phantomPath, "-o", sinoPath)
	require.NoError(t, err)

	_, _, err = execute(t, "-c", otherConfig, "reconstruct", "-i", sinoPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, reconstruction.ErrShapeMismatch)
}

func TestReconstructSizeTooLarge(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)
	phantomPath := filepath.Join(dir, "phantom.bin")
	sinoPath := filepath.Join(dir, "sino.bin")

	_, _, err := execute(t, "-c", configPath, "phantom", "-o", phantomPath)
	require.NoError(t, err)
	_, _, err = execute(t, "-c", configPath, "sinogram", "-i", phantomPath, "-o", sinoPath)
	require.NoError(t, err)

	_, _, err = execute(t, "-c", configPath, "reconstruct", "-i", sinoPath, "--size", "1000")
	assert.ErrorIs(t, err, reconstruction.ErrInvalidGeometry)
}

func TestMissingInputFlag(t *testing.T) {
	configPath, _ := writeTestConfig(t, testAngles)

	_, _, err := execute(t, "-c", configPath, "sinogram")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"in"`)
}

func TestUnsupportedOutputExtension(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)

	_, _, err := execute(t, "-c", configPath, "phantom", "-o", filepath.Join(dir, "phantom.tiff"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output extension")
}

func TestDemo(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)

	out, _, err := execute(t, "-c", configPath, "demo")
	require.NoError(t, err)

	assert.Contains(t, out, "FBP")
	assert.Contains(t, out, "BP")
	assert.Contains(t, out, "SSIM")
	assert.Contains(t, out, "RMSE")

	comparison := filepath.Join(dir, "out", "comparison.png")
	_, err = os.Stat(comparison)
	require.NoError(t, err)

	img, err := visualization.LoadImage(comparison)
	require.NoError(t, err)
	rows, cols := img.Dims()
	p := reconstruction.DetectorCount(testSize)
	assert.Equal(t, p, rows)
	// phantom | sinogram | FBP | BP, 4 px apart
	assert.Equal(t, 3*testSize+testAngles+3*4, cols)

	_, err = os.Stat(filepath.Join(dir, "out", "sinogram.bin"))
	assert.NoError(t, err)
}

func TestJSONLogging(t *testing.T) {
	configPath, dir := writeTestConfig(t, testAngles)

	_, logs, err := execute(t, "-c", configPath, "--log-format", "json", "-v",
		"phantom", "-o", filepath.Join(dir, "p.png"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(logs), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "{"), "expected JSON log line, got %q", line)
		assert.Contains(t, line, `"run_id"`)
	}
	assert.Contains(t, logs, "session ready")
	assert.Contains(t, logs, "phantom written")
}
