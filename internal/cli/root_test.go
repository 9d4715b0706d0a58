package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"radonct/pkg/reconstruction"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "radonct", cmd.Use)
	assert.Contains(t, cmd.Long, "back-projection")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := [][]string{
		{"phantom"},
		{"sinogram"},
		{"reconstruct"},
		{"demo"},
		{"config", "init"},
		{"config", "show"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			subCmd, _, err := cmd.Find(path)
			require.NoError(t, err, "command %v should exist", path)
			require.NotNil(t, subCmd)
			assert.Equal(t, path[len(path)-1], subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	configFlag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Equal(t, "radonct.yaml", configFlag.DefValue)

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "", formatFlag.DefValue)
}

func TestReconstructCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	reconCmd, _, err := cmd.Find([]string{"reconstruct"})
	require.NoError(t, err)

	unfiltered := reconCmd.Flags().Lookup("unfiltered")
	require.NotNil(t, unfiltered)
	assert.Equal(t, "false", unfiltered.DefValue)

	in := reconCmd.Flags().Lookup("in")
	require.NotNil(t, in)
	assert.Equal(t, "i", in.Shorthand)
}

func TestInvalidLogFormat(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-format", "xml", "config", "show"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestNaturalSize(t *testing.T) {
	for n := 1; n <= 512; n++ {
		p := reconstruction.DetectorCount(n)
		assert.Equal(t, n, naturalSize(p), "size %d (%d detectors)", n, p)
	}
	assert.Equal(t, 0, naturalSize(0))
}
