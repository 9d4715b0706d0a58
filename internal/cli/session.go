package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"radonct/internal/logging"
	"radonct/pkg/config"
	"radonct/pkg/reconstruction"
	"radonct/pkg/visualization"
)

// gridExt marks files holding raw grids rather than images.
const gridExt = ".bin"

// session is the state shared by one command invocation.
type session struct {
	cfg    *config.Config
	log    zerolog.Logger
	engine *reconstruction.Engine
}

// newSession loads the configuration, applies the global flags on top of it
// and builds the logger and engine.
func newSession(opts *RootOptions, cmd *cobra.Command) (*session, error) {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		cfg.Output.Verbose = true
	}
	if opts.LogFormat != "" {
		cfg.Output.LogFormat = opts.LogFormat
	}

	log, err := logging.New(cmd.ErrOrStderr(), logging.Format(cfg.Output.LogFormat), cfg.Output.Verbose)
	if err != nil {
		return nil, err
	}

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return nil, err
	}
	engineOpts.Logger = log

	engine, err := reconstruction.NewEngine(engineOpts)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("config", opts.ConfigPath).
		Str("projector", string(engineOpts.Projector)).
		Str("back_projector", string(engineOpts.BackProjector)).
		Msg("session ready")

	return &session{cfg: cfg, log: log, engine: engine}, nil
}

// outputPath resolves name inside the configured output directory unless
// the caller gave an explicit path.
func (s *session) outputPath(explicit, name string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(s.cfg.Output.Dir, name)
}

// readGrid loads a raw grid or an image depending on the file extension.
func readGrid(path string) (*mat.Dense, error) {
	if strings.EqualFold(filepath.Ext(path), gridExt) {
		return visualization.LoadGrid(path)
	}
	return visualization.LoadImage(path)
}

// writeGrid stores g as a raw grid or a PNG depending on the file extension.
func writeGrid(g *mat.Dense, path string) error {
	if strings.EqualFold(filepath.Ext(path), gridExt) {
		return visualization.SaveGrid(g, path)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".png" {
		return fmt.Errorf("unsupported output extension %q: use .png or %s", ext, gridExt)
	}
	return visualization.SavePNG(g, path)
}
