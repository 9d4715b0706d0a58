package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"radonct/pkg/phantom"
)

// NewPhantomCommand creates the phantom command.
func NewPhantomCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		out  string
		size int
	)

	cmd := &cobra.Command{
		Use:   "phantom",
		Short: "Synthesise a test phantom",
		Long: `Synthesise the soft-tissue / bone / air test phantom.

The output is a PNG unless the file name ends in .bin, in which case the
raw grid is stored for use by the sinogram command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}
			if size <= 0 {
				size = s.cfg.Geometry.ImageSize
			}

			path := s.outputPath(out, "phantom.png")
			if err := writeGrid(phantom.Generate(size), path); err != nil {
				return fmt.Errorf("saving phantom: %w", err)
			}

			s.log.Info().Int("size", size).Str("path", path).Msg("phantom written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.png or .bin), defaults to <output.dir>/phantom.png")
	cmd.Flags().IntVar(&size, "size", 0, "side length in pixels, defaults to geometry.imageSize")

	return cmd
}
