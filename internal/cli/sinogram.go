package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewSinogramCommand creates the sinogram command.
func NewSinogramCommand(rootOpts *RootOptions) *cobra.Command {
	var in, out string

	cmd := &cobra.Command{
		Use:   "sinogram",
		Short: "Forward-project an image into a sinogram",
		Long: `Compute the sinogram of a square image over the configured angle set.

The input may be a PNG/JPEG image or a .bin grid. Write the result to a .bin
file to reconstruct it later without loss, or to a .png to look at it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}

			image, err := readGrid(in)
			if err != nil {
				return fmt.Errorf("reading %s: %w", in, err)
			}

			angles := s.cfg.Angles()
			sino, err := s.engine.ComputeSinogram(image, angles)
			if err != nil {
				return err
			}

			path := s.outputPath(out, "sinogram.bin")
			if err := writeGrid(sino, path); err != nil {
				return fmt.Errorf("saving sinogram: %w", err)
			}

			rows, cols := sino.Dims()
			s.log.Info().Int("detectors", rows).Int("angles", cols).Str("path", path).Msg("sinogram written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "input image (.png, .jpg or .bin)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.bin or .png), defaults to <output.dir>/sinogram.bin")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}
