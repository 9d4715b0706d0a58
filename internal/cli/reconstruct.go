package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"radonct/pkg/reconstruction"
)

// NewReconstructCommand creates the reconstruct command.
func NewReconstructCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		in, out    string
		size       int
		unfiltered bool
	)

	cmd := &cobra.Command{
		Use:   "reconstruct",
		Short: "Reconstruct an image from a sinogram",
		Long: `Back-project a sinogram over the configured angle set.

The sinogram must have one column per configured angle. By default the ramp
filter is applied first; --unfiltered gives the blurred plain back-projection.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(rootOpts, cmd)
			if err != nil {
				return err
			}

			sino, err := readGrid(in)
			if err != nil {
				return fmt.Errorf("reading %s: %w", in, err)
			}
			if size <= 0 {
				detectors, _ := sino.Dims()
				size = naturalSize(detectors)
			}

			var recon *mat.Dense
			if unfiltered {
				recon, err = s.engine.SimpleBackProjection(sino, s.cfg.Angles(), size)
			} else {
				recon, err = s.engine.FilteredBackProjection(sino, s.cfg.Angles(), size)
			}
			if err != nil {
				return err
			}

			path := s.outputPath(out, "reconstruction.png")
			if err := writeGrid(recon, path); err != nil {
				return fmt.Errorf("saving reconstruction: %w", err)
			}

			s.log.Info().Int("size", size).Bool("filtered", !unfiltered).Str("path", path).Msg("reconstruction written")
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "input sinogram (.bin or image)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (.png or .bin), defaults to <output.dir>/reconstruction.png")
	cmd.Flags().IntVar(&size, "size", 0, "output side length, defaults to the largest image the sinogram covers")
	cmd.Flags().BoolVar(&unfiltered, "unfiltered", false, "skip the ramp filter")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// naturalSize returns the largest image side whose detector count fits in
// the given number of detector bins.
func naturalSize(detectors int) int {
	n := int(float64(detectors) / math.Sqrt2)
	for reconstruction.DetectorCount(n+1) <= detectors {
		n++
	}
	for n > 0 && reconstruction.DetectorCount(n) > detectors {
		n--
	}
	return n
}
