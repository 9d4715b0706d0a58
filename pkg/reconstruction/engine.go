// Package reconstruction implements the tomographic transform engine: the
// forward Radon projection that turns an image into a sinogram, and the
// filtered and unfiltered back-projections that turn a sinogram back into an
// image estimate.
//
// A sinogram has one row per detector bin and one column per angle. For an
// N x N image the detector count is ceil(N*sqrt(2)), and the same angle set,
// in the same order, must be used for the forward and the inverse call.
package reconstruction

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"radonct/pkg/filter"
)

// Engine is the reconstruction facade. It holds only immutable
// configuration, so one Engine may serve concurrent callers.
type Engine struct {
	opts          Options
	projector     Projector
	backProjector BackProjector
	log           zerolog.Logger
}

// NewEngine validates opts and returns an Engine using the selected
// strategies. Empty method fields fall back to the defaults.
func NewEngine(opts Options) (*Engine, error) {
	defaults := DefaultOptions()
	if opts.Projector == "" {
		opts.Projector = defaults.Projector
	}
	if opts.BackProjector == "" {
		opts.BackProjector = defaults.BackProjector
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		opts:          opts,
		projector:     newProjector(opts.Projector),
		backProjector: newBackProjector(opts.BackProjector),
		log:           opts.Logger.With().Str("component", "reconstruction").Logger(),
	}, nil
}

// Options returns the configuration the engine was built with.
func (e *Engine) Options() Options {
	return e.opts
}

// ComputeSinogram returns the detectors x len(angles) Radon transform of a
// square image. Angles are in degrees.
func (e *Engine) ComputeSinogram(image mat.Matrix, angles []float64) (*mat.Dense, error) {
	start := time.Now()

	n, err := validateImage(image)
	if err != nil {
		return nil, err
	}
	if err := validateAngles(angles); err != nil {
		return nil, err
	}

	detectors := DetectorCount(n)
	sino := mat.NewDense(detectors, len(angles), nil)
	if err := e.projector.Project(sino, image, angles, e.opts.workers()); err != nil {
		return nil, fmt.Errorf("forward projection: %w", err)
	}

	e.log.Debug().
		Str("op", "sinogram").
		Str("method", string(e.projector.Method())).
		Int("image", n).
		Int("detectors", detectors).
		Int("angles", len(angles)).
		Dur("elapsed", time.Since(start)).
		Msg("forward projection complete")
	return sino, nil
}

// FilteredBackProjection reconstructs a size x size image from a sinogram by
// ramp filtering every projection and back-projecting the result.
func (e *Engine) FilteredBackProjection(sinogram mat.Matrix, angles []float64, size int) (*mat.Dense, error) {
	return e.backProject(sinogram, angles, size, true)
}

// SimpleBackProjection reconstructs a size x size image by back-projecting
// the unfiltered sinogram. The result is blurred by a 1/r point response.
func (e *Engine) SimpleBackProjection(sinogram mat.Matrix, angles []float64, size int) (*mat.Dense, error) {
	return e.backProject(sinogram, angles, size, false)
}

func (e *Engine) backProject(sinogram mat.Matrix, angles []float64, size int, filtered bool) (*mat.Dense, error) {
	start := time.Now()
	op := "bp"
	if filtered {
		op = "fbp"
	}

	detectors, err := validateSinogram(sinogram, angles, size)
	if err != nil {
		return nil, err
	}

	limit := e.opts.clampLimit()
	sino, clamped, err := clampSinogram(sinogram, limit)
	if err != nil {
		return nil, err
	}
	if clamped > 0 {
		e.log.Warn().
			Str("op", op).
			Int("samples", clamped).
			Float64("limit", limit).
			Msg("sinogram values clamped")
	}

	if filtered {
		sino = filter.ApplyRampFilter(sino, filter.Options{Padding: e.opts.PadFilter})
	}

	recon, err := e.backProjector.BackProject(sino, angles, size, e.opts.workers())
	if err != nil {
		return nil, fmt.Errorf("back-projection: %w", err)
	}
	// Each of the A angles covers pi/A of the half turn; 1/2 is the
	// back-projection constant for this discretisation.
	recon.Scale(math.Pi/(2*float64(len(angles))), recon)

	e.log.Debug().
		Str("op", op).
		Str("method", string(e.backProjector.Method())).
		Int("detectors", detectors).
		Int("angles", len(angles)).
		Int("size", size).
		Dur("elapsed", time.Since(start)).
		Msg("back-projection complete")
	return recon, nil
}

// defaultEngine builds an Engine from DefaultOptions, which always validate.
func defaultEngine() *Engine {
	e, err := NewEngine(DefaultOptions())
	if err != nil {
		panic(err)
	}
	return e
}

// ComputeSinogram runs the forward projection with DefaultOptions.
func ComputeSinogram(image mat.Matrix, angles []float64) (*mat.Dense, error) {
	return defaultEngine().ComputeSinogram(image, angles)
}

// FilteredBackProjection runs filtered back-projection with DefaultOptions.
func FilteredBackProjection(sinogram mat.Matrix, angles []float64, size int) (*mat.Dense, error) {
	return defaultEngine().FilteredBackProjection(sinogram, angles, size)
}

// SimpleBackProjection runs unfiltered back-projection with DefaultOptions.
func SimpleBackProjection(sinogram mat.Matrix, angles []float64, size int) (*mat.Dense, error) {
	return defaultEngine().SimpleBackProjection(sinogram, angles, size)
}
