package reconstruction

import (
	"fmt"
	"math"
	"runtime"

	"github.com/rs/zerolog"
)

// ProjectorMethod selects the forward projection strategy.
type ProjectorMethod string

const (
	// ProjectorRotation rotates the padded image and sums its columns.
	ProjectorRotation ProjectorMethod = "rotation"
	// ProjectorRayTrace integrates along each ray directly on the image.
	ProjectorRayTrace ProjectorMethod = "raytrace"
)

// BackProjectorMethod selects the back-projection geometry.
type BackProjectorMethod string

const (
	// BackProjectorCoordinate interpolates each original projection at the
	// detector coordinate of every output pixel.
	BackProjectorCoordinate BackProjectorMethod = "coordinate"
	// BackProjectorRotation smears each projection over the grid and
	// rotates the smear into place.
	BackProjectorRotation BackProjectorMethod = "rotation"
)

// DefaultClampLimit bounds sinogram magnitudes before back-projection.
const DefaultClampLimit = 1e6

// Options configures an Engine. Every implementation choice is explicit here;
// there are no process-wide switches.
type Options struct {
	// Projector is the forward projection strategy.
	Projector ProjectorMethod

	// BackProjector is the back-projection strategy shared by the filtered
	// and unfiltered inverse.
	BackProjector BackProjectorMethod

	// Workers is the number of goroutines sharing the angles of one call.
	// Zero or negative means runtime.NumCPU().
	Workers int

	// ClampLimit bounds sinogram values to [-ClampLimit, ClampLimit] before
	// filtering. Zero selects DefaultClampLimit.
	ClampLimit float64

	// PadFilter zero-pads projections before ramp filtering.
	PadFilter bool

	// Logger receives one debug event per call. The zero value discards.
	Logger zerolog.Logger
}

// DefaultOptions returns the recommended configuration: rotation projector,
// coordinate back-projector, padded filtering, all CPUs.
func DefaultOptions() Options {
	return Options{
		Projector:     ProjectorRotation,
		BackProjector: BackProjectorCoordinate,
		Workers:       runtime.NumCPU(),
		ClampLimit:    DefaultClampLimit,
		PadFilter:     true,
		Logger:        zerolog.Nop(),
	}
}

// ParseProjectorMethod converts a configuration string to a ProjectorMethod.
func ParseProjectorMethod(s string) (ProjectorMethod, error) {
	switch m := ProjectorMethod(s); m {
	case ProjectorRotation, ProjectorRayTrace:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown projector %q", ErrInvalidGeometry, s)
}

// ParseBackProjectorMethod converts a configuration string to a
// BackProjectorMethod.
func ParseBackProjectorMethod(s string) (BackProjectorMethod, error) {
	switch m := BackProjectorMethod(s); m {
	case BackProjectorCoordinate, BackProjectorRotation:
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown back-projector %q", ErrInvalidGeometry, s)
}

func (o Options) workers() int {
	if o.Workers <= 0 {
		return runtime.NumCPU()
	}
	return o.Workers
}

func (o Options) clampLimit() float64 {
	if o.ClampLimit == 0 {
		return DefaultClampLimit
	}
	return o.ClampLimit
}

func (o Options) validate() error {
	if _, err := ParseProjectorMethod(string(o.Projector)); err != nil {
		return err
	}
	if _, err := ParseBackProjectorMethod(string(o.BackProjector)); err != nil {
		return err
	}
	if o.ClampLimit < 0 || math.IsNaN(o.ClampLimit) {
		return fmt.Errorf("%w: clamp limit must be positive, got %v", ErrInvalidGeometry, o.ClampLimit)
	}
	return nil
}
