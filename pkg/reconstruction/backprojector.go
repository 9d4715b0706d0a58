package reconstruction

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"radonct/internal/models"
	"radonct/pkg/interpolation"
)

// BackProjector accumulates projections over angles into the centred
// size x size window of the detectors x detectors grid. The result is the
// raw sum; normalisation is applied by the Engine.
type BackProjector interface {
	Method() BackProjectorMethod
	BackProject(sino *mat.Dense, angles []float64, size, workers int) (*mat.Dense, error)
}

func newBackProjector(m BackProjectorMethod) BackProjector {
	if m == BackProjectorRotation {
		return rotationBackProjector{}
	}
	return coordinateBackProjector{}
}

// mergePartials sums per-worker accumulators in range order so the rounding
// is fixed for a given worker count.
func mergePartials(partials [][]float64) []float64 {
	total := partials[0]
	for _, p := range partials[1:] {
		floats.Add(total, p)
	}
	return total
}

// coordinateBackProjector maps every output pixel to its detector coordinate
// t = x cos(theta) + y sin(theta) and interpolates the original projection
// there. Interpolation error does not compound across angles.
type coordinateBackProjector struct{}

func (coordinateBackProjector) Method() BackProjectorMethod { return BackProjectorCoordinate }

func (coordinateBackProjector) BackProject(sino *mat.Dense, angles []float64, size, workers int) (*mat.Dense, error) {
	detectors, _ := sino.Dims()
	detectorCentre := float64(detectors / 2)
	centre := float64(size / 2)
	radians := models.Angles(angles).Radians()

	ranges := splitAngles(len(angles), workers)
	partials := make([][]float64, len(ranges))
	err := forEachRange(ranges, func(idx int, r angleRange) error {
		acc := make([]float64, size*size)
		projection := make([]float64, detectors)
		for j := r.lo; j < r.hi; j++ {
			mat.Col(projection, j, sino)
			sin, cos := math.Sincos(radians[j])
			for row := 0; row < size; row++ {
				y := centre - float64(row)
				line := acc[row*size : (row+1)*size]
				for c := range line {
					x := float64(c) - centre
					line[c] += interpolation.Linear(projection, x*cos+y*sin+detectorCentre)
				}
			}
		}
		partials[idx] = acc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mat.NewDense(size, size, mergePartials(partials)), nil
}

// rotationBackProjector tiles each projection across the full grid, rotates
// the smear by +theta and accumulates, then crops the centred window. Every
// angle pays one whole-grid resampling.
type rotationBackProjector struct{}

func (rotationBackProjector) Method() BackProjectorMethod { return BackProjectorRotation }

func (rotationBackProjector) BackProject(sino *mat.Dense, angles []float64, size, workers int) (*mat.Dense, error) {
	detectors, _ := sino.Dims()

	ranges := splitAngles(len(angles), workers)
	partials := make([][]float64, len(ranges))
	err := forEachRange(ranges, func(idx int, r angleRange) error {
		acc := mat.NewDense(detectors, detectors, nil)
		projection := make([]float64, detectors)
		for j := r.lo; j < r.hi; j++ {
			mat.Col(projection, j, sino)
			smear := interpolation.Smear(projection, detectors)
			interpolation.RotateInto(acc, interpolation.NewSampler(smear), angles[j], true)
		}
		partials[idx] = acc.RawMatrix().Data
		return nil
	})
	if err != nil {
		return nil, err
	}

	full := mat.NewDense(detectors, detectors, mergePartials(partials))
	return interpolation.CropCentered(full, size, size)
}
