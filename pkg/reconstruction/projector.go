package reconstruction

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"radonct/internal/models"
	"radonct/pkg/interpolation"
)

// Projector computes the forward projection of a square image. Implementations
// receive validated input and write column j of sino for angles[j]; the row
// count of sino is the detector count.
type Projector interface {
	Method() ProjectorMethod
	Project(sino *mat.Dense, image mat.Matrix, angles []float64, workers int) error
}

func newProjector(m ProjectorMethod) Projector {
	if m == ProjectorRayTrace {
		return rayTraceProjector{}
	}
	return rotationProjector{}
}

// rotationProjector pads the image to the detector extent, rotates it by
// -theta and sums each column into one detector bin.
type rotationProjector struct{}

func (rotationProjector) Method() ProjectorMethod { return ProjectorRotation }

func (rotationProjector) Project(sino *mat.Dense, image mat.Matrix, angles []float64, workers int) error {
	detectors, _ := sino.Dims()
	padded, err := interpolation.PadCentered(image, detectors, detectors)
	if err != nil {
		return err
	}
	sampler := interpolation.NewSampler(padded)

	return forEachRange(splitAngles(len(angles), workers), func(_ int, r angleRange) error {
		rotated := mat.NewDense(detectors, detectors, nil)
		column := make([]float64, detectors)
		for j := r.lo; j < r.hi; j++ {
			interpolation.RotateInto(rotated, sampler, -angles[j], false)
			for c := range column {
				column[c] = 0
			}
			raw := rotated.RawMatrix()
			for row := 0; row < detectors; row++ {
				line := raw.Data[row*raw.Stride : row*raw.Stride+detectors]
				for c, v := range line {
					column[c] += v
				}
			}
			sino.SetCol(j, column)
		}
		return nil
	})
}

// rayTraceProjector samples the image along every ray at unit steps without
// building rotated copies. It visits exactly the points the rotation
// projector visits, so the two agree to rounding.
type rayTraceProjector struct{}

func (rayTraceProjector) Method() ProjectorMethod { return ProjectorRayTrace }

func (rayTraceProjector) Project(sino *mat.Dense, image mat.Matrix, angles []float64, workers int) error {
	detectors, _ := sino.Dims()
	n, _ := image.Dims()
	sampler := interpolation.NewSampler(image)
	half := float64(detectors / 2)
	centre := float64(n / 2)
	radians := models.Angles(angles).Radians()

	return forEachRange(splitAngles(len(angles), workers), func(_ int, r angleRange) error {
		column := make([]float64, detectors)
		for j := r.lo; j < r.hi; j++ {
			sin, cos := math.Sincos(radians[j])
			for k := range column {
				t := float64(k) - half
				sum := 0.0
				for i := 0; i < detectors; i++ {
					s := half - float64(i)
					x := t*cos - s*sin
					y := t*sin + s*cos
					sum += sampler.At(centre-y, centre+x)
				}
				column[k] = sum
			}
			sino.SetCol(j, column)
		}
		return nil
	})
}
