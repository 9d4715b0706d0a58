package reconstruction

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"radonct/internal/models"
)

// DetectorCount returns the number of detector bins used for an image of
// side n: the image diagonal rounded up, so no rotation clips content.
func DetectorCount(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(float64(n) * math.Sqrt2))
}

func validateImage(image mat.Matrix) (int, error) {
	if image == nil {
		return 0, fmt.Errorf("%w: image is nil", ErrInvalidGeometry)
	}
	rows, cols := image.Dims()
	if rows == 0 || cols == 0 {
		return 0, fmt.Errorf("%w: image is empty (%dx%d)", ErrInvalidGeometry, rows, cols)
	}
	if rows != cols {
		return 0, fmt.Errorf("%w: image must be square, got %dx%d", ErrInvalidGeometry, rows, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			// Bilinear weights of zero would turn an infinite pixel into NaN.
			if v := image.At(r, c); math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("%w: image sample (%d,%d) is %v", ErrNumericOverflow, r, c, v)
			}
		}
	}
	return rows, nil
}

func validateAngles(angles []float64) error {
	if err := models.Angles(angles).Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGeometry, err)
	}
	return nil
}

// validateSinogram checks a sinogram against its angle set and the requested
// output size and returns the detector count.
func validateSinogram(sinogram mat.Matrix, angles []float64, size int) (int, error) {
	if sinogram == nil {
		return 0, fmt.Errorf("%w: sinogram is nil", ErrInvalidGeometry)
	}
	rows, cols := sinogram.Dims()
	if rows == 0 || cols == 0 {
		return 0, fmt.Errorf("%w: sinogram is empty (%dx%d)", ErrInvalidGeometry, rows, cols)
	}
	if err := validateAngles(angles); err != nil {
		return 0, err
	}
	if cols != len(angles) {
		return 0, fmt.Errorf("%w: sinogram has %d columns but %d angles were given",
			ErrShapeMismatch, cols, len(angles))
	}
	if size <= 0 {
		return 0, fmt.Errorf("%w: output size must be positive, got %d", ErrInvalidGeometry, size)
	}
	if size > rows {
		return 0, fmt.Errorf("%w: output size %d exceeds the %dx%d accumulation grid",
			ErrInvalidGeometry, size, rows, rows)
	}
	return rows, nil
}

// clampSinogram copies the sinogram with every value limited to
// [-limit, limit] and reports how many samples were changed.
func clampSinogram(sinogram mat.Matrix, limit float64) (*mat.Dense, int, error) {
	out := mat.DenseCopyOf(sinogram)
	rows, cols := out.Dims()
	clamped := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := out.At(r, c)
			switch {
			case math.IsNaN(v):
				return nil, 0, fmt.Errorf("%w: sinogram sample (%d,%d) is NaN", ErrNumericOverflow, r, c)
			case v > limit:
				out.Set(r, c, limit)
				clamped++
			case v < -limit:
				out.Set(r, c, -limit)
				clamped++
			}
		}
	}
	return out, clamped, nil
}
