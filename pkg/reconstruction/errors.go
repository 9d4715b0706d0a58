package reconstruction

import "errors"

// Failure classes reported by the public entry points. Returned errors wrap
// one of these and carry the offending extents; match with errors.Is.
var (
	// ErrShapeMismatch reports an angle set whose length differs from the
	// sinogram column count.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidGeometry reports empty or non-square images, empty or
	// non-finite angle sets, and output sizes outside the accumulation grid.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrNumericOverflow reports input values that cannot be brought into a
	// safe range by clamping: NaN anywhere, or an infinite image pixel.
	ErrNumericOverflow = errors.New("numeric overflow")
)
