// Package filter implements the frequency-domain ramp (Ram-Lak) filter
// applied to sinogram columns before filtered back-projection.
package filter

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// minPaddedLength is the smallest transform length used when padding is on.
const minPaddedLength = 64

// Options controls how the ramp filter is applied to a sinogram.
type Options struct {
	// Padding zero-pads every projection to a power of two of at least
	// twice its length before filtering, which keeps the periodic
	// convolution from wrapping one edge of the projection onto the other.
	Padding bool
}

// RampFilter returns the Ram-Lak filter magnitude H(f) = 2|f| for every bin
// of a length-point FFT, in the standard FFT frequency order: DC at index 0,
// positive frequencies up to length/2, then negative frequencies.
//
// Parameters:
//   - length: number of samples of the transformed signal
//
// Returns:
//   - A slice of length non-negative values; index 0 is always zero
func RampFilter(length int) []float64 {
	if length <= 0 {
		return []float64{}
	}

	ramp := make([]float64, length)
	for i := range ramp {
		ramp[i] = 2 * math.Abs(frequency(i, length))
	}
	return ramp
}

// frequency mirrors the FFT bin layout: bins past the midpoint fold back to
// negative frequencies.
func frequency(i, n int) float64 {
	if i <= (n-1)/2 {
		return float64(i) / float64(n)
	}
	if n%2 == 0 && i == n/2 {
		return -0.5
	}
	return float64(i-n) / float64(n)
}

// PaddedLength returns the transform length used for a projection of n
// samples when padding is enabled.
func PaddedLength(n int) int {
	length := minPaddedLength
	for length < 2*n {
		length <<= 1
	}
	return length
}

// ApplyRampFilter filters every column of the sinogram independently and
// returns a new grid of the same shape. The input is never modified.
func ApplyRampFilter(sinogram mat.Matrix, opts Options) *mat.Dense {
	rows, cols := sinogram.Dims()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(rows, cols, nil)

	f := newColumnFilter(rows, opts)
	column := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(column, j, sinogram)
		out.SetCol(j, f.apply(column))
	}
	return out
}

// filterColumn filters a single projection and returns the filtered copy.
func filterColumn(projection []float64, opts Options) []float64 {
	if len(projection) == 0 {
		return []float64{}
	}
	return newColumnFilter(len(projection), opts).apply(projection)
}

// columnFilter holds the FFT plan and scratch buffers for one projection
// length. It is not safe for concurrent use.
type columnFilter struct {
	n      int
	fft    *fourier.FFT
	ramp   []float64
	seq    []float64
	coeffs []complex128
	result []float64
}

func newColumnFilter(n int, opts Options) *columnFilter {
	length := n
	if opts.Padding {
		length = PaddedLength(n)
	}
	return &columnFilter{
		n:      n,
		fft:    fourier.NewFFT(length),
		ramp:   RampFilter(length),
		seq:    make([]float64, length),
		coeffs: make([]complex128, length/2+1),
		result: make([]float64, length),
	}
}

// apply runs forward FFT, ramp weighting and inverse FFT on one projection.
// The real-input transform only stores the non-negative half of the
// spectrum, which is where ramp[i] = 2|i/length| already holds.
func (c *columnFilter) apply(projection []float64) []float64 {
	copy(c.seq, projection)
	for i := c.n; i < len(c.seq); i++ {
		c.seq[i] = 0
	}

	c.fft.Coefficients(c.coeffs, c.seq)
	for i := range c.coeffs {
		c.coeffs[i] *= complex(c.ramp[i], 0)
	}
	c.fft.Sequence(c.result, c.coeffs)

	// gonum transforms are unnormalized.
	scale := 1 / float64(len(c.seq))
	out := make([]float64, c.n)
	for i := range out {
		out[i] = c.result[i] * scale
	}
	return out
}
