// Package interpolation provides the order-1 resampling primitives shared by
// the forward and inverse tomographic operators: bilinear sampling, grid
// rotation about the centre, and centred padding/cropping.
//
// Grids use the gonum mat types. A grid of side n has its centre at
// (n/2, n/2) with integer division; pixel (r, c) sits at x = c - n/2,
// y = n/2 - r, so y points up.
package interpolation

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Sampler reads a grid at fractional coordinates using bilinear
// interpolation. Every neighbour that falls outside the grid contributes
// zero. A Sampler never writes to the grid it was built from.
type Sampler struct {
	rows, cols int
	stride     int
	data       []float64
}

// NewSampler builds a sampler over g. Dense grids are read in place, other
// matrix implementations are copied once.
func NewSampler(g mat.Matrix) *Sampler {
	d, ok := g.(*mat.Dense)
	if !ok {
		d = mat.DenseCopyOf(g)
	}
	if d.IsEmpty() {
		return &Sampler{}
	}
	raw := d.RawMatrix()
	return &Sampler{
		rows:   raw.Rows,
		cols:   raw.Cols,
		stride: raw.Stride,
		data:   raw.Data,
	}
}

// Dims returns the extent of the sampled grid.
func (s *Sampler) Dims() (rows, cols int) {
	return s.rows, s.cols
}

func (s *Sampler) pixel(r, c int) float64 {
	if r < 0 || r >= s.rows || c < 0 || c >= s.cols {
		return 0
	}
	return s.data[r*s.stride+c]
}

// At returns the bilinear estimate at (row, col).
func (s *Sampler) At(row, col float64) float64 {
	// All four neighbours are outside; also keeps the int conversion in range.
	if !(row > -1 && row < float64(s.rows) && col > -1 && col < float64(s.cols)) {
		return 0
	}

	r0f := math.Floor(row)
	c0f := math.Floor(col)
	fr := row - r0f
	fc := col - c0f
	r0 := int(r0f)
	c0 := int(c0f)

	return (1-fr)*((1-fc)*s.pixel(r0, c0)+fc*s.pixel(r0, c0+1)) +
		fr*((1-fc)*s.pixel(r0+1, c0)+fc*s.pixel(r0+1, c0+1))
}

// Bilinear samples g at (row, col). For repeated sampling of one grid build
// a Sampler instead.
func Bilinear(g mat.Matrix, row, col float64) float64 {
	return NewSampler(g).At(row, col)
}

// Linear interpolates a 1-D signal at a fractional index. Positions outside
// [0, len-1] yield zero.
func Linear(samples []float64, pos float64) float64 {
	last := len(samples) - 1
	if last < 0 || !(pos >= 0 && pos <= float64(last)) {
		return 0
	}

	i0f := math.Floor(pos)
	i0 := int(i0f)
	if i0 == last {
		return samples[last]
	}
	f := pos - i0f
	return (1-f)*samples[i0] + f*samples[i0+1]
}
