package interpolation

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rotate returns a grid of the same shape holding g rotated counter-clockwise
// by degrees about its centre. Samples that come from outside g are zero.
func Rotate(g mat.Matrix, degrees float64) *mat.Dense {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return &mat.Dense{}
	}

	sampler := NewSampler(g)
	out := mat.NewDense(rows, cols, nil)
	RotateInto(out, sampler, degrees, false)
	return out
}

// RotateInto writes (or, with accumulate set, adds) the rotation of the
// sampled grid into dst. dst and the sampler must have the same extent.
func RotateInto(dst *mat.Dense, src *Sampler, degrees float64, accumulate bool) {
	rows, cols := dst.Dims()
	theta := degrees * math.Pi / 180
	sin, cos := math.Sincos(theta)
	cr := float64(rows / 2)
	cc := float64(cols / 2)

	raw := dst.RawMatrix()
	for r := 0; r < rows; r++ {
		yo := cr - float64(r)
		row := raw.Data[r*raw.Stride : r*raw.Stride+cols]
		for c := range row {
			xo := float64(c) - cc
			// Inverse mapping: the output point rotated back by -theta.
			xs := xo*cos + yo*sin
			ys := -xo*sin + yo*cos
			v := src.At(cr-ys, cc+xs)
			if accumulate {
				row[c] += v
			} else {
				row[c] = v
			}
		}
	}
}

// Smear replicates a projection along the orthogonal axis, producing a
// rows x len(projection) grid whose every row equals projection.
func Smear(projection []float64, rows int) *mat.Dense {
	if rows <= 0 || len(projection) == 0 {
		return &mat.Dense{}
	}
	out := mat.NewDense(rows, len(projection), nil)
	for r := 0; r < rows; r++ {
		out.SetRow(r, projection)
	}
	return out
}

// PadCentered embeds g in a rows x cols zero grid so that the centre of g
// lands on the centre of the result.
func PadCentered(g mat.Matrix, rows, cols int) (*mat.Dense, error) {
	gr, gc := g.Dims()
	if gr == 0 || gc == 0 {
		return nil, fmt.Errorf("cannot pad an empty %dx%d grid", gr, gc)
	}
	if rows < gr || cols < gc {
		return nil, fmt.Errorf("target %dx%d is smaller than source %dx%d", rows, cols, gr, gc)
	}

	out := mat.NewDense(rows, cols, nil)
	r0 := rows/2 - gr/2
	c0 := cols/2 - gc/2
	out.Slice(r0, r0+gr, c0, c0+gc).(*mat.Dense).Copy(g)
	return out, nil
}

// CropCentered returns a copy of the rows x cols window centred on g.
func CropCentered(g mat.Matrix, rows, cols int) (*mat.Dense, error) {
	gr, gc := g.Dims()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("invalid crop extent %dx%d", rows, cols)
	}
	if rows > gr || cols > gc {
		return nil, fmt.Errorf("crop %dx%d exceeds source %dx%d", rows, cols, gr, gc)
	}

	r0 := gr/2 - rows/2
	c0 := gc/2 - cols/2
	out := mat.NewDense(rows, cols, nil)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			out.Set(r, c, g.At(r0+r, c0+c))
		}
	}
	return out, nil
}
