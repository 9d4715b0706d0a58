// Package phantom synthesises test objects for the transform engine.
package phantom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Intensities of the composite phantom's regions.
const (
	SoftTissue = 0.8
	Bone       = 1.0
	Air        = 0.1
)

// Generate returns a size x size phantom made of a soft-tissue disk of radius
// size/4, a vertical bone bar through the centre and an air pocket on the
// left. Region offsets scale with size; at size 256 the bar spans ±30 rows
// and ±10 columns and the pocket spans ±20 rows and columns -60..-40.
func Generate(size int) *mat.Dense {
	if size <= 0 {
		return &mat.Dense{}
	}

	p := mat.NewDense(size, size, nil)
	centre := size / 2
	radius := size / 4
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			dr, dc := r-centre, c-centre
			if dr*dr+dc*dc <= radius*radius {
				p.Set(r, c, SoftTissue)
			}
		}
	}

	scale := func(v int) int {
		return int(math.Round(float64(v) * float64(size) / 256))
	}
	fill(p, centre-scale(30), centre+scale(30), centre-scale(10), centre+scale(10), Bone)
	fill(p, centre-scale(20), centre+scale(20), centre-scale(60), centre-scale(40), Air)
	return p
}

// fill sets the half-open block [r0,r1) x [c0,c1), clipped to the grid.
func fill(p *mat.Dense, r0, r1, c0, c1 int, v float64) {
	rows, cols := p.Dims()
	for r := max(r0, 0); r < min(r1, rows); r++ {
		for c := max(c0, 0); c < min(c1, cols); c++ {
			p.Set(r, c, v)
		}
	}
}

// Disk returns a size x size grid holding a centred disk of the given radius.
func Disk(size int, radius, value float64) *mat.Dense {
	if size <= 0 {
		return &mat.Dense{}
	}

	p := mat.NewDense(size, size, nil)
	centre := float64(size / 2)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			dr := float64(r) - centre
			dc := float64(c) - centre
			if dr*dr+dc*dc <= radius*radius {
				p.Set(r, c, value)
			}
		}
	}
	return p
}

// Gaussian returns a centred isotropic Gaussian blob with peak amplitude.
func Gaussian(size int, sigma, amplitude float64) *mat.Dense {
	if size <= 0 {
		return &mat.Dense{}
	}

	p := mat.NewDense(size, size, nil)
	centre := float64(size / 2)
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			dr := float64(r) - centre
			dc := float64(c) - centre
			p.Set(r, c, amplitude*math.Exp(-(dr*dr+dc*dc)/(2*sigma*sigma)))
		}
	}
	return p
}

// Point returns a grid that is zero except for value at the centre pixel.
func Point(size int, value float64) *mat.Dense {
	if size <= 0 {
		return &mat.Dense{}
	}

	p := mat.NewDense(size, size, nil)
	p.Set(size/2, size/2, value)
	return p
}
