package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Centroid returns the intensity-weighted centre of all samples at or above
// threshold, in (row, col) pixel coordinates.
func Centroid(g mat.Matrix, threshold float64) (row, col float64, err error) {
	r, c := g.Dims()
	var rows, cols, weights []float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := g.At(i, j); v >= threshold {
				rows = append(rows, float64(i))
				cols = append(cols, float64(j))
				weights = append(weights, v)
			}
		}
	}
	if len(weights) == 0 {
		return 0, 0, fmt.Errorf("no samples at or above %g", threshold)
	}
	return stat.Mean(rows, weights), stat.Mean(cols, weights), nil
}

// PeakToBackground divides the maximum of g by the mean absolute value of the
// samples farther than radius from the grid centre. Sharper reconstructions of
// a point object score higher.
func PeakToBackground(g mat.Matrix, radius float64) (float64, error) {
	r, c := g.Dims()
	cr := float64(r / 2)
	cc := float64(c / 2)

	var background []float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			dr := float64(i) - cr
			dc := float64(j) - cc
			if math.Hypot(dr, dc) > radius {
				background = append(background, math.Abs(g.At(i, j)))
			}
		}
	}
	if len(background) == 0 {
		return 0, fmt.Errorf("no background samples beyond radius %g", radius)
	}
	level := stat.Mean(background, nil)
	if level == 0 {
		return math.Inf(1), nil
	}
	return mat.Max(g) / level, nil
}
