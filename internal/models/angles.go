package models

import (
	"fmt"
	"math"
)

// Angles is an ordered set of projection angles in degrees.
// The order defines the column order of a sinogram and must be the same
// for the forward and the inverse transform.
type Angles []float64

// UniformAngles returns count evenly spaced angles over [start, stop).
// UniformAngles(180, 0, 180) is the reference acquisition.
func UniformAngles(count int, start, stop float64) Angles {
	if count <= 0 {
		return Angles{}
	}

	step := (stop - start) / float64(count)
	angles := make(Angles, count)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}

// Radians converts the angle set to radians.
func (a Angles) Radians() []float64 {
	rad := make([]float64, len(a))
	for i, deg := range a {
		rad[i] = deg * math.Pi / 180
	}
	return rad
}

// Validate reports whether the set is usable as an acquisition geometry.
func (a Angles) Validate() error {
	if len(a) == 0 {
		return fmt.Errorf("angle set is empty")
	}
	for i, deg := range a {
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			return fmt.Errorf("angle %d is not finite: %v", i, deg)
		}
	}
	return nil
}

// Permute returns the angles reordered so that result[i] = a[order[i]].
func (a Angles) Permute(order []int) (Angles, error) {
	if len(order) != len(a) {
		return nil, fmt.Errorf("permutation has %d entries, angle set has %d", len(order), len(a))
	}
	seen := make([]bool, len(a))
	out := make(Angles, len(a))
	for i, j := range order {
		if j < 0 || j >= len(a) || seen[j] {
			return nil, fmt.Errorf("invalid permutation index %d at position %d", j, i)
		}
		seen[j] = true
		out[i] = a[j]
	}
	return out, nil
}
