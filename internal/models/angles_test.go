package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformAngles(t *testing.T) {
	angles := UniformAngles(180, 0, 180)
	require.Len(t, angles, 180)
	assert.Equal(t, 0.0, angles[0])
	assert.InDelta(t, 1.0, angles[1], 1e-12)
	assert.InDelta(t, 179.0, angles[179], 1e-12)

	quarter := UniformAngles(4, 0, 180)
	assert.InDeltaSlice(t, []float64{0, 45, 90, 135}, []float64(quarter), 1e-12)

	assert.Empty(t, UniformAngles(0, 0, 180))
	assert.Empty(t, UniformAngles(-3, 0, 180))
}

func TestAnglesRadians(t *testing.T) {
	rad := Angles{0, 90, 180}.Radians()
	assert.InDeltaSlice(t, []float64{0, math.Pi / 2, math.Pi}, rad, 1e-15)
}

func TestAnglesValidate(t *testing.T) {
	assert.NoError(t, Angles{0, 45}.Validate())
	assert.Error(t, Angles{}.Validate())
	assert.Error(t, Angles{0, math.NaN()}.Validate())
	assert.Error(t, Angles{math.Inf(1)}.Validate())
}

func TestAnglesPermute(t *testing.T) {
	angles := Angles{0, 10, 20, 30}

	permuted, err := angles.Permute([]int{3, 1, 0, 2})
	require.NoError(t, err)
	assert.Equal(t, Angles{30, 10, 0, 20}, permuted)
	assert.Equal(t, Angles{0, 10, 20, 30}, angles, "source must not be reordered")

	_, err = angles.Permute([]int{0, 1})
	assert.Error(t, err)

	_, err = angles.Permute([]int{0, 0, 1, 2})
	assert.Error(t, err)

	_, err = angles.Permute([]int{0, 1, 2, 4})
	assert.Error(t, err)
}
