package phantom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestGenerateRegions(t *testing.T) {
	p := Generate(256)
	r, c := p.Dims()
	require.Equal(t, 256, r)
	require.Equal(t, 256, c)

	assert.Equal(t, Bone, p.At(128, 128), "bone bar covers the centre")
	assert.Equal(t, Air, p.At(128, 128-50), "air pocket sits left of centre")
	assert.Equal(t, SoftTissue, p.At(128+50, 128), "soft tissue below the bar")
	assert.Equal(t, 0.0, p.At(0, 0), "background is empty")
	assert.Equal(t, 0.0, p.At(128, 128+64+1), "outside the disk")

	// Values stay in the nominal range
	assert.LessOrEqual(t, mat.Max(p), 1.0)
	assert.GreaterOrEqual(t, mat.Min(p), 0.0)
}

func TestGenerateSmallSizes(t *testing.T) {
	for _, size := range []int{1, 8, 64} {
		p := Generate(size)
		r, c := p.Dims()
		assert.Equal(t, size, r)
		assert.Equal(t, size, c)
	}
	assert.True(t, Generate(0).IsEmpty())
}

func TestDisk(t *testing.T) {
	p := Disk(64, 8, 1)
	assert.Equal(t, 1.0, p.At(32, 32))
	assert.Equal(t, 1.0, p.At(32, 40))
	assert.Equal(t, 0.0, p.At(32, 41))
	// Area approaches pi r^2
	assert.InDelta(t, math.Pi*64, mat.Sum(p), 15)
}

func TestGaussian(t *testing.T) {
	p := Gaussian(33, 4, 2)
	assert.Equal(t, 2.0, p.At(16, 16))
	assert.InDelta(t, 2*math.Exp(-0.5), p.At(16, 20), 1e-12)
	assert.InDelta(t, p.At(16, 20), p.At(12, 16), 1e-12)
}

func TestPoint(t *testing.T) {
	p := Point(9, 5)
	assert.Equal(t, 5.0, p.At(4, 4))
	assert.Equal(t, 5.0, mat.Sum(p))
}
