// Package metrics scores reconstructions against a reference image.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"radonct/pkg/interpolation"
)

// Result holds the similarity scores of one reconstruction.
type Result struct {
	// MSE is the mean squared error against the reference.
	MSE float64

	// RMSE is the square root of MSE, in intensity units.
	RMSE float64

	// PSNR is the peak signal-to-noise ratio in dB for a unit data range.
	// It is +Inf for identical images.
	PSNR float64

	// SSIM is the structural similarity index computed from global image
	// statistics, with the data range of the reconstruction.
	SSIM float64

	// Cropped reports that the reference was centre-cropped to the
	// reconstruction's extent before scoring.
	Cropped bool
}

// Evaluate compares a reconstruction with the reference image. When the
// extents differ the reference is centre-cropped to the reconstruction; a
// reference smaller than the reconstruction is an error.
func Evaluate(reference, reconstructed mat.Matrix) (Result, error) {
	var res Result

	rr, rc := reference.Dims()
	tr, tc := reconstructed.Dims()
	if tr == 0 || tc == 0 {
		return res, fmt.Errorf("reconstruction is empty")
	}
	if rr != tr || rc != tc {
		cropped, err := CenterCrop(reference, tr, tc)
		if err != nil {
			return res, err
		}
		reference = cropped
		res.Cropped = true
	}

	ref := values(reference)
	rec := values(reconstructed)
	res.MSE = MSE(ref, rec)
	res.RMSE = RMSE(ref, rec)
	res.PSNR = PSNR(ref, rec, 1)
	res.SSIM = SSIM(ref, rec, floats.Max(rec)-floats.Min(rec))
	return res, nil
}

// CenterCrop returns the rows x cols window centred on g.
func CenterCrop(g mat.Matrix, rows, cols int) (*mat.Dense, error) {
	gr, gc := g.Dims()
	if gr < rows || gc < cols {
		return nil, fmt.Errorf("original %dx%d smaller than target %dx%d", gr, gc, rows, cols)
	}
	return interpolation.CropCentered(g, rows, cols)
}

// values flattens a grid in row-major order.
func values(g mat.Matrix) []float64 {
	r, c := g.Dims()
	out := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out = append(out, g.At(i, j))
		}
	}
	return out
}

// MSE returns the mean squared error between two equally long samples.
func MSE(reference, test []float64) float64 {
	n := len(reference)
	if n != len(test) || n == 0 {
		return 0
	}

	diff := make([]float64, n)
	floats.SubTo(diff, reference, test)
	return floats.Dot(diff, diff) / float64(n)
}

// RMSE returns the root mean squared error.
func RMSE(reference, test []float64) float64 {
	return math.Sqrt(MSE(reference, test))
}

// NMSE returns the squared error normalised by the reference energy.
func NMSE(reference, test []float64) float64 {
	energy := floats.Dot(reference, reference)
	if energy == 0 || len(reference) != len(test) {
		return math.Inf(1)
	}
	return MSE(reference, test) * float64(len(reference)) / energy
}

// PSNR returns the peak signal-to-noise ratio in dB for the given data range.
func PSNR(reference, test []float64, dataRange float64) float64 {
	mse := MSE(reference, test)
	if mse == 0 {
		return math.Inf(1)
	}
	return 10 * math.Log10(dataRange*dataRange/mse)
}

// SSIM computes the structural similarity index from global means,
// variances and covariance.
func SSIM(reference, test []float64, dataRange float64) float64 {
	const k1 = 0.01
	const k2 = 0.03

	n := len(reference)
	if n != len(test) || n < 2 {
		return 0
	}
	if dataRange <= 0 {
		dataRange = 1
	}
	c1 := (k1 * dataRange) * (k1 * dataRange)
	c2 := (k2 * dataRange) * (k2 * dataRange)

	muX := stat.Mean(reference, nil)
	muY := stat.Mean(test, nil)
	sigmaX := stat.Variance(reference, nil)
	sigmaY := stat.Variance(test, nil)
	sigmaXY := stat.Covariance(reference, test, nil)

	num := (2*muX*muY + c1) * (2*sigmaXY + c2)
	den := (muX*muX + muY*muY + c1) * (sigmaX + sigmaY + c2)
	if den > 0 {
		return num / den
	}
	return 0
}
