// Package visualization converts grids to and from grayscale images and
// assembles side-by-side comparison panels of a reconstruction run.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register JPEG decoding for LoadImage
	"image/png"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// panelGap is the spacing in pixels between comparison panels.
const panelGap = 4

// ToImage renders a grid as 16-bit grayscale, mapping its minimum to black
// and its maximum to white. A constant grid renders black.
func ToImage(g mat.Matrix) *image.Gray16 {
	rows, cols := g.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	if rows == 0 || cols == 0 {
		return img
	}

	lo, hi := mat.Min(g), mat.Max(g)
	span := hi - lo
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var v float64
			if span > 0 {
				v = (g.At(y, x) - lo) / span
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * 65535))})
		}
	}
	return img
}

// FromImage converts an image to a grid of luminance values in [0, 1].
func FromImage(img image.Image) *mat.Dense {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return &mat.Dense{}
	}

	g := mat.NewDense(height, width, nil)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			gray := color.Gray16Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray16)
			g.Set(y, x, float64(gray.Y)/65535.0)
		}
	}
	return g
}

// LoadImage decodes a PNG or JPEG file into a grid of values in [0, 1].
func LoadImage(path string) (*mat.Dense, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return FromImage(img), nil
}

// SavePNG writes the grid as a normalised grayscale PNG, creating parent
// directories as needed.
func SavePNG(g mat.Matrix, filename string) error {
	return writePNG(ToImage(g), filename)
}

// SaveComparison writes the panels left to right into one PNG. Each panel is
// normalised on its own and top-aligned on a black background.
func SaveComparison(filename string, panels ...mat.Matrix) error {
	if len(panels) == 0 {
		return fmt.Errorf("no panels to save")
	}

	width, height := 0, 0
	images := make([]*image.Gray16, len(panels))
	for i, p := range panels {
		images[i] = ToImage(p)
		b := images[i].Bounds()
		width += b.Dx()
		height = max(height, b.Dy())
	}
	width += panelGap * (len(panels) - 1)

	canvas := image.NewGray16(image.Rect(0, 0, width, height))
	x := 0
	for _, img := range images {
		b := img.Bounds()
		draw.Draw(canvas, image.Rect(x, 0, x+b.Dx(), b.Dy()), img, b.Min, draw.Src)
		x += b.Dx() + panelGap
	}
	return writePNG(canvas, filename)
}

func writePNG(img image.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
