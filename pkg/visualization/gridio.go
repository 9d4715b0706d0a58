package visualization

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// SaveGrid stores a grid losslessly in gonum's binary matrix format so a
// sinogram can be handed from one command to the next.
func SaveGrid(g *mat.Dense, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(file)
	if _, err := g.MarshalBinaryTo(w); err != nil {
		file.Close()
		return fmt.Errorf("encoding grid: %w", err)
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// LoadGrid reads a grid written by SaveGrid.
func LoadGrid(filename string) (*mat.Dense, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var g mat.Dense
	if _, err := g.UnmarshalBinaryFrom(bufio.NewReader(file)); err != nil {
		return nil, fmt.Errorf("decoding grid %s: %w", filename, err)
	}
	return &g, nil
}
