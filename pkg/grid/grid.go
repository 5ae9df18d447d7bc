// Package grid samples rectangular regions of the complex plane.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidShape is returned when a grid or region cannot be built from the
// given dimensions or bounds.
var ErrInvalidShape = errors.New("invalid grid shape")

// Region is a rectangle of the complex plane.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
}

func (r Region) Validate() error {
	for _, v := range []float64{r.XMin, r.XMax, r.YMin, r.YMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite bound in %+v", ErrInvalidShape, r)
		}
	}
	if r.XMin >= r.XMax {
		return fmt.Errorf("%w: XMin %v must be less than XMax %v", ErrInvalidShape, r.XMin, r.XMax)
	}
	if r.YMin >= r.YMax {
		return fmt.Errorf("%w: YMin %v must be less than YMax %v", ErrInvalidShape, r.YMin, r.YMax)
	}
	return nil
}

// A Grid is a row-major array of complex sample points.
//
// Row 0 is the top of the rendered image; column 0 is its left edge.
type Grid struct {
	Rows, Cols int
	Points     []complex128
}

// New wraps points as a rows × cols grid. The slice is not copied.
func New(rows, cols int, points []complex128) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidShape, rows, cols)
	}
	if len(points) != rows*cols {
		return nil, fmt.Errorf("%w: %d points for %dx%d grid", ErrInvalidShape, len(points), rows, cols)
	}

	return &Grid{Rows: rows, Cols: cols, Points: points}, nil
}

// FromRegion samples region uniformly with width columns and height rows.
// Cell (r, c) holds x[c] + i*y[r], where x runs from XMin to XMax and y runs
// from YMax down to YMin.
func FromRegion(region Region, width, height int) (*Grid, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}

	xs, err := Linspace(region.XMin, region.XMax, width)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	ys, err := Linspace(region.YMax, region.YMin, height)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	points := make([]complex128, 0, width*height)
	for _, y := range ys {
		for _, x := range xs {
			points = append(points, complex(x, y))
		}
	}

	return New(height, width, points)
}

// Linspace returns n evenly spaced samples from start to end inclusive.
// A single sample is start.
func Linspace(start, end float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d samples", ErrInvalidShape, n)
	}
	if n == 1 {
		return []float64{start}, nil
	}

	samples := floats.Span(make([]float64, n), start, end)
	// The far edge of the region is sampled exactly.
	samples[n-1] = end

	return samples, nil
}

func (g *Grid) At(row, col int) complex128 {
	return g.Points[row*g.Cols+col]
}

// Len is the number of cells in the grid.
func (g *Grid) Len() int {
	return g.Rows * g.Cols
}
