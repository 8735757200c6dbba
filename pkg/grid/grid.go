package grid

import (
	"github.com/vnykmshr/gridflow/pkg/common/validation"
)

// Grid is an immutable 2-D buffer of byte samples.
type Grid struct {
	width  int
	height int
	data   []byte
}

// New wraps data as a width x height grid. The grid takes ownership of data;
// callers must not modify it afterwards.
func New(width, height int, data []byte) (*Grid, error) {
	if err := validation.ValidateNonNegative("grid", "width", width); err != nil {
		return nil, err
	}
	if err := validation.ValidateNonNegative("grid", "height", height); err != nil {
		return nil, err
	}
	if err := validation.ValidateLength("grid", "data", len(data), width*height); err != nil {
		return nil, err
	}
	return &Grid{width: width, height: height, data: data}, nil
}

// Filled returns a grid where every sample equals v.
func Filled(width, height int, v byte) *Grid {
	data := make([]byte, width*height)
	for i := range data {
		data[i] = v
	}
	return &Grid{width: width, height: height, data: data}
}

// Width returns the number of samples per row.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.data) }

// Bounds returns the region covering the whole grid.
func (g *Grid) Bounds() Region {
	return Region{X0: 0, Y0: 0, X1: g.width, Y1: g.height}
}

// At returns the sample at column x, row y.
func (g *Grid) At(x, y int) byte {
	return g.data[y*g.width+x]
}

// Row returns row y as a shared view. The slice must not be modified.
func (g *Grid) Row(y int) []byte {
	off := y * g.width
	return g.data[off : off+g.width : off+g.width]
}
