package grid

import (
	"fmt"

	"github.com/vnykmshr/gridflow/pkg/common/validation"
)

// Geometry describes how a grid is cut into fixed-size tiles.
type Geometry struct {
	TileWidth  int
	TileHeight int
	GridWidth  int
	GridHeight int
}

// NewGeometry validates the tile size and returns the tiling of a
// gridWidth x gridHeight grid.
func NewGeometry(gridWidth, gridHeight, tileWidth, tileHeight int) (Geometry, error) {
	if err := validation.ValidatePositive("grid", "tile_width", tileWidth); err != nil {
		return Geometry{}, err
	}
	if err := validation.ValidatePositive("grid", "tile_height", tileHeight); err != nil {
		return Geometry{}, err
	}
	if err := validation.ValidateNonNegative("grid", "width", gridWidth); err != nil {
		return Geometry{}, err
	}
	if err := validation.ValidateNonNegative("grid", "height", gridHeight); err != nil {
		return Geometry{}, err
	}
	return Geometry{
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
	}, nil
}

// TilesX returns the number of tile columns, ceil(GridWidth/TileWidth).
func (g Geometry) TilesX() int {
	return (g.GridWidth + g.TileWidth - 1) / g.TileWidth
}

// TilesY returns the number of tile rows, ceil(GridHeight/TileHeight).
func (g Geometry) TilesY() int {
	return (g.GridHeight + g.TileHeight - 1) / g.TileHeight
}

// Total returns the number of tiles.
func (g Geometry) Total() int {
	return g.TilesX() * g.TilesY()
}

// RegionOf returns the region covered by tile id, clipped to the grid.
// It panics if id is outside [0, Total()).
func (g Geometry) RegionOf(id int) Region {
	if id < 0 || id >= g.Total() {
		panic(fmt.Sprintf("grid: tile id %d out of range [0,%d)", id, g.Total()))
	}
	tilesX := g.TilesX()
	bx := id % tilesX
	by := id / tilesX

	r := Region{
		X0: bx * g.TileWidth,
		Y0: by * g.TileHeight,
	}
	r.X1 = min(r.X0+g.TileWidth, g.GridWidth)
	r.Y1 = min(r.Y0+g.TileHeight, g.GridHeight)
	return r
}
