/*
Package grid holds the read-only sample buffer that every counting strategy
scans, together with the geometry that maps tile ids onto it.

A Grid is an immutable width*height buffer of byte samples stored row-major.
Workers share one *Grid and read it concurrently without synchronization.

	g, err := grid.New(4, 4, data)
	geom, err := grid.NewGeometry(g.Width(), g.Height(), 2, 2)

	for id := 0; id < geom.Total(); id++ {
		r := geom.RegionOf(id)
		n := g.CountRegion(r, grid.Threshold(128))
		_ = n
	}

Tile ids are row-major: id = by*TilesX + bx. Tiles on the right and bottom
edges are clipped to the grid when the tile size does not divide the grid
dimensions, so no region ever reaches outside the buffer.
*/
package grid
