package grid

// CountRegion counts the samples in r that satisfy p, walking rows top to
// bottom and samples left to right. Empty regions count 0.
func (g *Grid) CountRegion(r Region, p Predicate) int64 {
	var n int64
	for y := r.Y0; y < r.Y1; y++ {
		row := g.Row(y)[r.X0:r.X1]
		for _, v := range row {
			if p(v) {
				n++
			}
		}
	}
	return n
}

// Count is the sequential single-region reference count over the whole grid.
func (g *Grid) Count(p Predicate) int64 {
	return g.CountRegion(g.Bounds(), p)
}
