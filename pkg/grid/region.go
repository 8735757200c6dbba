package grid

import "fmt"

// Region is a half-open rectangle [X0,X1) x [Y0,Y1) of grid coordinates.
type Region struct {
	X0, Y0 int
	X1, Y1 int
}

// Empty reports whether the region contains no samples.
func (r Region) Empty() bool {
	return r.X0 >= r.X1 || r.Y0 >= r.Y1
}

// Area returns the number of samples inside the region.
func (r Region) Area() int {
	if r.Empty() {
		return 0
	}
	return (r.X1 - r.X0) * (r.Y1 - r.Y0)
}

// Clip returns r restricted to b.
func (r Region) Clip(b Region) Region {
	r.X0 = max(r.X0, b.X0)
	r.Y0 = max(r.Y0, b.Y0)
	r.X1 = min(r.X1, b.X1)
	r.Y1 = min(r.Y1, b.Y1)
	if r.X1 < r.X0 {
		r.X1 = r.X0
	}
	if r.Y1 < r.Y0 {
		r.Y1 = r.Y0
	}
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)-[%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}
