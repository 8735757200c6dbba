package grid

import "math/rand"

// Random returns a width x height grid of pseudo-random samples. The same
// seed always produces the same grid, so runs can be compared across
// strategies and processes.
func Random(width, height int, seed int64) *Grid {
	rng := rand.New(rand.NewSource(seed))
	data := make([]byte, width*height)
	for i := range data {
		data[i] = byte(rng.Intn(256))
	}
	return &Grid{width: width, height: height, data: data}
}
