// Package partition splits work into contiguous per-worker ranges.
//
// Every split gives each worker total/n units and hands the remainder to the
// last worker. This is the exact tie-break the row and tile strategies share,
// so per-worker load stays comparable between them.
package partition

import (
	"fmt"

	"github.com/vnykmshr/gridflow/pkg/grid"
)

// Range is a half-open interval [Start, End) of work units.
type Range struct {
	Start int
	End   int
}

// Len returns the number of units in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Empty reports whether the range holds no units.
func (r Range) Empty() bool {
	return r.End <= r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End)
}

// Split divides [0,total) into n contiguous ranges. Worker i receives
// total/n units; the last worker additionally receives total%n. When
// n > total the leading ranges are empty. It panics if n <= 0.
func Split(total, n int) []Range {
	if n <= 0 {
		panic("partition: worker count must be positive")
	}

	base := total / n
	rem := total % n

	ranges := make([]Range, n)
	cur := 0
	for i := 0; i < n; i++ {
		end := cur + base
		if i == n-1 {
			end += rem
		}
		ranges[i] = Range{Start: cur, End: end}
		cur = end
	}
	return ranges
}

// Rows splits a width x height grid into n horizontal bands.
func Rows(width, height, n int) []grid.Region {
	bands := make([]grid.Region, 0, n)
	for _, r := range Split(height, n) {
		bands = append(bands, grid.Region{X0: 0, Y0: r.Start, X1: width, Y1: r.End})
	}
	return bands
}

// Tiles splits the tile ids [0,total) into n contiguous ranges.
func Tiles(total, n int) []Range {
	return Split(total, n)
}
