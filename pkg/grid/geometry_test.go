package grid

import (
	"testing"

	"github.com/vnykmshr/gridflow/internal/testutil"
)

func TestNewGeometry(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		tw, th    int
		wantError bool
		tilesX    int
		tilesY    int
	}{
		{"even split", 4, 4, 2, 2, false, 2, 2},
		{"uneven split", 10, 7, 4, 4, false, 3, 2},
		{"tile larger than grid", 3, 3, 64, 64, false, 1, 1},
		{"unit tiles", 3, 2, 1, 1, false, 3, 2},
		{"empty grid", 0, 0, 4, 4, false, 0, 0},
		{"zero tile width", 4, 4, 0, 2, true, 0, 0},
		{"negative tile height", 4, 4, 2, -1, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			geom, err := NewGeometry(tt.w, tt.h, tt.tw, tt.th)
			if tt.wantError {
				testutil.AssertError(t, err)
				return
			}
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, geom.TilesX(), tt.tilesX)
			testutil.AssertEqual(t, geom.TilesY(), tt.tilesY)
			testutil.AssertEqual(t, geom.Total(), tt.tilesX*tt.tilesY)
		})
	}
}

func TestRegionOfClipsEdges(t *testing.T) {
	geom, err := NewGeometry(10, 7, 4, 4)
	testutil.AssertNoError(t, err)

	tests := []struct {
		id   int
		want Region
	}{
		{0, Region{0, 0, 4, 4}},
		{1, Region{4, 0, 8, 4}},
		{2, Region{8, 0, 10, 4}},
		{3, Region{0, 4, 4, 7}},
		{4, Region{4, 4, 8, 7}},
		{5, Region{8, 4, 10, 7}},
	}

	for _, tt := range tests {
		got := geom.RegionOf(tt.id)
		if got != tt.want {
			t.Errorf("RegionOf(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestRegionOfCoversGridOnce(t *testing.T) {
	sizes := []struct{ w, h, tw, th int }{
		{10, 7, 4, 4},
		{16, 16, 4, 4},
		{5, 9, 2, 3},
		{1, 1, 3, 3},
		{13, 1, 5, 1},
	}

	for _, s := range sizes {
		geom, err := NewGeometry(s.w, s.h, s.tw, s.th)
		testutil.AssertNoError(t, err)

		visits := make([]int, s.w*s.h)
		for id := 0; id < geom.Total(); id++ {
			r := geom.RegionOf(id)
			if r.X1 > s.w || r.Y1 > s.h || r.Empty() {
				t.Fatalf("%+v: tile %d region %v escapes or is empty", s, id, r)
			}
			for y := r.Y0; y < r.Y1; y++ {
				for x := r.X0; x < r.X1; x++ {
					visits[y*s.w+x]++
				}
			}
		}
		for i, v := range visits {
			if v != 1 {
				t.Fatalf("%+v: sample %d visited %d times", s, i, v)
			}
		}
	}
}

func TestRegionOfRejectsOutOfRange(t *testing.T) {
	geom, err := NewGeometry(4, 4, 2, 2)
	testutil.AssertNoError(t, err)

	testutil.AssertPanics(t, func() { geom.RegionOf(-1) })
	testutil.AssertPanics(t, func() { geom.RegionOf(geom.Total()) })
}

func TestRegion(t *testing.T) {
	r := Region{1, 1, 4, 3}
	testutil.AssertEqual(t, r.Area(), 6)
	testutil.AssertEqual(t, r.Empty(), false)
	testutil.AssertEqual(t, Region{2, 0, 2, 5}.Area(), 0)
	testutil.AssertEqual(t, r.String(), "[1,1)-[4,3)")

	clipped := Region{-2, 1, 12, 9}.Clip(Region{0, 0, 10, 7})
	testutil.AssertEqual(t, clipped, Region{0, 1, 10, 7})

	outside := Region{20, 20, 30, 30}.Clip(Region{0, 0, 10, 7})
	testutil.AssertEqual(t, outside.Empty(), true)
}
