package counting_test

import (
	"context"
	"fmt"

	"github.com/vnykmshr/gridflow/pkg/counting"
	"github.com/vnykmshr/gridflow/pkg/grid"
)

// Example counts the same grid with all three strategies.
func Example() {
	g := grid.Filled(4, 4, 3)

	configs := []counting.Config{
		{Strategy: counting.RowsStatic, Workers: 2},
		{Strategy: counting.TilesStatic, Workers: 3, TileWidth: 2, TileHeight: 2},
		{Strategy: counting.TilesDynamic, Workers: 4, TileWidth: 2, TileHeight: 2},
	}

	for _, cfg := range configs {
		cfg.Predicate = grid.Threshold(2)
		n, err := counting.Count(context.Background(), g, cfg)
		if err != nil {
			fmt.Println("count failed:", err)
			return
		}
		fmt.Printf("%s: %d\n", cfg.Strategy, n)
	}

	// Output:
	// rows: 16
	// tiles: 16
	// dynamic: 16
}
