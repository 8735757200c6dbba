package counting

import (
	"strings"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
)

// Strategy selects how the grid is divided between workers.
type Strategy int

const (
	// RowsStatic gives each worker one contiguous band of rows.
	RowsStatic Strategy = iota + 1

	// TilesStatic pre-assigns each worker a contiguous range of tile ids.
	TilesStatic

	// TilesDynamic lets workers pull tile ids from a shared pool until it is empty.
	TilesDynamic
)

// Strategies lists every supported strategy in declaration order.
var Strategies = []Strategy{RowsStatic, TilesStatic, TilesDynamic}

// String returns the strategy name used in flags, logs and metric labels.
func (s Strategy) String() string {
	switch s {
	case RowsStatic:
		return "rows"
	case TilesStatic:
		return "tiles"
	case TilesDynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the supported strategies.
func (s Strategy) Valid() bool {
	return s >= RowsStatic && s <= TilesDynamic
}

// Tiled reports whether the strategy works on tiles.
func (s Strategy) Tiled() bool {
	return s == TilesStatic || s == TilesDynamic
}

// ParseStrategy parses a strategy name. Besides the names returned by
// String it accepts the numeric tags 1, 2 and 3.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rows", "rows-static", "1":
		return RowsStatic, nil
	case "tiles", "tiles-static", "2":
		return TilesStatic, nil
	case "dynamic", "tiles-dynamic", "3":
		return TilesDynamic, nil
	}
	return 0, gferrors.NewValidationError("counting", "strategy", s, "unknown strategy").
		WithHint("use rows, tiles or dynamic")
}
