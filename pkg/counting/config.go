package counting

import (
	"io"
	"log/slog"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
	"github.com/vnykmshr/gridflow/pkg/common/validation"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
)

// Config holds the parameters of a counting run.
type Config struct {
	// Strategy selects the work distribution. Required.
	Strategy Strategy

	// Workers is the number of worker goroutines. Must be greater than 0.
	Workers int

	// TileWidth and TileHeight size the tiles of TilesStatic and
	// TilesDynamic. Ignored by RowsStatic.
	TileWidth  int
	TileHeight int

	// Predicate classifies samples. Defaults to grid.Threshold(grid.DefaultThreshold).
	Predicate grid.Predicate

	// NewDispenser builds the tile pool for a TilesDynamic run. It is called
	// once per Count and must return a dispenser no other run uses: the
	// dispenser is reset before workers start, and closed after the run if
	// it implements tilepool.Closer. Defaults to tilepool.New.
	NewDispenser func(total int) (tilepool.Dispenser, error)

	// Logger receives run lifecycle logs. Defaults to a discarding logger.
	Logger *slog.Logger

	// OnRegion is called by a worker before it scans a band or tile.
	// It runs concurrently from several workers.
	OnRegion func(workerID int, r grid.Region)

	// OnWorkerDone is called after a worker merged its subtotal.
	OnWorkerDone func(workerID int, regions int, subtotal int64)

	// OnStateChange is called on every run state transition.
	OnStateChange func(s State)
}

// DefaultConfig returns the benchmark defaults:
// four workers over row bands, 64x64 tiles for the tiled strategies.
func DefaultConfig() Config {
	return Config{
		Strategy:   RowsStatic,
		Workers:    4,
		TileWidth:  64,
		TileHeight: 64,
	}
}

// Validate checks the configuration without running anything.
func (c Config) Validate() error {
	if !c.Strategy.Valid() {
		return gferrors.NewValidationError("counting", "strategy", int(c.Strategy), "unknown strategy").
			WithHint("use RowsStatic, TilesStatic or TilesDynamic")
	}
	if err := validation.ValidatePositive("counting", "workers", c.Workers); err != nil {
		return err
	}
	if c.Strategy.Tiled() {
		if err := validation.ValidatePositive("counting", "tile_width", c.TileWidth); err != nil {
			return err
		}
		if err := validation.ValidatePositive("counting", "tile_height", c.TileHeight); err != nil {
			return err
		}
	}
	return nil
}

// withDefaults fills unset optional fields.
func (c Config) withDefaults() Config {
	if c.Predicate == nil {
		c.Predicate = grid.Threshold(grid.DefaultThreshold)
	}
	if c.NewDispenser == nil {
		c.NewDispenser = func(total int) (tilepool.Dispenser, error) {
			return tilepool.New(total), nil
		}
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}
