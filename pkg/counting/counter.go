package counting

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/partition"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
	"github.com/vnykmshr/gridflow/pkg/scheduling/workerpool"
)

// Counter counts matching samples of a grid with a fixed configuration.
// A Counter may be used for many grids, including concurrently.
type Counter struct {
	config Config
	pool   workerpool.Pool
	logger *slog.Logger
}

// New validates config and returns a Counter.
func New(config Config) (*Counter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.withDefaults()

	logger := config.Logger.With("strategy", config.Strategy.String(), "workers", config.Workers)
	pool := workerpool.NewWithConfig(workerpool.Config{
		WorkerCount: config.Workers,
		PanicHandler: func(workerID int, recovered interface{}) {
			logger.Error("worker panicked", "worker", workerID, "panic", recovered)
		},
	})

	return &Counter{
		config: config,
		pool:   pool,
		logger: logger,
	}, nil
}

// Count is a convenience wrapper around New and Counter.Count.
func Count(ctx context.Context, g *grid.Grid, config Config) (int64, error) {
	c, err := New(config)
	if err != nil {
		return 0, err
	}
	return c.Count(ctx, g)
}

// Config returns the effective configuration, defaults included.
func (c *Counter) Config() Config {
	return c.config
}

// Count runs every worker over g and returns the number of samples matching
// the predicate. It returns an error, and no count, if any worker fails or
// ctx is canceled before all workers finish.
func (c *Counter) Count(ctx context.Context, g *grid.Grid) (int64, error) {
	if g == nil {
		return 0, gferrors.NewValidationError("counting", "grid", nil, "cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	r := newRun(c.config, g)

	err := c.partition(ctx, r)
	defer c.release(ctx, r)
	if err != nil {
		return 0, err
	}
	r.advance(StatePartitioned)

	if c.config.Strategy.Tiled() {
		c.logger.Debug("run started", "width", g.Width(), "height", g.Height(), "tiles", r.geom.Total())
	} else {
		c.logger.Debug("run started", "width", g.Width(), "height", g.Height())
	}

	r.advance(StateRunning)
	err = c.pool.Run(ctx, r)
	r.advance(StateJoined)

	if err != nil {
		c.logger.Warn("run failed", "error", err, "duration", time.Since(start))
		return 0, fmt.Errorf("count %s: %w", c.config.Strategy, err)
	}

	total := r.acc.Value()
	r.advance(StateDone)

	c.logger.Debug("run finished", "count", total, "duration", time.Since(start))
	return total, nil
}

// partition prepares the per-worker assignments, or the tile pool.
func (c *Counter) partition(ctx context.Context, r *run) error {
	g := r.grid
	n := c.config.Workers

	if c.config.Strategy == RowsStatic {
		r.bands = partition.Rows(g.Width(), g.Height(), n)
		return nil
	}

	geom, err := grid.NewGeometry(g.Width(), g.Height(), c.config.TileWidth, c.config.TileHeight)
	if err != nil {
		return err
	}
	r.geom = geom

	if c.config.Strategy == TilesStatic {
		r.ranges = partition.Tiles(geom.Total(), n)
		return nil
	}

	d, err := c.config.NewDispenser(geom.Total())
	if err != nil {
		return fmt.Errorf("count %s: create tile pool: %w", c.config.Strategy, err)
	}
	r.dispenser = d
	if d.Total() != geom.Total() {
		return gferrors.NewValidationError("counting", "dispenser_total", d.Total(), "does not match tile count").
			WithHint(fmt.Sprintf("tile pool must cover %d tiles", geom.Total()))
	}
	if err := d.Reset(ctx); err != nil {
		return fmt.Errorf("count %s: reset tile pool: %w", c.config.Strategy, err)
	}
	return nil
}

// release closes the run's dispenser when it holds external state. It runs
// even after cancellation so Redis keys do not outlive the run.
func (c *Counter) release(ctx context.Context, r *run) {
	closer, ok := r.dispenser.(tilepool.Closer)
	if !ok {
		return
	}
	if err := closer.Close(context.WithoutCancel(ctx)); err != nil {
		c.logger.Warn("close tile pool failed", "error", err)
	}
}
