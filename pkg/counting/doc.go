/*
Package counting counts the samples of a grid that satisfy a predicate,
using a fixed number of parallel workers and one of three work distribution
strategies.

	n, err := counting.Count(ctx, g, counting.Config{
		Strategy:   counting.TilesDynamic,
		Workers:    8,
		TileWidth:  64,
		TileHeight: 64,
		Predicate:  grid.Threshold(128),
	})

Strategies:

  - RowsStatic: the height is split into one contiguous band per worker.
  - TilesStatic: the grid is cut into tiles; each worker owns a contiguous
    range of tile ids, fixed before the run.
  - TilesDynamic: the same tiles are claimed one at a time from a shared
    tilepool.Dispenser, so faster workers take more of them.

Static splits hand the remainder to the last worker. Every strategy returns
the same count for the same grid and predicate, independent of worker count
and tile size.

Run Lifecycle:

Each Count call walks init -> partitioned -> running -> joined -> done.
Workers keep a private subtotal and merge it into the run's Accumulator
exactly once, after their share is finished. The result is read only after
every worker has returned. If any worker fails (a panic, a tile pool error,
or ctx cancellation) Count returns an error and no count.

Metrics:

NewWithMetrics wraps a Counter and records runs, durations, scanned regions
and samples, and dispensed tiles in a metrics.Registry.
*/
package counting
