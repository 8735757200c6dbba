/*
Package gridflow counts the samples of a 2-D grid that satisfy a predicate,
splitting the scan across a fixed set of worker goroutines.

Counting (pkg/counting):
  - RowsStatic: contiguous row bands, one per worker
  - TilesStatic: contiguous blocks of tile ids, one per worker
  - TilesDynamic: workers claim tiles from a shared pool until it is empty

Supporting packages:
  - grid: sample storage, regions, tile geometry and predicates
  - partition: block splitting with the remainder on the last worker
  - scheduling/workerpool: start and join the workers of one run
  - scheduling/tilepool: in-process and Redis-backed tile dispensers
  - scheduling/scheduler: cron-driven recurring comparisons
  - compare: run every strategy and check they agree
  - metrics: Prometheus instrumentation

Example usage:

	import (
		"github.com/vnykmshr/gridflow/pkg/counting"
		"github.com/vnykmshr/gridflow/pkg/grid"
	)

	g := grid.Random(1024, 768, 1234)

	cfg := counting.DefaultConfig()
	cfg.Strategy = counting.TilesDynamic
	cfg.Workers = 8

	n, err := counting.Count(ctx, g, cfg)

The gridcount command in cmd/gridcount exposes the same options on the
command line.
*/
package gridflow
