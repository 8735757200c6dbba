package counting

import (
	"context"

	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/partition"
)

// worker holds the private state of one worker goroutine.
type worker struct {
	id       int
	run      *run
	subtotal int64
	regions  int
}

// Work implements workerpool.Worker. It scans the worker's share and merges
// the subtotal once. On error nothing is merged.
func (r *run) Work(ctx context.Context, workerID int) error {
	w := &worker{id: workerID, run: r}

	var err error
	switch r.config.Strategy {
	case RowsStatic:
		err = w.scan(ctx, r.bands[workerID])
	case TilesStatic:
		err = w.scanTiles(ctx, r.ranges[workerID])
	case TilesDynamic:
		err = w.drain(ctx)
	}
	if err != nil {
		return err
	}

	r.acc.Merge(w.subtotal)
	if r.config.OnWorkerDone != nil {
		r.config.OnWorkerDone(w.id, w.regions, w.subtotal)
	}
	return nil
}

// scan counts one region into the private subtotal.
func (w *worker) scan(ctx context.Context, reg grid.Region) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if reg.Empty() {
		return nil
	}
	if w.run.config.OnRegion != nil {
		w.run.config.OnRegion(w.id, reg)
	}
	w.subtotal += w.run.grid.CountRegion(reg, w.run.config.Predicate)
	w.regions++
	return nil
}

// scanTiles walks a pre-assigned range of tile ids.
func (w *worker) scanTiles(ctx context.Context, tiles partition.Range) error {
	for id := tiles.Start; id < tiles.End; id++ {
		if err := w.scan(ctx, w.run.geom.RegionOf(id)); err != nil {
			return err
		}
	}
	return nil
}

// drain claims tiles from the shared dispenser until it is exhausted.
func (w *worker) drain(ctx context.Context) error {
	for {
		id, ok, err := w.run.dispenser.TryTake(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := w.scan(ctx, w.run.geom.RegionOf(id)); err != nil {
			return err
		}
	}
}
