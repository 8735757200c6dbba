package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
)

// Run starts the workers and joins them.
func (p *workerPool) Run(ctx context.Context, w Worker) error {
	if w == nil {
		return fmt.Errorf("worker cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p.totalRuns.Add(1)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.config.WorkerCount; i++ {
		id := i
		g.Go(func() error {
			return p.execute(gctx, id, w)
		})
	}

	if err := g.Wait(); err != nil {
		p.totalFailed.Add(1)
		return err
	}
	return nil
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// ActiveWorkers returns the number of workers currently running.
func (p *workerPool) ActiveWorkers() int {
	return int(p.activeWorkers.Load())
}

// TotalRuns returns the number of batches started.
func (p *workerPool) TotalRuns() int64 {
	return p.totalRuns.Load()
}

// TotalFailed returns the number of batches that returned an error.
func (p *workerPool) TotalFailed() int64 {
	return p.totalFailed.Load()
}

// execute runs one worker, turning a panic into an ErrWorkerFailed error.
func (p *workerPool) execute(ctx context.Context, id int, w Worker) (err error) {
	start := time.Now()
	p.activeWorkers.Add(1)

	if p.config.OnWorkerStart != nil {
		p.config.OnWorkerStart(id)
	}

	defer func() {
		if r := recover(); r != nil {
			if p.config.PanicHandler != nil {
				p.config.PanicHandler(id, r)
			}
			err = fmt.Errorf("%w: worker %d panicked: %v\nStack trace:\n%s",
				gferrors.ErrWorkerFailed, id, r, debug.Stack())
		}

		p.activeWorkers.Add(-1)

		if p.config.OnWorkerStop != nil {
			p.config.OnWorkerStop(id, Result{
				WorkerID: id,
				Error:    err,
				Duration: time.Since(start),
			})
		}
	}()

	return w.Work(ctx, id)
}
