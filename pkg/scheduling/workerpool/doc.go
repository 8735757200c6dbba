/*
Package workerpool runs a fixed set of worker goroutines over one batch of
work and joins them before returning.

Unlike a long-lived task queue, a Pool here is batch shaped: each Run starts
exactly Size() goroutines, hands every one the same Worker together with its
id, and blocks until all of them have returned. No worker outlives Run.

	pool := workerpool.New(4)

	err := pool.Run(ctx, workerpool.WorkerFunc(func(ctx context.Context, id int) error {
		// scan the share of the grid owned by worker id
		return nil
	}))

Failure Handling:

The first error returned by any worker fails the batch; the context passed to
the remaining workers is canceled so they can stop early. A panic inside a
worker is recovered, reported to Config.PanicHandler, and converted into an
error wrapping errors.ErrWorkerFailed with the stack trace attached. There are
no retries.

Lifecycle Callbacks:

	config := workerpool.Config{
		WorkerCount: 8,
		OnWorkerStart: func(id int) {
			logger.Debug("worker started", "worker", id)
		},
		OnWorkerStop: func(id int, r workerpool.Result) {
			logger.Debug("worker stopped", "worker", id, "duration", r.Duration)
		},
	}
	pool := workerpool.NewWithConfig(config)

Thread Safety:

Run may be called concurrently from several goroutines; each call is an
independent batch. The counters are updated atomically.
*/
package workerpool
