/*
Package scheduling groups the execution primitives used by the grid counter.

  - workerpool: a fixed set of workers run once per counting run, joined with errgroup
  - tilepool: shared tile-index dispensers, in-process (atomic cursor) or Redis-backed
  - scheduler: cron-driven recurring jobs such as strategy comparisons

Worker Pool:

	pool := workerpool.New(4)
	err := pool.Run(ctx, workerpool.WorkerFunc(func(ctx context.Context, id int) error {
		// scan this worker's share
		return nil
	}))

Tile Pool:

	pool := tilepool.New(48)
	for {
		idx, ok := pool.Take()
		if !ok {
			break
		}
		// scan tile idx
	}

Scheduler:

	s := scheduler.New()
	s.ScheduleCron("compare", "@every 5m", job)
	s.Start()
	<-s.Stop()
*/
package scheduling
