/*
Package tilepool dispenses tile ids to workers on demand.

A Dispenser owns a cursor over [0, Total()). Each TryTake atomically returns
the current cursor value and advances it, so every id is handed out exactly
once per run no matter how many workers call concurrently. Which worker gets
which id depends on scheduling: faster workers simply come back sooner and
take more tiles.

	pool := tilepool.New(geom.Total())
	for {
		id, ok, err := pool.TryTake(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		scan(geom.RegionOf(id))
	}

Implementations:

  - Pool: in-process, lock-free compare-and-swap on an atomic cursor.
  - RedisPool: the same contract with the cursor stored in Redis, using a
    Lua script so the compare-and-increment runs atomically inside Redis.
    Every RedisPool gets a key of its own (prefix plus a random run id), so
    two runs never rewind or drain each other's cursor.

A dispenser belongs to exactly one run. Handing the same dispenser to two
concurrent runs makes each reset the other's cursor.

Instrument wraps any Dispenser and counts dispensed ids in Prometheus.
*/
package tilepool
