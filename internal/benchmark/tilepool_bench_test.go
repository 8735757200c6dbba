package benchmark

import (
	"context"
	"sync"
	"testing"

	"github.com/vnykmshr/gridflow/pkg/partition"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
	"github.com/vnykmshr/gridflow/pkg/scheduling/workerpool"
)

// BenchmarkTilePoolTake measures contended claims on the atomic cursor.
func BenchmarkTilePoolTake(b *testing.B) {
	pool := tilepool.New(b.N)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			pool.Take()
		}
	})
}

// BenchmarkTilePoolReset measures the per-run reset of the cursor.
func BenchmarkTilePoolReset(b *testing.B) {
	pool := tilepool.New(192)
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_ = pool.Reset(ctx)
	}
}

// BenchmarkWorkerPoolRun measures starting and joining a fixed set of workers.
func BenchmarkWorkerPoolRun(b *testing.B) {
	for _, workers := range []int{2, 4, 8} {
		b.Run(workerLabel(workers), func(b *testing.B) {
			pool := workerpool.New(workers)
			w := workerpool.WorkerFunc(func(_ context.Context, _ int) error { return nil })

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := pool.Run(context.Background(), w); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkSplit measures the block partitioner.
func BenchmarkSplit(b *testing.B) {
	var sink []partition.Range
	for i := 0; i < b.N; i++ {
		sink = partition.Split(768, 7)
	}
	_ = sink
}

// BenchmarkMutexMerge is the baseline for the once-per-worker merge.
func BenchmarkMutexMerge(b *testing.B) {
	var (
		mu    sync.Mutex
		total int64
	)
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			mu.Lock()
			total++
			mu.Unlock()
		}
	})
}

func workerLabel(workers int) string {
	return "workers_" + string(rune('0'+workers))
}
