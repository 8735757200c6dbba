package workerpool

import (
	"context"
	"sync/atomic"
	"time"
)

// Worker is the body run by every worker goroutine of a pool.
type Worker interface {
	// Work runs the share of a batch owned by workerID. It should return
	// promptly once ctx is canceled.
	Work(ctx context.Context, workerID int) error
}

// WorkerFunc is a function type that implements the Worker interface.
type WorkerFunc func(ctx context.Context, workerID int) error

// Work implements the Worker interface for WorkerFunc.
func (f WorkerFunc) Work(ctx context.Context, workerID int) error {
	return f(ctx, workerID)
}

// Result describes how one worker finished.
type Result struct {
	// WorkerID identifies the worker, in [0, WorkerCount)
	WorkerID int

	// Error is any error returned or panic recovered from the worker
	Error error

	// Duration is how long the worker ran
	Duration time.Duration
}

// Pool runs a fixed number of workers over one batch and waits for all of
// them to finish.
type Pool interface {
	// Run starts exactly Size() workers, blocks until every one has returned,
	// and reports the first error. Workers still running when another fails
	// see ctx canceled.
	Run(ctx context.Context, w Worker) error

	// Size returns the number of workers started by each Run.
	Size() int

	// ActiveWorkers returns the number of workers currently running.
	ActiveWorkers() int

	// TotalRuns returns the number of batches started.
	TotalRuns() int64

	// TotalFailed returns the number of batches that returned an error.
	TotalFailed() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers started per Run.
	// Must be greater than 0.
	WorkerCount int

	// PanicHandler is called when a worker panics. The panic is still
	// converted into an error that fails the batch.
	PanicHandler func(workerID int, recovered interface{})

	// OnWorkerStart is called in the worker goroutine before Work.
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called in the worker goroutine after Work returns,
	// including after a recovered panic.
	OnWorkerStop func(workerID int, result Result)
}

// workerPool implements the Pool interface.
type workerPool struct {
	config Config

	activeWorkers atomic.Int64
	totalRuns     atomic.Int64
	totalFailed   atomic.Int64
}

// New creates a pool that runs workerCount workers per batch.
func New(workerCount int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
	})
}

// NewWithConfig creates a new worker pool with the specified configuration.
func NewWithConfig(config Config) Pool {
	if config.WorkerCount <= 0 {
		panic("worker count must be positive")
	}

	return &workerPool{
		config: config,
	}
}
