package tilepool

import (
	"context"
	"sync/atomic"
)

// Dispenser hands out tile ids from [0, Total()) one at a time.
type Dispenser interface {
	// TryTake returns the next undispensed id and true, or false once every
	// id has been handed out. An error means the backend failed and the run
	// must be abandoned.
	TryTake(ctx context.Context) (id int, ok bool, err error)

	// Reset rewinds the cursor to 0. It must not run concurrently with TryTake.
	Reset(ctx context.Context) error

	// Total returns the number of ids the dispenser covers.
	Total() int
}

// Closer is implemented by dispensers that hold external state, such as
// RedisPool. The counter closes them after the run that created them.
type Closer interface {
	Close(ctx context.Context) error
}

// Pool is an in-process Dispenser backed by an atomic cursor.
type Pool struct {
	total int64
	next  atomic.Int64
}

// New creates a pool over [0,total). A non-positive total yields a pool that
// is exhausted from the start.
func New(total int) *Pool {
	if total < 0 {
		total = 0
	}
	return &Pool{total: int64(total)}
}

// Take claims the next id without a context. It never fails.
func (p *Pool) Take() (int, bool) {
	for {
		cur := p.next.Load()
		if cur >= p.total {
			return 0, false
		}
		if p.next.CompareAndSwap(cur, cur+1) {
			return int(cur), true
		}
	}
}

// TryTake implements Dispenser. The error is always nil.
func (p *Pool) TryTake(ctx context.Context) (int, bool, error) {
	id, ok := p.Take()
	return id, ok, nil
}

// Reset implements Dispenser.
func (p *Pool) Reset(ctx context.Context) error {
	p.next.Store(0)
	return nil
}

// Total implements Dispenser.
func (p *Pool) Total() int {
	return int(p.total)
}

// Dispensed returns how many ids have been handed out since the last Reset.
func (p *Pool) Dispensed() int {
	return int(p.next.Load())
}

// Remaining returns how many ids are still available.
func (p *Pool) Remaining() int {
	return int(p.total - p.next.Load())
}
