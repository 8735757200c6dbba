package counting

import "sync"

// Accumulator is the shared result of a run. Each worker merges its finished
// subtotal exactly once; the total is only meaningful after every worker
// has returned.
type Accumulator struct {
	mu     sync.Mutex
	total  int64
	merges int
}

// Merge adds a worker subtotal.
func (a *Accumulator) Merge(subtotal int64) {
	a.mu.Lock()
	a.total += subtotal
	a.merges++
	a.mu.Unlock()
}

// Value returns the merged total.
func (a *Accumulator) Value() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}

// Merges returns how many subtotals were merged.
func (a *Accumulator) Merges() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.merges
}
