package testutil

import (
	"context"
	"errors"
	"sync"
)

// ErrInjected is returned by FlakyDispenser once its failure point is reached.
var ErrInjected = errors.New("injected failure")

// FlakyDispenser hands out tile ids like an in-process pool but fails every
// TryTake after FailAfter successful takes. It satisfies tilepool.Dispenser.
type FlakyDispenser struct {
	mu        sync.Mutex
	total     int
	next      int
	FailAfter int
	resets    int
	closes    int
}

// NewFlakyDispenser creates a dispenser over [0,total) failing after failAfter takes.
func NewFlakyDispenser(total, failAfter int) *FlakyDispenser {
	return &FlakyDispenser{total: total, FailAfter: failAfter}
}

// TryTake returns the next id, or ErrInjected once FailAfter ids were taken.
func (d *FlakyDispenser) TryTake(ctx context.Context) (int, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.next >= d.FailAfter {
		return 0, false, ErrInjected
	}
	if d.next >= d.total {
		return 0, false, nil
	}
	id := d.next
	d.next++
	return id, true, nil
}

// Reset rewinds the cursor.
func (d *FlakyDispenser) Reset(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next = 0
	d.resets++
	return nil
}

// Total returns the number of ids the dispenser covers.
func (d *FlakyDispenser) Total() int {
	return d.total
}

// Close records the call. It satisfies tilepool.Closer.
func (d *FlakyDispenser) Close(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

// Closes returns how many times Close was called.
func (d *FlakyDispenser) Closes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closes
}

// Resets returns how many times Reset was called.
func (d *FlakyDispenser) Resets() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.resets
}
