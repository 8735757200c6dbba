package tilepool

import (
	"context"

	"github.com/vnykmshr/gridflow/pkg/metrics"
)

// MetricsDispenser wraps a Dispenser and counts the ids it hands out.
type MetricsDispenser struct {
	Dispenser
	name     string
	registry *metrics.Registry
}

// Instrument wraps d so that every successful take increments
// gridflow_tilepool_dispensed_total{pool_name=name}. A nil registry uses
// metrics.DefaultRegistry.
func Instrument(d Dispenser, name string, registry *metrics.Registry) *MetricsDispenser {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}
	return &MetricsDispenser{Dispenser: d, name: name, registry: registry}
}

// TryTake implements Dispenser.
func (md *MetricsDispenser) TryTake(ctx context.Context) (int, bool, error) {
	id, ok, err := md.Dispenser.TryTake(ctx)
	if ok && err == nil {
		md.registry.TilesDispensed.WithLabelValues(md.name).Inc()
	}
	return id, ok, err
}

// Close closes the wrapped dispenser if it implements Closer.
func (md *MetricsDispenser) Close(ctx context.Context) error {
	if c, ok := md.Dispenser.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
