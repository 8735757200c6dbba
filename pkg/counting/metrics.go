package counting

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/metrics"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
)

// MetricsCounter wraps a Counter with Prometheus metrics collection.
type MetricsCounter struct {
	counter  *Counter
	name     string
	label    string
	registry atomic.Pointer[metrics.Registry]
	enabled  atomic.Bool
}

// NewWithMetrics creates a Counter whose runs are recorded in registry. A
// nil registry uses metrics.DefaultRegistry. name labels the tile pool of
// dynamic runs.
func NewWithMetrics(config Config, name string, registry *metrics.Registry) (*MetricsCounter, error) {
	if registry == nil {
		registry = metrics.DefaultRegistry
	}

	mc := &MetricsCounter{
		name:  name,
		label: config.Strategy.String(),
	}
	mc.registry.Store(registry)
	mc.enabled.Store(true)

	onRegion := config.OnRegion
	config.OnRegion = func(workerID int, r grid.Region) {
		if mc.enabled.Load() {
			reg := mc.registry.Load()
			reg.RegionsScanned.WithLabelValues(mc.label).Inc()
			reg.SamplesScanned.WithLabelValues(mc.label).Add(float64(r.Area()))
		}
		if onRegion != nil {
			onRegion(workerID, r)
		}
	}

	onWorkerDone := config.OnWorkerDone
	config.OnWorkerDone = func(workerID int, regions int, subtotal int64) {
		if mc.enabled.Load() {
			mc.registry.Load().WorkerRegions.WithLabelValues(mc.label).Observe(float64(regions))
		}
		if onWorkerDone != nil {
			onWorkerDone(workerID, regions, subtotal)
		}
	}

	if config.Strategy == TilesDynamic {
		newDispenser := config.NewDispenser
		config.NewDispenser = func(total int) (tilepool.Dispenser, error) {
			var d tilepool.Dispenser = tilepool.New(total)
			if newDispenser != nil {
				var err error
				if d, err = newDispenser(total); err != nil {
					return nil, err
				}
			}
			if !mc.enabled.Load() {
				return d, nil
			}
			return tilepool.Instrument(d, mc.name, mc.registry.Load()), nil
		}
	}

	counter, err := New(config)
	if err != nil {
		return nil, err
	}
	mc.counter = counter
	return mc, nil
}

// Count runs the wrapped counter and records the outcome.
func (mc *MetricsCounter) Count(ctx context.Context, g *grid.Grid) (int64, error) {
	start := time.Now()
	n, err := mc.counter.Count(ctx, g)

	if mc.enabled.Load() {
		reg := mc.registry.Load()
		reg.RunsTotal.WithLabelValues(mc.label).Inc()
		reg.Workers.WithLabelValues(mc.label).Set(float64(mc.counter.config.Workers))
		reg.RunDuration.WithLabelValues(mc.label).Observe(time.Since(start).Seconds())
		if err != nil {
			reg.RunFailures.WithLabelValues(mc.label).Inc()
		} else {
			reg.MatchesTotal.WithLabelValues(mc.label).Add(float64(n))
		}
	}

	return n, err
}

// Config returns the effective configuration of the wrapped counter.
func (mc *MetricsCounter) Config() Config {
	return mc.counter.Config()
}

// EnableMetrics enables metrics collection. A non-nil config.Registry must
// not already hold gridflow metrics; if it does, an error is returned and
// the current registry stays in use.
func (mc *MetricsCounter) EnableMetrics(config metrics.Config) error {
	if config.Registry != nil {
		registry, err := metrics.TryNewRegistry(config)
		if err != nil {
			return err
		}
		mc.registry.Store(registry)
	}
	mc.enabled.Store(config.Enabled)
	return nil
}

// DisableMetrics disables metrics collection.
func (mc *MetricsCounter) DisableMetrics() {
	mc.enabled.Store(false)
}

// MetricsEnabled returns true if metrics are currently enabled.
func (mc *MetricsCounter) MetricsEnabled() bool {
	return mc.enabled.Load()
}

var _ metrics.Instrumentable = (*MetricsCounter)(nil)
