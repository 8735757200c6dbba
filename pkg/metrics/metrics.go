// Package metrics provides Prometheus instrumentation for gridflow components.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for gridflow components.
type Registry struct {
	// Counting run metrics
	RunsTotal      *prometheus.CounterVec
	RunFailures    *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	RegionsScanned *prometheus.CounterVec
	SamplesScanned *prometheus.CounterVec
	MatchesTotal   *prometheus.CounterVec
	Workers        *prometheus.GaugeVec
	WorkerRegions  *prometheus.HistogramVec

	// Tile pool metrics
	TilesDispensed *prometheus.CounterVec

	// Comparison metrics
	ComparisonsTotal   *prometheus.CounterVec
	ComparisonMismatch *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by gridflow components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return NewRegistryWithConfig(Config{Registry: reg})
}

// TryNewRegistry is like NewRegistryWithConfig but returns an error instead
// of panicking when config.Registry already holds gridflow metrics under the
// same namespace.
func TryNewRegistry(config Config) (registry *Registry, err error) {
	defer func() {
		if r := recover(); r != nil {
			regErr, ok := r.(error)
			if !ok {
				panic(r)
			}
			registry, err = nil, fmt.Errorf("metrics: register: %w", regErr)
		}
	}()
	return NewRegistryWithConfig(config), nil
}

// NewRegistryWithConfig creates a registry honoring the namespace and constant
// labels of config. A nil config.Registry falls back to prometheus.DefaultRegisterer.
func NewRegistryWithConfig(config Config) *Registry {
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	ns := config.Namespace
	if ns == "" {
		ns = DefaultNamespace
	}
	factory := promauto.With(reg)
	labels := config.Labels

	return &Registry{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "runs_total",
				Help:        "Total number of counting runs started",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		RunFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "run_failures_total",
				Help:        "Total number of counting runs that returned an error",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "run_duration_seconds",
				Help:        "Wall time of a counting run from partitioning to result",
				Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		RegionsScanned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "regions_scanned_total",
				Help:        "Total number of row bands or tiles scanned by workers",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		SamplesScanned: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "samples_scanned_total",
				Help:        "Total number of samples visited by workers",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		MatchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "matches_total",
				Help:        "Total number of samples that satisfied the predicate",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		Workers: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "workers",
				Help:        "Number of workers used by the most recent run",
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		WorkerRegions: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   "count",
				Name:        "worker_regions",
				Help:        "Regions scanned per worker in a run",
				Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
				ConstLabels: labels,
			},
			[]string{"strategy"},
		),

		TilesDispensed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "tilepool",
				Name:        "dispensed_total",
				Help:        "Total number of tile ids handed out by tile pools",
				ConstLabels: labels,
			},
			[]string{"pool_name"},
		),

		ComparisonsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "compare",
				Name:        "runs_total",
				Help:        "Total number of strategy comparisons",
				ConstLabels: labels,
			},
			[]string{"comparison_name"},
		),

		ComparisonMismatch: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   "compare",
				Name:        "mismatches_total",
				Help:        "Total number of comparisons where strategies disagreed",
				ConstLabels: labels,
			},
			[]string{"comparison_name"},
		),
	}
}
