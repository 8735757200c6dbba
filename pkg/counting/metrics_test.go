package counting

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vnykmshr/gridflow/internal/testutil"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/metrics"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
)

func TestMetricsCounterRecordsRun(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	mc, err := NewWithMetrics(config(TilesDynamic, 3, 2, 2), "test_pool", registry)
	testutil.AssertNoError(t, err)

	n, err := mc.Count(context.Background(), grid.Filled(4, 4, 200))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, n, int64(16))

	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunsTotal.WithLabelValues("dynamic")), float64(1))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.MatchesTotal.WithLabelValues("dynamic")), float64(16))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RegionsScanned.WithLabelValues("dynamic")), float64(4))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.SamplesScanned.WithLabelValues("dynamic")), float64(16))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.Workers.WithLabelValues("dynamic")), float64(3))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.TilesDispensed.WithLabelValues("test_pool")), float64(4))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunFailures.WithLabelValues("dynamic")), float64(0))
}

func TestMetricsCounterRecordsFailure(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	cfg := config(TilesDynamic, 2, 1, 1)
	cfg.NewDispenser = func(total int) (tilepool.Dispenser, error) {
		return testutil.NewFlakyDispenser(total, 2), nil
	}

	mc, err := NewWithMetrics(cfg, "flaky", registry)
	testutil.AssertNoError(t, err)

	_, err = mc.Count(context.Background(), grid.Filled(4, 4, 200))
	testutil.AssertErrorIs(t, err, testutil.ErrInjected)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunFailures.WithLabelValues("dynamic")), float64(1))
	testutil.AssertEqual(t, promtest.ToFloat64(registry.MatchesTotal.WithLabelValues("dynamic")), float64(0))
}

func TestMetricsCounterKeepsUserHooks(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	var regions, done int

	cfg := config(RowsStatic, 2, 0, 0)
	cfg.OnRegion = func(workerID int, r grid.Region) { regions++ }
	cfg.OnWorkerDone = func(workerID int, n int, sub int64) { done++ }
	// Hooks run on worker goroutines; one worker keeps the counters race free.
	cfg.Workers = 1

	mc, err := NewWithMetrics(cfg, "rows", registry)
	testutil.AssertNoError(t, err)
	_, err = mc.Count(context.Background(), grid.Filled(3, 3, 200))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, regions, 1)
	testutil.AssertEqual(t, done, 1)
}

func TestMetricsCounterDisable(t *testing.T) {
	registry := metrics.NewRegistry(prometheus.NewRegistry())
	mc, err := NewWithMetrics(config(RowsStatic, 2, 0, 0), "rows", registry)
	testutil.AssertNoError(t, err)

	mc.DisableMetrics()
	testutil.AssertEqual(t, mc.MetricsEnabled(), false)

	_, err = mc.Count(context.Background(), grid.Filled(2, 2, 200))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunsTotal.WithLabelValues("rows")), float64(0))

	other := prometheus.NewRegistry()
	testutil.AssertNoError(t, mc.EnableMetrics(metrics.Config{Enabled: true, Registry: other}))
	_, err = mc.Count(context.Background(), grid.Filled(2, 2, 200))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunsTotal.WithLabelValues("rows")), float64(0))

	families, err := other.Gather()
	testutil.AssertNoError(t, err)
	if len(families) == 0 {
		t.Error("re-enabled metrics should be recorded in the new registry")
	}
}

func TestMetricsCounterEnableOnUsedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	registry := metrics.NewRegistry(reg)
	mc, err := NewWithMetrics(config(RowsStatic, 2, 0, 0), "rows", registry)
	testutil.AssertNoError(t, err)

	err = mc.EnableMetrics(metrics.Config{Enabled: true, Registry: reg})
	testutil.AssertError(t, err)
	testutil.AssertEqual(t, mc.MetricsEnabled(), true)

	_, err = mc.Count(context.Background(), grid.Filled(2, 2, 200))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, promtest.ToFloat64(registry.RunsTotal.WithLabelValues("rows")), float64(1))
}
