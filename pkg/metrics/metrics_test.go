package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistryWithConfigNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRegistryWithConfig(Config{
		Registry:  reg,
		Namespace: "imaging",
		Labels:    prometheus.Labels{"host": "test"},
	})

	r.TilesDispensed.WithLabelValues("shared").Add(3)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "imaging_tilepool_dispensed_total" {
			found = true
		}
		if !strings.HasPrefix(f.GetName(), "imaging_") {
			t.Errorf("metric %q does not use the configured namespace", f.GetName())
		}
	}
	if !found {
		t.Error("imaging_tilepool_dispensed_total not registered")
	}
	if got := testutil.ToFloat64(r.TilesDispensed.WithLabelValues("shared")); got != 3 {
		t.Errorf("dispensed = %v, want 3", got)
	}
}

func TestSeparateRegistriesDoNotConflict(t *testing.T) {
	a := NewRegistry(prometheus.NewRegistry())
	b := NewRegistry(prometheus.NewRegistry())

	a.RunsTotal.WithLabelValues("rows").Inc()

	if got := testutil.ToFloat64(b.RunsTotal.WithLabelValues("rows")); got != 0 {
		t.Errorf("registry b saw %v runs, want 0", got)
	}
}

func TestDefaultRegistryInitialized(t *testing.T) {
	if DefaultRegistry == nil {
		t.Fatal("DefaultRegistry should be initialized")
	}
}

func TestTryNewRegistryDuplicate(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := TryNewRegistry(Config{Registry: reg}); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	r, err := TryNewRegistry(Config{Registry: reg})
	if err == nil {
		t.Fatal("expected error registering gridflow metrics twice")
	}
	if r != nil {
		t.Error("registry should be nil on error")
	}
	var already prometheus.AlreadyRegisteredError
	if !errors.As(err, &already) {
		t.Errorf("expected AlreadyRegisteredError, got %T: %v", err, err)
	}

	if _, err := TryNewRegistry(Config{Registry: reg, Namespace: "other"}); err != nil {
		t.Errorf("different namespace should register: %v", err)
	}
}
