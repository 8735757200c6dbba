// Package compare runs the counting strategies side by side on one grid and
// checks that they agree.
package compare

import (
	"context"
	"fmt"
	"strings"
	"time"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
	"github.com/vnykmshr/gridflow/pkg/counting"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/metrics"
)

// Result is the outcome of one strategy.
type Result struct {
	Strategy counting.Strategy
	Count    int64
	Duration time.Duration
}

// Report collects the results of a comparison.
type Report struct {
	// Reference is the sequential single-region count.
	Reference int64

	// ReferenceDuration is how long the sequential scan took.
	ReferenceDuration time.Duration

	Results []Result
}

// Agree reports whether every strategy matched the reference count.
func (r Report) Agree() bool {
	for _, res := range r.Results {
		if res.Count != r.Reference {
			return false
		}
	}
	return true
}

// Fastest returns the result with the shortest duration.
func (r Report) Fastest() (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.Duration < best.Duration {
			best = res
		}
	}
	return best, true
}

func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "sequential: %d (%v)\n", r.Reference, r.ReferenceDuration)
	for _, res := range r.Results {
		fmt.Fprintf(&b, "%s: %d (%v)\n", res.Strategy, res.Count, res.Duration)
	}
	return b.String()
}

// Counter is satisfied by *counting.Counter and *counting.MetricsCounter.
type Counter interface {
	Count(ctx context.Context, g *grid.Grid) (int64, error)
}

// Builder creates the counter used for one strategy.
type Builder func(config counting.Config) (Counter, error)

// Options controls a comparison.
type Options struct {
	// Strategies to run. Empty means counting.Strategies.
	Strategies []counting.Strategy

	// Build creates each strategy's counter. Defaults to counting.New.
	Build Builder

	// Registry, when set, records the comparison under Name.
	Registry *metrics.Registry
	Name     string
}

// Run counts g once per strategy, using base with its Strategy replaced. It
// returns the report and an error wrapping errors.ErrMismatch if any
// strategy disagrees with the sequential count.
func Run(ctx context.Context, g *grid.Grid, base counting.Config, opts Options) (Report, error) {
	strategies := opts.Strategies
	if len(strategies) == 0 {
		strategies = counting.Strategies
	}
	build := opts.Build
	if build == nil {
		build = func(cfg counting.Config) (Counter, error) {
			return counting.New(cfg)
		}
	}

	var report Report

	predicate := base.Predicate
	if predicate == nil {
		predicate = grid.Threshold(grid.DefaultThreshold)
	}
	start := time.Now()
	report.Reference = g.Count(predicate)
	report.ReferenceDuration = time.Since(start)

	for _, s := range strategies {
		cfg := base
		cfg.Strategy = s

		c, err := build(cfg)
		if err != nil {
			return report, fmt.Errorf("compare %s: %w", s, err)
		}

		start := time.Now()
		n, err := c.Count(ctx, g)
		if err != nil {
			return report, fmt.Errorf("compare %s: %w", s, err)
		}
		report.Results = append(report.Results, Result{
			Strategy: s,
			Count:    n,
			Duration: time.Since(start),
		})
	}

	if opts.Registry != nil {
		opts.Registry.ComparisonsTotal.WithLabelValues(opts.Name).Inc()
		if !report.Agree() {
			opts.Registry.ComparisonMismatch.WithLabelValues(opts.Name).Inc()
		}
	}

	if !report.Agree() {
		return report, fmt.Errorf("%w: %s", gferrors.ErrMismatch, strings.TrimSpace(report.String()))
	}
	return report, nil
}
