package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vnykmshr/gridflow/pkg/compare"
	"github.com/vnykmshr/gridflow/pkg/counting"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/metrics"
	"github.com/vnykmshr/gridflow/pkg/scheduling/scheduler"
	"github.com/vnykmshr/gridflow/pkg/scheduling/tilepool"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gridcount",
		Short:         "Count grid samples above a threshold in parallel",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	bindFlags(cmd)
	return cmd
}

// app holds what one invocation builds from its options.
type app struct {
	opts     options
	out      io.Writer
	logger   *slog.Logger
	grid     *grid.Grid
	base     counting.Config
	registry *metrics.Registry
}

func run(ctx context.Context, opts options, out, errOut io.Writer) error {
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: opts.LogLevel}))

	a := &app{
		opts:   opts,
		out:    out,
		logger: logger,
		grid:   grid.Random(opts.Width, opts.Height, opts.Seed),
		base: counting.Config{
			Strategy:   opts.Strategy,
			Workers:    opts.Workers,
			TileWidth:  opts.TileWidth,
			TileHeight: opts.TileHeight,
			Predicate:  grid.Threshold(opts.Threshold),
			Logger:     logger,
		},
	}

	if opts.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: opts.RedisAddr})
		defer client.Close()
		a.base.NewDispenser = func(total int) (tilepool.Dispenser, error) {
			cfg := tilepool.DefaultRedisConfig()
			cfg.Redis = client
			cfg.Key = opts.RedisKey
			cfg.Total = total
			return tilepool.NewRedisPool(cfg)
		}
		logger.Info("tile cursor stored in redis", "addr", opts.RedisAddr, "prefix", opts.RedisKey)
	}

	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		a.registry = metrics.NewRegistry(reg)
		shutdown := serveMetrics(opts.MetricsAddr, reg, logger)
		defer shutdown()
	}

	if opts.Schedule == "" {
		return a.once(ctx)
	}
	return a.scheduled(ctx)
}

// once performs a single count or comparison.
func (a *app) once(ctx context.Context) error {
	if a.opts.Compare {
		return a.compare(ctx)
	}

	c, err := a.build(a.base)
	if err != nil {
		return err
	}
	n, err := c.Count(ctx, a.grid)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.opts.header())
	fmt.Fprintf(a.out, "count = %d\n", n)
	return nil
}

func (a *app) compare(ctx context.Context) error {
	report, err := compare.Run(ctx, a.grid, a.base, compare.Options{
		Build:    a.build,
		Registry: a.registry,
		Name:     "gridcount",
	})
	fmt.Fprintf(a.out, "grid %dx%d | workers=%d | tile=%dx%d\n",
		a.opts.Width, a.opts.Height, a.opts.Workers, a.opts.TileWidth, a.opts.TileHeight)
	fmt.Fprint(a.out, report)
	if fastest, ok := report.Fastest(); ok && err == nil {
		fmt.Fprintf(a.out, "fastest = %s\n", fastest.Strategy)
	}
	return err
}

// build creates a counter, instrumented when metrics are served.
func (a *app) build(cfg counting.Config) (compare.Counter, error) {
	if a.registry == nil {
		return counting.New(cfg)
	}
	return counting.NewWithMetrics(cfg, "gridcount", a.registry)
}

// scheduled repeats once on the cron expression until ctx is canceled.
func (a *app) scheduled(ctx context.Context) error {
	s := scheduler.NewWithConfig(scheduler.Config{
		Logger:             a.logger,
		SkipIfStillRunning: true,
	})
	if err := s.ScheduleCron("gridcount", a.opts.Schedule, scheduler.JobFunc(a.once)); err != nil {
		return err
	}

	if err := s.RunNow(ctx, "gridcount"); err != nil && ctx.Err() == nil {
		a.logger.Warn("initial run failed", "error", err)
	}
	if err := s.Start(); err != nil {
		return err
	}
	a.logger.Info("scheduled", "expr", a.opts.Schedule)

	<-ctx.Done()
	select {
	case <-s.Stop():
	case <-time.After(10 * time.Second):
		a.logger.Warn("timed out waiting for running jobs")
	}
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
