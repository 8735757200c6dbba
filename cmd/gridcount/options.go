package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gferrors "github.com/vnykmshr/gridflow/pkg/common/errors"
	"github.com/vnykmshr/gridflow/pkg/counting"
	"github.com/vnykmshr/gridflow/pkg/grid"
	"github.com/vnykmshr/gridflow/pkg/scheduling/scheduler"
)

// options is the resolved command configuration.
type options struct {
	Strategy   counting.Strategy
	Workers    int
	TileWidth  int
	TileHeight int
	Width      int
	Height     int
	Seed       int64
	Threshold  byte

	Compare     bool
	RedisAddr   string
	RedisKey    string
	MetricsAddr string
	Schedule    string
	LogLevel    slog.Level
}

func bindFlags(cmd *cobra.Command) {
	defaults := counting.DefaultConfig()

	f := cmd.Flags()
	f.Int("workers", defaults.Workers, "number of worker goroutines")
	f.String("strategy", defaults.Strategy.String(), "work distribution: rows, tiles or dynamic (or 1, 2, 3)")
	f.Int("tile-width", defaults.TileWidth, "tile width for tiled strategies")
	f.Int("tile-height", defaults.TileHeight, "tile height for tiled strategies")
	f.Int("width", 1024, "grid width")
	f.Int("height", 768, "grid height")
	f.Int64("seed", 1234, "seed of the synthetic grid")
	f.Int("threshold", int(grid.DefaultThreshold), "count samples strictly greater than this value (0-255)")
	f.Bool("compare", false, "run every strategy and check they agree")
	f.String("redis-addr", "", "keep the dynamic tile cursor in Redis at this address")
	f.String("redis-key", "gridflow:tiles", "Redis key prefix for tile cursors; each run adds its own id")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("schedule", "", "repeat the run on this cron expression until interrupted")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.String("config", "", "config file (yaml, json or toml)")
}

// loadOptions merges flags, GRIDFLOW_* environment variables and the optional
// config file. Explicit flags win over the environment, which wins over the file.
func loadOptions(cmd *cobra.Command) (options, error) {
	v := viper.New()
	v.SetEnvPrefix("GRIDFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return options{}, err
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return options{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	strategy, err := counting.ParseStrategy(v.GetString("strategy"))
	if err != nil {
		return options{}, err
	}

	threshold := v.GetInt("threshold")
	if threshold < 0 || threshold > 255 {
		return options{}, gferrors.NewValidationError("gridcount", "threshold", threshold, "must be within 0-255")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString("log-level"))); err != nil {
		return options{}, gferrors.NewValidationError("gridcount", "log-level", v.GetString("log-level"), "unknown level").
			WithHint("use debug, info, warn or error")
	}

	opts := options{
		Strategy:    strategy,
		Workers:     v.GetInt("workers"),
		TileWidth:   v.GetInt("tile-width"),
		TileHeight:  v.GetInt("tile-height"),
		Width:       v.GetInt("width"),
		Height:      v.GetInt("height"),
		Seed:        v.GetInt64("seed"),
		Threshold:   byte(threshold),
		Compare:     v.GetBool("compare"),
		RedisAddr:   v.GetString("redis-addr"),
		RedisKey:    v.GetString("redis-key"),
		MetricsAddr: v.GetString("metrics-addr"),
		Schedule:    v.GetString("schedule"),
		LogLevel:    level,
	}

	if opts.Width <= 0 || opts.Height <= 0 {
		return options{}, gferrors.NewValidationError("gridcount", "size", fmt.Sprintf("%dx%d", opts.Width, opts.Height), "must be positive")
	}
	if opts.Schedule != "" {
		if err := scheduler.ValidateCronExpression(opts.Schedule); err != nil {
			return options{}, err
		}
	}
	return opts, nil
}

// header is the first output line of a run.
func (o options) header() string {
	s := fmt.Sprintf("grid %dx%d | workers=%d | strategy=%s", o.Width, o.Height, o.Workers, o.Strategy)
	if o.Strategy.Tiled() {
		s += fmt.Sprintf(" | tile=%dx%d", o.TileWidth, o.TileHeight)
	}
	return s
}
