// SPDX-License-Identifier: MIT

// Package config loads the runtime settings of the topograph tools: the
// coincidence tolerance, metric and index of the store, the default time
// limit of bounded searches, and the logging and telemetry switches.
//
// Values come, in increasing precedence, from built-in defaults, an optional
// YAML file and TOPOGRAPH_* environment variables (a dot in a key becomes an
// underscore, so log.level is read from TOPOGRAPH_LOG_LEVEL).
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/katalvlaran/topograph/coincidence"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/deadline"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TOPOGRAPH"

var (
	// ErrUnknownMetric reports a metric name other than squared or euclidean.
	ErrUnknownMetric = coincidence.ErrUnknownMetric

	// ErrUnknownIndex reports an index name other than linear or rtree.
	ErrUnknownIndex = coincidence.ErrUnknownKind

	// ErrUnknownLogLevel reports a log.level that slog cannot parse.
	ErrUnknownLogLevel = errors.New("config: unknown log level")

	// ErrUnknownLogFormat reports a log.format other than text or json.
	ErrUnknownLogFormat = errors.New("config: unknown log format")
)

// Log selects the CLI log handler.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Telemetry switches span export on.
type Telemetry struct {
	Enabled bool   `mapstructure:"enabled"`
	Service string `mapstructure:"service"`
}

// Config is the decoded settings tree.
type Config struct {
	Tolerance float64       `mapstructure:"tolerance"`
	Metric    string        `mapstructure:"metric"`
	Index     string        `mapstructure:"index"`
	TimeLimit time.Duration `mapstructure:"time_limit"`
	Log       Log           `mapstructure:"log"`
	Telemetry Telemetry     `mapstructure:"telemetry"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Tolerance: core.DefaultTolerance,
		Metric:    coincidence.MetricSquared.String(),
		Index:     string(coincidence.KindLinear),
		TimeLimit: 10 * time.Second,
		Log:       Log{Level: "info", Format: "text"},
		Telemetry: Telemetry{Service: "topograph"},
	}
}

// New returns a viper instance carrying the defaults and environment
// binding. Callers may bind flags to it before calling Decode.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("metric", d.Metric)
	v.SetDefault("index", d.Index)
	v.SetDefault("time_limit", d.TimeLimit)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.service", d.Telemetry.Service)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads path (YAML; empty means no file) over the defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	return Decode(v)
}

// Decode unmarshals v into a Config and validates it.
func Decode(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks every field and reports the first problem found.
//
// Errors:
//   - core.ErrInvalidTolerance for tolerance ≤ 0.
//   - deadline.ErrInvalidTimeLimit for time_limit ≤ 0.
//   - ErrUnknownMetric, ErrUnknownIndex, ErrUnknownLogLevel, ErrUnknownLogFormat.
func (c *Config) Validate() error {
	if c.Tolerance <= 0 {
		return fmt.Errorf("config: tolerance %g: %w", c.Tolerance, core.ErrInvalidTolerance)
	}
	if c.TimeLimit <= 0 {
		return fmt.Errorf("config: time_limit %s: %w", c.TimeLimit, deadline.ErrInvalidTimeLimit)
	}
	if _, err := coincidence.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("config: metric: %w", err)
	}
	if _, err := coincidence.New(coincidence.Kind(c.Index), coincidence.MetricSquared); err != nil {
		return fmt.Errorf("config: index: %w", err)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("config: log.format %q: %w", c.Log.Format, ErrUnknownLogFormat)
	}

	return nil
}

// StoreOptions maps the coincidence settings to core options. The returned
// options install a fresh index, so call it once per store.
func (c *Config) StoreOptions() ([]core.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	m, _ := coincidence.ParseMetric(c.Metric)
	idx, _ := coincidence.New(coincidence.Kind(c.Index), m)

	return []core.Option{
		core.WithIndex(idx),
		core.WithDefaultTolerance(c.Tolerance),
	}, nil
}

// NewLogger builds the slog handler selected by log.format at log.level,
// writing to w.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	lvl, err := c.Log.level()
	if err != nil {
		return nil, err
	}
	ho := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(c.Log.Format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, ho)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, ho)), nil
	default:
		return nil, fmt.Errorf("config: log.format %q: %w", c.Log.Format, ErrUnknownLogFormat)
	}
}

func (l Log) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("config: log.level %q: %w", l.Level, ErrUnknownLogLevel)
	}

	return lvl, nil
}
