// Package commands wires the topograph subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/topograph/builder"
	"github.com/katalvlaran/topograph/config"
	"github.com/katalvlaran/topograph/core"
	"github.com/katalvlaran/topograph/internal/telemetry"
	"github.com/katalvlaran/topograph/scene"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	version   string
	v         *viper.Viper
	cfgFile   string
	scenePath string

	cfg      *config.Config
	log      *slog.Logger
	shutdown func(context.Context) error
}

// Execute runs the root command and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		return 1
	}

	return 0
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	a := &app{version: version, v: config.New()}
	d := config.Default()

	root := &cobra.Command{
		Use:           "topograph",
		Short:         "Adjacency queries over point-and-segment scenes",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.shutdown == nil {
				return nil
			}
			return a.shutdown(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.StringVarP(&a.scenePath, "scene", "s", "", "YAML scene file")
	pf.Float64("tolerance", d.Tolerance, "coincidence tolerance")
	pf.String("metric", d.Metric, "coincidence metric (squared, euclidean)")
	pf.String("index", d.Index, "coincidence index (linear, rtree)")
	pf.Duration("time-limit", d.TimeLimit, "bound for enumerating searches")
	pf.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	pf.String("log-format", d.Log.Format, "log format (text, json)")
	pf.Bool("telemetry", d.Telemetry.Enabled, "write trace spans to stderr")
	for key, flag := range map[string]string{
		"tolerance":         "tolerance",
		"metric":            "metric",
		"index":             "index",
		"time_limit":        "time-limit",
		"log.level":         "log-level",
		"log.format":        "log-format",
		"telemetry.enabled": "telemetry",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(
		newStatsCmd(a),
		newDistanceCmd(a),
		newPathCmd(a),
		newAllPathsCmd(a),
		newShortestCmd(a),
		newGenerateCmd(a),
		newBatchCmd(a),
	)

	return root
}

// setup resolves configuration, logging and telemetry for cmd.
func (a *app) setup(cmd *cobra.Command) error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("config %q: %w", a.cfgFile, err)
		}
	}
	cfg, err := config.Decode(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = cfg.NewLogger(cmd.ErrOrStderr()); err != nil {
		return err
	}
	if cfg.Telemetry.Enabled {
		a.shutdown, err = telemetry.Init(cmd.Context(), cfg.Telemetry.Service, a.version, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	a.log.Debug("configured", "tolerance", cfg.Tolerance, "metric", cfg.Metric, "index", cfg.Index, "time_limit", cfg.TimeLimit)

	return nil
}

// storeOptions returns a fresh set of store options from the configuration.
func (a *app) storeOptions() ([]core.Option, error) {
	opts, err := a.cfg.StoreOptions()
	if err != nil {
		return nil, err
	}

	return append(opts, core.WithLogger(a.log)), nil
}

// loadScene builds the scene named by --scene.
func (a *app) loadScene() (*builder.Scene, error) {
	if a.scenePath == "" {
		return nil, errNoScene
	}
	began := time.Now()
	doc, err := scene.LoadFile(a.scenePath)
	if err != nil {
		return nil, err
	}
	opts, err := a.storeOptions()
	if err != nil {
		return nil, err
	}
	sc, err := scene.Build(doc, opts...)
	if err != nil {
		return nil, err
	}
	a.log.Info("scene loaded", "path", a.scenePath, "nodes", sc.Store.Len(), "segments", sc.Store.SegmentCount(), "took", time.Since(began))

	return sc, nil
}
