package main

import (
	"context"
	"os"

	"github.com/danmuck/kicadctl/internal/config"
	"github.com/danmuck/kicadctl/internal/kicad"
	"github.com/danmuck/kicadctl/internal/logging"
	"github.com/danmuck/kicadctl/internal/observability"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const appName = "kicadctl"

// annotationSkipConfig marks commands that read config files themselves.
const annotationSkipConfig = "kicadctl/skip-config"

type rootOptions struct {
	configPath string
	socket     string
	clientName string
	logLevel   string
}

// app carries the resolved settings shared by all subcommands.
type app struct {
	opts            rootOptions
	getenv          func(string) string
	configureLogger func(app string, cfg logging.Config) zerolog.Logger

	cfg    config.Config
	logger zerolog.Logger
}

func newRootCmd(a *app) *cobra.Command {
	if a.getenv == nil {
		a.getenv = os.Getenv
	}
	root := &cobra.Command{
		Use:   appName,
		Short: "Query a running KiCad over its IPC API",
		Long: `kicadctl connects to the API socket of a running KiCad and reports on the
open board: footprints, placement statistics and mounting holes. The watch
command keeps a live view and serves it over HTTP with Prometheus metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&a.opts.configPath, "config", "c", "", "path to a kicadctl TOML config")
	flags.StringVar(&a.opts.socket, "socket", "", "KiCad API socket address (overrides "+kicad.EnvSocketPath+")")
	flags.StringVar(&a.opts.clientName, "client-name", "", "client name sent to KiCad")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "trace|debug|info|warn|error|disabled")

	root.AddCommand(
		versionCmd(a),
		boardCmd(a),
		footprintsCmd(a),
		statsCmd(a),
		watchCmd(a),
		configCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	opts := a.opts
	if skipsConfig(cmd) {
		opts.configPath = ""
	}
	cfg, err := resolveConfig(opts, a.getenv)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = a.configureLogger(appName, resolveLogging(cfg, a.opts))
	return nil
}

func skipsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationSkipConfig] == "true" {
			return true
		}
	}
	return false
}

// resolveConfig layers flags over the environment over the config file over
// defaults.
func resolveConfig(opts rootOptions, getenv func(string) string) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if v := getenv(kicad.EnvSocketPath); v != "" {
		cfg.SocketPath = v
	}
	if opts.socket != "" {
		cfg.SocketPath = opts.socket
	}
	if opts.clientName != "" {
		cfg.ClientName = opts.clientName
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func resolveLogging(cfg config.Config, opts rootOptions) logging.Config {
	lc := cfg.Logging(logging.DefaultConfig(logging.ProfileRuntime))
	logging.ApplyEnv(&lc)
	if lvl, ok := logging.ParseLevel(opts.logLevel); ok {
		lc.Level = lvl
	}
	return lc
}

func (a *app) clientOptions() []kicad.Option {
	return []kicad.Option{
		kicad.WithLogger(a.logger),
		kicad.WithCallRecorder(observability.RecordAPICall),
	}
}

func (a *app) connect(ctx context.Context) (*kicad.Client, error) {
	return kicad.Connect(ctx, a.cfg.Connection(), a.clientOptions()...)
}
