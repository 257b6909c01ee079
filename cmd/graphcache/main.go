// Command graphcache is the operator CLI for a graphcache store: inspect,
// expire and health-check cache entries against the configured backend.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	config "github.com/hanpama/graphcache/internal/config"
	eventbus "github.com/hanpama/graphcache/internal/eventbus"
	otel "github.com/hanpama/graphcache/internal/otel"
	store "github.com/hanpama/graphcache/internal/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	configPath string
	verbose    bool

	logger   *log.Logger
	cfg      *config.Config
	store    store.Store
	shutdown func(context.Context) error
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "graphcache",
		Short:         "Inspect and manage a graphcache store",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.teardown()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to graphcache.toml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newGetCmd(a), newExpireCmd(a), newPingCmd(a))
	return root
}

func (a *app) setup(ctx context.Context) error {
	a.logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	if a.configPath == "" {
		a.cfg = config.Default()
		a.logger.Debug("no config file given, using defaults")
	} else {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
		a.logger.Debug("loaded config", "path", a.configPath, "backend", cfg.Store.Backend)
	}

	// Subscribers registered by otel.Setup need a bus to attach to.
	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(a.cfg.Telemetry.Endpoint, a.cfg.Telemetry.Service)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	if a.cfg.Telemetry.Endpoint != "" {
		a.logger.Debug("telemetry enabled", "endpoint", a.cfg.Telemetry.Endpoint, "service", a.cfg.Telemetry.Service)
	}

	s, err := a.cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	a.store = s
	return nil
}

func (a *app) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("closing store", "err", err)
		}
	}
	if a.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdown(ctx); err != nil {
			a.logger.Warn("flushing telemetry", "err", err)
		}
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the payload stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			data, ok, err := a.store.Get(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no entry for %q", key)
			}
			a.logger.Debug("entry found", "key", key, "bytes", len(data))
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newExpireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expire <key>",
		Short: "Remove a cache entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Expire(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.logger.Info("expired", "key", args[0])
			return nil
		},
	}
}

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Verify connectivity with the store backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := a.store.(store.Pinger)
			if !ok {
				a.logger.Info("backend has no connectivity check", "backend", a.cfg.Store.Backend)
				return nil
			}
			start := time.Now()
			if err := p.Ping(cmd.Context()); err != nil {
				return fmt.Errorf("ping failed: %w", err)
			}
			a.logger.Info("pong", "rtt", time.Since(start))
			return nil
		},
	}
}
