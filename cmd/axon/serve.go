package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/toyz/axonbind/internal/config"
	"github.com/toyz/axonbind/internal/demo"
	"github.com/toyz/axonbind/pkg/axon"
	"github.com/toyz/axonbind/pkg/axon/adapters"
	"github.com/toyz/axonbind/pkg/axon/logging"
	"github.com/toyz/axonbind/pkg/axon/metrics"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo application",
		Long: `Run the demo application on the configured framework.

Settings come from axon.yaml, AXON_* environment variables and flags, for
example AXON_SERVER_PORT=9090 or --port 9090.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cmd, opts, cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("host", "", "Listen host")
	flags.Int("port", 0, "Listen port")
	flags.String("framework", "", "Web framework: gin, echo or fiber")
	flags.String("log-format", "", "Log format: diagnostic or zap")
	flags.Bool("metrics", true, "Serve Prometheus metrics")

	bind := map[string]string{
		"server.host":      "host",
		"server.port":      "port",
		"server.framework": "framework",
		"log.format":       "log-format",
		"metrics.enabled":  "metrics",
	}
	for key, name := range bind {
		_ = opts.v.BindPFlag(key, flags.Lookup(name))
	}
	return cmd
}

// runServe serves the demo application until ctx is cancelled
func runServe(ctx context.Context, cmd *cobra.Command, opts *rootOptions, cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	diag := opts.diagnostics(cmd, level)

	logger, sync, err := newLogger(cfg, diag)
	if err != nil {
		return err
	}
	defer sync()

	registrarOpts := []axon.RegistrarOption{axon.WithLogger(logger)}
	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector, err = metrics.New(metrics.DefaultConfig())
		if err != nil {
			return fmt.Errorf("failed to set up metrics: %w", err)
		}
		registrarOpts = append(registrarOpts, axon.WithObserver(collector))
	}

	if diag.Level() < logging.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	app, err := demo.Setup(registrarOpts...)
	if err != nil {
		return err
	}

	srv, err := adapters.New(cfg.Server.Framework)
	if err != nil {
		return err
	}
	if _, err := app.Registrar.Bootstrap(func() axon.Application { return srv }, app.Controllers...); err != nil {
		return err
	}
	if collector != nil {
		if err := srv.HandleHTTP(http.MethodGet, cfg.Metrics.Path, collector.Handler()); err != nil {
			return err
		}
	}

	diag.Header(fmt.Sprintf("serving demo on %s at %s", srv.Name(), cfg.Server.Addr()))
	if collector != nil {
		diag.Info("Metrics available at %s", cfg.Metrics.Path)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Server.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	diag.Info("Shutting down (timeout %s)", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	diag.Success("Server stopped")
	return nil
}

// newLogger returns the registrar logger the config asks for and a
// function flushing it
func newLogger(cfg *config.Config, diag *logging.Diagnostics) (axon.Logger, func(), error) {
	if cfg.Log.Format != config.LogFormatZap {
		return diag, func() {}, nil
	}
	zl, err := logging.NewZapLogger(diag.Level(), false)
	if err != nil {
		return nil, nil, err
	}
	z := logging.NewZap(zl)
	return z, func() { _ = z.Sync() }, nil
}
