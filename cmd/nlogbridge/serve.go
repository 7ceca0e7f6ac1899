package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/philipp01105/nlogbridge/admin"
	"github.com/philipp01105/nlogbridge/bridge"
	"github.com/philipp01105/nlogbridge/config"
	"github.com/philipp01105/nlogbridge/core"
	"github.com/philipp01105/nlogbridge/handler"
	"github.com/philipp01105/nlogbridge/handler/consolehandler"
	"github.com/philipp01105/nlogbridge/logger"
	"github.com/philipp01105/nlogbridge/severity"
	"github.com/philipp01105/nlogbridge/sink"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a bridge over the configured sink and serve its admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.AdminAddr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, opts.log, cmd)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "admin listen address (overrides adminAddr)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, log *zap.Logger, cmd *cobra.Command) (err error) {
	console := consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
		Writer: cmd.ErrOrStderr(),
	})
	otelShutdown, err := setupOTelSDK(ctx, handler.NewSlogHandler(console, core.WarnLevel))
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err = multierr.Append(err, otelShutdown(sctx))
	}()

	s, err := openSink(ctx, cfg, log)
	if err != nil {
		return err
	}
	return serveSink(ctx, cfg, s, log, console)
}

// serveSink runs the admin server for a bridge over s until ctx is done,
// then closes the bridge, which ends the session and closes s.
func serveSink(ctx context.Context, cfg config.Config, s sink.Sink, log *zap.Logger, console handler.Handler) error {
	b, err := bridge.New(cfg.BridgeConfig(s, severity.ZapDiagnostics(log)))
	if err != nil {
		return multierr.Append(err, s.Close())
	}

	// The server's own lifecycle events go to the console and through the
	// bridge, like any application using it.
	appLog := logger.NewBuilder().
		WithHandler(handler.NewMultiHandler(console, b)).
		WithLevel(core.VerboseLevel).
		WithName("nlogbridge").
		Build()
	slog.SetDefault(slog.New(handler.NewSlogHandler(b, core.VerboseLevel)))

	srv := &http.Server{
		Addr:              cfg.AdminAddr,
		Handler:           admin.NewRouter(b, log.Named("admin")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLog.Info("admin server listening", logger.String("addr", cfg.AdminAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	snap := b.Stats().GetSnapshot()
	appLog.Info("shutting down",
		logger.Int64("suppressed", int64(snap.Suppressed)),
		logger.Int64("failed", int64(snap.Failed)),
	)
	return multierr.Append(err, b.Close())
}
