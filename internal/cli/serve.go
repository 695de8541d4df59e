package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"medrec/internal/config"
	"medrec/internal/jobs"
	"medrec/internal/scorer"
	"medrec/internal/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the API gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runGateway(ctx)
		},
	}
}

func newScorerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scorer",
		Short: "Run the scoring service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.runScorer(ctx)
		},
	}
}

func (a *app) runGateway(ctx context.Context) error {
	srv := server.New(a.cfg, a.log)

	if a.cfg.IsRemote() {
		client := scorer.NewClient(a.cfg.ScorerURL, a.cfg.ScorerTimeout, a.log)
		srv.RegisterRoutes(client)

		monitor := jobs.NewScorerMonitor(client, a.cfg.ScorerHealthInterval, a.log)
		go monitor.Start(ctx)

		a.log.Info("predictions delegated to scoring service", zap.String("url", a.cfg.ScorerURL))
	} else {
		engine, err := config.NewEngine(a.cfg.RulesFile)
		if err != nil {
			return err
		}
		srv.RegisterRoutes(engine)

		a.log.Info("predictions served in process", zap.String("rules_file", a.cfg.RulesFile))
	}

	return serveUntilDone(ctx, srv, a.cfg.Addr(), a.log)
}

func (a *app) runScorer(ctx context.Context) error {
	engine, err := config.NewEngine(a.cfg.RulesFile)
	if err != nil {
		return err
	}

	srv := server.New(a.cfg, a.log)
	srv.RegisterScorerRoutes(engine)

	return serveUntilDone(ctx, srv, a.cfg.ScorerAddr(), a.log)
}

// serveUntilDone runs srv on addr and shuts it down gracefully once ctx is
// done.
func serveUntilDone(ctx context.Context, srv *server.Server, addr string, log *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server exited")
	return nil
}
