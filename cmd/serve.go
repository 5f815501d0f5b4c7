package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/streampulse/pulse/internal/api"
	"github.com/streampulse/pulse/internal/logging"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dashboard results over HTTP.",
	Long: `Start an HTTP server exposing the same results as the CLI under /api.

Routes:
  GET /healthz
  GET /api/trend?category=&preset=&start=&end=
  GET /api/compare?categories=a,b&preset=&platform=
  GET /api/volatility?limit=
  GET /api/live?filter=
  GET /api/events
  GET /api/resolve?preset=&start=&end=
  GET /metrics

Examples:
  pulse serve --addr :8080`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, api.NewServer(cfg.Addr, api.NewHandler(cfg, newSource()).Routes()))
	},
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	logging.Info().Msg("HTTP API stopped")
	return nil
}
