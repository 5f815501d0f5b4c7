package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/streampulse/pulse/core"
	"github.com/streampulse/pulse/internal/contract"
	"github.com/streampulse/pulse/internal/logging"
)

// runExecutor runs exec once, or on every tick of --every until interrupted.
// Failed polls are logged and the loop keeps going.
func runExecutor(ctx context.Context, exec core.ExecutorFunc, c *contract.Config, src contract.Source) error {
	if c.Every <= 0 {
		return exec(ctx, c, src)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return pollLoop(ctx, exec, c, src, time.NewTicker(c.Every))
}

// pollLoop owns the ticker and stops it when ctx is done.
func pollLoop(ctx context.Context, exec core.ExecutorFunc, c *contract.Config, src contract.Source, ticker *time.Ticker) error {
	defer ticker.Stop()

	if err := exec(ctx, c, src); err != nil {
		logging.Warn().Err(err).Msg("poll failed")
	}
	quiet := core.WithSuppressHeader(ctx)
	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("polling stopped")
			return nil
		case <-ticker.C:
			if err := exec(quiet, c, src); err != nil {
				logging.Warn().Err(err).Msg("poll failed")
			}
		}
	}
}
