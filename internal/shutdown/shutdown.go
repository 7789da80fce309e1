// Package shutdown converts unix termination signals into a context
// cancellation. Non-unix platforms are not supported.
package shutdown

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Context returns a child of parent that is canceled when SIGTERM or SIGINT
// arrives. The first signal wins; the registration stays alive afterwards so
// repeat signals are swallowed while the process drains, instead of killing
// it mid-close. The watcher goroutine exits when parent is canceled.
func Context(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGTERM, os.Interrupt)

	go func() {
		defer signal.Stop(sig)
		for {
			select {
			case received := <-sig:
				logger.Info("shutting down", slog.String("signal", received.String()))
				cancel()
			case <-parent.Done():
				return
			}
		}
	}()

	return ctx, cancel
}
