// Package shutdown runs a blocking component until it returns on its own or
// the process receives SIGINT/SIGTERM.
package shutdown

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ErrTimeout is returned when the runner does not return within the grace
// period after a signal.
var ErrTimeout = errors.New("shutdown timeout exceeded")

// RunWithGracefulShutdown starts runner and blocks until it returns or a
// termination signal arrives. On a signal the runner's context is cancelled
// and RunWithGracefulShutdown waits up to timeout for it to return.
// A runner that ends with context.Canceled is treated as a clean exit.
func RunWithGracefulShutdown(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	return run(ctx, logger, timeout, runner, sigChan)
}

// run is RunWithGracefulShutdown with an injectable signal source.
func run(
	ctx context.Context,
	logger *slog.Logger,
	timeout time.Duration,
	runner func(ctx context.Context) error,
	signals <-chan os.Signal,
) error {
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	runDone := make(chan error, 1)
	go func() {
		runDone <- runner(runCtx)
	}()

	select {
	case sig := <-signals:
		logger.Info("received signal, initiating shutdown", "signal", sig)
		runCancel()

		timer := time.NewTimer(timeout)
		defer timer.Stop()

		select {
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
		case <-timer.C:
			logger.Warn("shutdown timeout exceeded", "timeout", timeout)
			return ErrTimeout
		}

		logger.Info("shutdown complete")
		return nil

	case err := <-runDone:
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
}
