package shutdown

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestRun_RunnerReturns(t *testing.T) {
	wantErr := errors.New("boom")

	tests := []struct {
		name    string
		runErr  error
		wantErr error
	}{
		{"clean exit", nil, nil},
		{"runner error", wantErr, wantErr},
		{"cancelled counts as clean", context.Canceled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := run(context.Background(), newTestLogger(&buf), time.Second,
				func(ctx context.Context) error { return tt.runErr },
				make(chan os.Signal))

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun_SignalCancelsRunner(t *testing.T) {
	var buf bytes.Buffer
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGTERM

	err := run(context.Background(), newTestLogger(&buf), time.Second,
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
		signals)

	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, "received signal") || !strings.Contains(out, "shutdown complete") {
		t.Errorf("missing shutdown records: %s", out)
	}
}

func TestRun_SignalTimeout(t *testing.T) {
	var buf bytes.Buffer
	signals := make(chan os.Signal, 1)
	signals <- syscall.SIGINT

	release := make(chan struct{})
	defer close(release)

	err := run(context.Background(), newTestLogger(&buf), 20*time.Millisecond,
		func(ctx context.Context) error {
			<-release
			return nil
		},
		signals)

	if !errors.Is(err, ErrTimeout) {
		t.Errorf("err = %v, want ErrTimeout", err)
	}
}

func TestRun_ParentContextCancelled(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, newTestLogger(&buf), time.Second,
		func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
		make(chan os.Signal))

	if err != nil {
		t.Errorf("err = %v, want nil", err)
	}
}

func TestRunWithGracefulShutdown_ProcessSignal(t *testing.T) {
	var buf bytes.Buffer
	started := make(chan struct{})

	go func() {
		<-started
		_ = syscall.Kill(os.Getpid(), syscall.SIGTERM)
	}()

	err := RunWithGracefulShutdown(context.Background(), newTestLogger(&buf), time.Second,
		func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})

	if err != nil {
		t.Fatalf("err = %v, want nil", err)
	}
}
