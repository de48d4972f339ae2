package poller

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
)

// DefaultBufferSize is the default channel buffer size for ChannelSink.
const DefaultBufferSize = 16

// Sink receives updates from the controller loop. Publish is only called
// from that loop, one update at a time.
type Sink interface {
	Publish(ctx context.Context, u Update)
}

// ChannelSink forwards updates over a channel, typically to the dashboard.
// Publish blocks while the buffer is full, until ctx is done.
type ChannelSink struct {
	ch     chan Update
	mu     sync.Mutex
	closed bool
}

// NewChannelSink creates a ChannelSink with the given buffer size.
// If size is 0 or negative, DefaultBufferSize is used.
func NewChannelSink(size int) *ChannelSink {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &ChannelSink{ch: make(chan Update, size)}
}

// Updates returns the receive side of the sink.
func (s *ChannelSink) Updates() <-chan Update {
	return s.ch
}

// Publish sends u, giving up when ctx is done. It is a no-op after Close.
func (s *ChannelSink) Publish(ctx context.Context, u Update) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- u:
	case <-ctx.Done():
	}
}

// Close closes the update channel. It is safe to call multiple times.
func (s *ChannelSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}

// LogSink writes one structured record per update. It backs the plain
// (non-TUI) watch output.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a LogSink. A nil logger uses slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// Publish logs u.
func (s *LogSink) Publish(ctx context.Context, u Update) {
	switch u := u.(type) {
	case StatsUpdate:
		if u.Stats == nil {
			return
		}
		st := u.Stats.Statistics
		s.logger.InfoContext(ctx, "statistics",
			"produced", st.TotalProduced,
			"consumed", st.TotalConsumed,
			"efficiency_percent", st.EfficiencyPercent,
			"throughput_per_sec", st.ThroughputPerSec,
			"producers", len(u.Stats.Producers),
			"consumers", len(u.Stats.Consumers),
		)
	case LogsUpdate:
		attrs := []any{
			"lines", len(u.Lines),
			"defective", u.Defective,
		}
		for _, id := range u.Store.ConsumerIDs() {
			if p, ok := u.Store.Latest(id); ok {
				attrs = append(attrs, slog.Group(consumerKey(id),
					"elapsed_s", p.Elapsed,
					"processed", p.Count,
					"points", len(u.Store[id]),
				))
			}
		}
		s.logger.InfoContext(ctx, "logs", attrs...)
	case StoppedUpdate:
		s.logger.InfoContext(ctx, "polling stopped",
			"reason", u.Reason,
			"unchanged_polls", u.Streak+1,
		)
	}
}

// consumerKey names the log group for one consumer's latest point.
func consumerKey(id int) string {
	return "consumer_" + strconv.Itoa(id)
}

// MultiSink fans every update out to each of its sinks in order.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(ctx context.Context, u Update) {
	for _, s := range m {
		s.Publish(ctx, u)
	}
}

// Compile-time interface checks.
var (
	_ Sink = (*ChannelSink)(nil)
	_ Sink = (*LogSink)(nil)
	_ Sink = MultiSink(nil)
)
