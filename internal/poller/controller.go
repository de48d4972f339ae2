// Package poller runs the two polling cycles against the simulation service,
// reconstructs consumer series from each log snapshot and stops for good
// once the headline counters stall.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/npratt/pcmon/internal/apiclient"
	"github.com/npratt/pcmon/internal/logparse"
	"github.com/npratt/pcmon/internal/stall"
	"github.com/npratt/pcmon/internal/timeseries"
)

// State represents the controller's current state.
type State string

// Controller states.
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// Default polling cadences.
const (
	DefaultStatsInterval = time.Second
	DefaultLogsInterval  = 2 * time.Second
)

// ErrAlreadyStarted is returned when Run is called more than once.
var ErrAlreadyStarted = errors.New("poller already started")

// Controller owns both polling timers, the stall detector and the
// reconstructor. Everything it mutates is touched only by the Run loop.
type Controller struct {
	source   apiclient.Source
	sink     Sink
	logger   *slog.Logger
	now      func() time.Time
	detector *stall.Detector
	recon    *timeseries.Reconstructor

	// rejected holds the highest rejection counter seen per consumer. The
	// service only serves a tail of its log, so lines age out of view while
	// the counters they carried stay valid.
	rejected map[int]int

	statsInterval time.Duration
	logsInterval  time.Duration
	threshold     int

	state   State
	stateMu sync.RWMutex
}

// Option configures a Controller.
type Option func(*Controller)

// WithIntervals sets the statistics and log cadences. Non-positive values
// keep the defaults.
func WithIntervals(stats, logs time.Duration) Option {
	return func(c *Controller) {
		if stats > 0 {
			c.statsInterval = stats
		}
		if logs > 0 {
			c.logsInterval = logs
		}
	}
}

// WithStallThreshold sets how many identical statistics polls stop polling.
// Zero disables stall detection.
func WithStallThreshold(n int) Option {
	return func(c *Controller) {
		c.threshold = n
	}
}

// WithLogger sets the logger for poll failures and state changes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for fetch times and the log anchor.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates an idle Controller.
func New(source apiclient.Source, sink Sink, opts ...Option) *Controller {
	c := &Controller{
		source:        source,
		sink:          sink,
		logger:        slog.Default(),
		now:           time.Now,
		statsInterval: DefaultStatsInterval,
		logsInterval:  DefaultLogsInterval,
		threshold:     stall.DefaultThreshold,
		state:         StateIdle,
		rejected:      make(map[int]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.detector = stall.New(c.threshold)
	c.recon = timeseries.New(timeseries.WithClock(c.now))
	return c
}

// result is what a fetch goroutine hands back to the loop.
type result struct {
	seq   int
	stats *apiclient.StatsResponse
	lines []string
	logs  bool
	err   error
	at    time.Time
}

// Run polls until the stall detector says stop or ctx is cancelled. It fetches
// statistics and logs once immediately, then on two independent tickers.
// A slow fetch never delays the next tick; late results older than one
// already applied are dropped. Run returns nil in both cases.
func (c *Controller) Run(ctx context.Context) error {
	c.stateMu.Lock()
	if c.state != StateIdle {
		c.stateMu.Unlock()
		return ErrAlreadyStarted
	}
	c.state = StateRunning
	c.stateMu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	results := make(chan result)

	c.logger.Info("polling started",
		"stats_interval", c.statsInterval,
		"logs_interval", c.logsInterval,
		"stall_threshold", c.threshold)

	var statsSeq, logsSeq, statsApplied, logsApplied int
	statsSeq++
	c.fetchStats(ctx, done, results, statsSeq)
	logsSeq++
	c.fetchLogs(ctx, done, results, logsSeq)

	statsTicker := time.NewTicker(c.statsInterval)
	defer statsTicker.Stop()
	logsTicker := time.NewTicker(c.logsInterval)
	defer logsTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.setState(StateStopped)
			c.logger.Info("polling cancelled")
			return nil

		case <-statsTicker.C:
			statsSeq++
			c.fetchStats(ctx, done, results, statsSeq)

		case <-logsTicker.C:
			logsSeq++
			c.fetchLogs(ctx, done, results, logsSeq)

		case r := <-results:
			if r.logs {
				if r.seq < logsApplied {
					continue
				}
				logsApplied = r.seq
				c.handleLogs(ctx, r)
				continue
			}

			if r.seq < statsApplied {
				continue
			}
			statsApplied = r.seq
			if c.handleStats(ctx, r) == stall.Stop {
				statsTicker.Stop()
				logsTicker.Stop()
				c.setState(StateStopped)
				c.logger.Info("polling stopped", "reason", ReasonStall, "streak", c.detector.Streak())
				c.sink.Publish(ctx, StoppedUpdate{
					Reason: ReasonStall,
					Streak: c.detector.Streak(),
					At:     r.at,
				})
				return nil
			}
		}
	}
}

// fetchStats starts one statistics request. The result is dropped if Run
// has already returned.
func (c *Controller) fetchStats(ctx context.Context, done <-chan struct{}, results chan<- result, seq int) {
	go func() {
		resp, err := c.source.Stats(ctx)
		r := result{seq: seq, stats: resp, err: err, at: c.now()}
		select {
		case results <- r:
		case <-done:
		}
	}()
}

// fetchLogs starts one log request.
func (c *Controller) fetchLogs(ctx context.Context, done <-chan struct{}, results chan<- result, seq int) {
	go func() {
		lines, err := c.source.Logs(ctx)
		r := result{seq: seq, lines: lines, logs: true, err: err, at: c.now()}
		select {
		case results <- r:
		case <-done:
		}
	}()
}

// handleStats feeds the counters to the stall detector and publishes the
// snapshot unless polling should stop. A failed fetch is a no-op cycle.
func (c *Controller) handleStats(ctx context.Context, r result) stall.Decision {
	if r.err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("stats poll failed", "error", r.err)
		}
		return stall.Continue
	}
	if r.stats == nil {
		return stall.Continue
	}

	st := r.stats.Statistics
	decision := c.detector.Observe(st.TotalProduced, st.TotalConsumed)
	c.logger.Debug("stats poll",
		"produced", st.TotalProduced,
		"consumed", st.TotalConsumed,
		"streak", c.detector.Streak(),
		"decision", decision)
	if decision == stall.Stop {
		return decision
	}

	c.sink.Publish(ctx, StatsUpdate{Stats: r.stats, FetchedAt: r.at})
	return decision
}

// handleLogs rebuilds the series store from the full snapshot.
func (c *Controller) handleLogs(ctx context.Context, r result) {
	if r.err != nil {
		if ctx.Err() == nil {
			c.logger.Warn("logs poll failed", "error", r.err)
		}
		return
	}

	store := c.recon.Reconstruct(r.lines)
	anchor, _ := c.recon.Anchor()
	c.logger.Debug("logs poll", "lines", len(r.lines), "consumers", len(store))

	c.sink.Publish(ctx, LogsUpdate{
		Lines:     r.lines,
		Store:     store,
		Defective: c.countRejected(r.lines),
		Anchor:    anchor,
		FetchedAt: r.at,
	})
}

// countRejected folds the snapshot's rejection counters into the running
// per-consumer maxima and returns their sum.
func (c *Controller) countRejected(lines []string) int {
	for id, n := range logparse.LatestRejections(lines) {
		if n > c.rejected[id] {
			c.rejected[id] = n
		}
	}
	total := 0
	for _, n := range c.rejected {
		total += n
	}
	return total
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.stateMu.Lock()
	c.state = s
	c.stateMu.Unlock()
}
