// Package timeseries rebuilds per-consumer cumulative count series from full
// log snapshots.
package timeseries

import (
	"math"
	"slices"
	"time"

	"github.com/npratt/pcmon/internal/logparse"
)

// Point is one sample of a consumer's cumulative count.
type Point struct {
	Elapsed int // seconds since the session anchor, never negative
	Count   int
}

// Series is the ordered sample history of one consumer.
// Adjacent points never share the same Count.
type Series []Point

// Store maps consumer id to its series.
type Store map[int]Series

// ConsumerIDs returns the consumer ids present in the store, ascending.
func (s Store) ConsumerIDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Latest returns the most recent point of a consumer's series.
func (s Store) Latest(id int) (Point, bool) {
	series := s[id]
	if len(series) == 0 {
		return Point{}, false
	}
	return series[len(series)-1], true
}

// Reconstructor converts log snapshots into a Store. The only state it keeps
// between calls is the session anchor, pinned on the first non-empty
// snapshot.
type Reconstructor struct {
	now       func() time.Time
	anchor    time.Time
	anchorSet bool
}

// Option configures a Reconstructor.
type Option func(*Reconstructor)

// WithClock sets the clock used to date the anchor.
func WithClock(now func() time.Time) Option {
	return func(r *Reconstructor) {
		r.now = now
	}
}

// New creates a Reconstructor with no anchor.
func New(opts ...Option) *Reconstructor {
	r := &Reconstructor{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Anchor returns the session start time, if it has been set.
func (r *Reconstructor) Anchor() (time.Time, bool) {
	return r.anchor, r.anchorSet
}

// Reconstruct builds a fresh Store from the complete snapshot. Calling it
// twice with the same lines yields equal stores.
func (r *Reconstructor) Reconstruct(lines []string) Store {
	store := make(Store)
	if len(lines) == 0 {
		return store
	}

	if !r.anchorSet {
		r.pinAnchor(lines[0])
	}

	for _, line := range lines {
		ev, ok := logparse.ParseProgress(line)
		if !ok {
			continue
		}

		series := store[ev.ConsumerID]
		if n := len(series); n > 0 && series[n-1].Count == ev.Count {
			continue
		}
		store[ev.ConsumerID] = append(series, Point{
			Elapsed: r.elapsed(ev.At),
			Count:   ev.Count,
		})
	}

	return store
}

// pinAnchor sets the anchor from the first timestamp of the first line,
// dated today, or to now when the line carries no timestamp.
func (r *Reconstructor) pinAnchor(first string) {
	now := r.now()
	if at, ok := logparse.FindClock(first); ok {
		r.anchor = onDay(now, at)
	} else {
		r.anchor = now
	}
	r.anchorSet = true
}

// elapsed converts a clock time to whole seconds after the anchor, on the
// anchor's date, floored at zero.
func (r *Reconstructor) elapsed(at logparse.ClockTime) int {
	d := onDay(r.anchor, at).Sub(r.anchor)
	secs := int(math.Round(d.Seconds()))
	return max(0, secs)
}

func onDay(day time.Time, at logparse.ClockTime) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, at.Hour, at.Minute, at.Second, 0, day.Location())
}
