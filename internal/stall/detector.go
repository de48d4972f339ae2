// Package stall detects when the simulation has stopped making progress.
package stall

// Decision tells the poller whether to keep polling.
type Decision int

const (
	// Continue means progress may still happen.
	Continue Decision = iota
	// Stop means both counters have been flat long enough to stop polling.
	Stop
)

// String returns the decision name.
func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// DefaultThreshold is the number of consecutive identical observations
// that counts as a stall.
const DefaultThreshold = 5

// Detector compares the produced/consumed totals between consecutive polls.
// Once it returns Stop it keeps returning Stop.
type Detector struct {
	threshold    int
	lastProduced int
	lastConsumed int
	seen         bool
	streak       int
	stopped      bool
}

// New creates a Detector. A threshold of zero or less disables stall
// detection.
func New(threshold int) *Detector {
	return &Detector{threshold: threshold}
}

// Observe records one statistics poll.
func (d *Detector) Observe(produced, consumed int) Decision {
	if d.stopped {
		return Stop
	}

	if d.seen && produced == d.lastProduced && consumed == d.lastConsumed {
		d.streak++
	} else {
		d.streak = 0
		d.lastProduced = produced
		d.lastConsumed = consumed
		d.seen = true
	}

	// streak counts repeats, so the pair has been seen streak+1 times in a
	// row. The first observation of a pair never stops.
	if d.threshold > 0 && d.streak > 0 && d.streak+1 >= d.threshold {
		d.stopped = true
		return Stop
	}
	return Continue
}

// Streak returns how many consecutive polls repeated the previous pair.
func (d *Detector) Streak() int {
	return d.streak
}

// Stopped reports whether the detector has returned Stop.
func (d *Detector) Stopped() bool {
	return d.stopped
}
