// Package logparse extracts structured consumer events from the simulation's
// plain-text log lines.
package logparse

import (
	"fmt"
	"regexp"
	"strconv"
)

// ClockTime is a wall-clock time of day with second resolution.
// Log lines carry no date component.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

// Seconds returns the number of seconds since midnight.
func (c ClockTime) Seconds() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

// String formats the clock as hh:mm:ss.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// ProgressEvent is a consumer reporting its cumulative processed count.
type ProgressEvent struct {
	ConsumerID int
	Count      int
	At         ClockTime
}

// RejectionEvent is a consumer reporting its cumulative count of rejected
// (defective) items.
type RejectionEvent struct {
	ConsumerID int
	Rejected   int
	At         ClockTime
}

var (
	consumerPattern  = regexp.MustCompile(`KONSUMENT\s+(\d+)`)
	processedPattern = regexp.MustCompile(`przetworzonych:\s*(\d+)`)
	rejectedPattern  = regexp.MustCompile(`odrzuconych:\s*(\d+)`)
	clockPattern     = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2})`)
)

// ParseProgress recognizes a consumer progress line. The consumer token, the
// processed-count token and an hh:mm:ss timestamp may appear in any order;
// the leftmost match of each wins. Returns false for any line missing one of
// the three.
func ParseProgress(line string) (ProgressEvent, bool) {
	id, ok := consumerID(line)
	if !ok {
		return ProgressEvent{}, false
	}
	count, ok := firstInt(processedPattern, line)
	if !ok {
		return ProgressEvent{}, false
	}
	at, ok := FindClock(line)
	if !ok {
		return ProgressEvent{}, false
	}
	return ProgressEvent{ConsumerID: id, Count: count, At: at}, true
}

// ParseRejection recognizes a line where a consumer rejected a defective
// item and reports its running rejection total.
func ParseRejection(line string) (RejectionEvent, bool) {
	id, ok := consumerID(line)
	if !ok {
		return RejectionEvent{}, false
	}
	rejected, ok := firstInt(rejectedPattern, line)
	if !ok {
		return RejectionEvent{}, false
	}
	at, ok := FindClock(line)
	if !ok {
		return RejectionEvent{}, false
	}
	return RejectionEvent{ConsumerID: id, Rejected: rejected, At: at}, true
}

// FindClock returns the leftmost hh:mm:ss timestamp in line.
// Out-of-range fields (e.g. 25:00:00) are treated as no timestamp.
func FindClock(line string) (ClockTime, bool) {
	m := clockPattern.FindStringSubmatch(line)
	if m == nil {
		return ClockTime{}, false
	}

	h, errH := strconv.Atoi(m[1])
	mi, errM := strconv.Atoi(m[2])
	s, errS := strconv.Atoi(m[3])
	if errH != nil || errM != nil || errS != nil {
		return ClockTime{}, false
	}
	if h > 23 || mi > 59 || s > 59 {
		return ClockTime{}, false
	}
	return ClockTime{Hour: h, Minute: mi, Second: s}, true
}

// LatestRejections returns the last rejection counter each consumer reported
// in lines, keyed by consumer id.
func LatestRejections(lines []string) map[int]int {
	latest := make(map[int]int)
	for _, line := range lines {
		if ev, ok := ParseRejection(line); ok {
			latest[ev.ConsumerID] = ev.Rejected
		}
	}
	return latest
}

// CountRejected derives the total number of defective items from a log
// snapshot: the last rejection counter reported by each consumer, summed.
func CountRejected(lines []string) int {
	total := 0
	for _, n := range LatestRejections(lines) {
		total += n
	}
	return total
}

// consumerID extracts a positive consumer id.
func consumerID(line string) (int, bool) {
	id, ok := firstInt(consumerPattern, line)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// firstInt returns the first capture group of the leftmost match as a
// base-10 integer. Digits that overflow int are treated as no match.
func firstInt(re *regexp.Regexp, line string) (int, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
