// Package apiclient provides the HTTP client for the simulation service's
// statistics, log and health endpoints. Interfaces are split by endpoint so
// callers and tests depend only on what they use.
package apiclient

import (
	"context"
	"strings"

	"github.com/bytedance/sonic"
)

// Statistics holds the headline counters of the simulation.
type Statistics struct {
	TotalProduced     int     `json:"total_produced"`
	TotalConsumed     int     `json:"total_consumed"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	ThroughputPerSec  float64 `json:"average_throughput_per_sec"`
}

// Metadata describes the simulation run as reported by the service.
type Metadata struct {
	TotalTimeSeconds float64 `json:"total_time_seconds"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
}

// Item is one element handled by a producer or consumer. The service emits
// items either as JSON strings or bare numbers; both decode to their text.
type Item string

// UnmarshalJSON accepts a JSON string, number or null.
func (i *Item) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	switch {
	case raw == "null":
		*i = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := sonic.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = Item(s)
	default:
		*i = Item(raw)
	}
	return nil
}

// Entity is a producer or consumer with the items it has handled so far.
type Entity struct {
	ID    int    `json:"id"`
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Metadata   Metadata   `json:"metadata"`
	Statistics Statistics `json:"statistics"`
	Producers  []Entity   `json:"producers"`
	Consumers  []Entity   `json:"consumers"`
}

// LogsResponse is the body of GET /logs.
type LogsResponse struct {
	Logs []string `json:"logs"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// StatsFetcher retrieves the aggregate statistics.
type StatsFetcher interface {
	// Stats fetches the current statistics snapshot.
	Stats(ctx context.Context) (*StatsResponse, error)
}

// LogFetcher retrieves the rolling log buffer.
type LogFetcher interface {
	// Logs fetches the full current log snapshot, oldest line first.
	Logs(ctx context.Context) ([]string, error)
}

// Source combines the two polled endpoints.
// Use this when you need everything the poller consumes.
type Source interface {
	StatsFetcher
	LogFetcher
}
