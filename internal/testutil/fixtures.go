// Package testutil provides test infrastructure for unit and integration testing.
// It includes log-line builders, statistics payloads and a fake simulation
// service that other packages use for testing.
package testutil

import "fmt"

// Sample log lines in the simulator's logger format:
// "[hh:mm:ss.mmm] [<level> <PREFIX padded to 20>] message".

// SystemReadyLine is a log line that carries no consumer event.
const SystemReadyLine = "system ready"

// ProgressLine builds a consumer progress line as the simulator writes it.
// ts is "hh:mm:ss".
func ProgressLine(ts string, consumer, item, processed int) string {
	return fmt.Sprintf("[%s.000] [%-20s] Przetwarzam: %d (priorytet: 0, przetworzonych: %d)",
		ts, fmt.Sprintf("[INFO] KONSUMENT %d", consumer), item, processed)
}

// RejectionLine builds a consumer line reporting a defective item.
func RejectionLine(ts string, consumer, item, rejected int) string {
	return fmt.Sprintf("[%s.000] [%-20s] ODRZUCONO WADLIWY: %d (odrzuconych: %d)",
		ts, fmt.Sprintf("[INFO] KONSUMENT %d", consumer), item, rejected)
}

// ProducerLine builds a producer line, which the monitor must ignore.
func ProducerLine(ts string, producer, item, done, total int) string {
	return fmt.Sprintf("[%s.000] [%-20s] Wyprodukowano: %d (priorytet: 0, postęp: %d/%d)",
		ts, fmt.Sprintf("[INFO] PRODUCENT %d", producer), item, done, total)
}

// SampleLogSnapshot is a short log buffer covering two consumers, producer
// noise and one rejection.
var SampleLogSnapshot = []string{
	"[10:00:00.000] [[INFO] SYSTEM         ] Uruchamianie systemu producent-konsument",
	ProducerLine("10:00:00", 1, 17, 1, 6),
	ProgressLine("10:00:01", 1, 17, 1),
	ProducerLine("10:00:01", 2, 93, 1, 6),
	ProgressLine("10:00:02", 2, 93, 1),
	RejectionLine("10:00:03", 1, 55, 1),
	ProgressLine("10:00:04", 1, 40, 2),
	ProgressLine("10:00:05", 2, 12, 2),
}

// StatsJSON builds a GET /stats body with the given counters. Producers and
// consumers are listed with numeric items, as the simulator exports them.
func StatsJSON(produced, consumed int) string {
	efficiency := 0.0
	if produced > 0 {
		efficiency = float64(consumed) / float64(produced) * 100
	}
	return fmt.Sprintf(`{
  "metadata": {"total_time_seconds": 12.5, "start_time": "2026-03-14T10:00:00", "end_time": "2026-03-14T10:00:12"},
  "statistics": {"total_produced": %d, "total_consumed": %d, "average_throughput_per_sec": 1.5, "efficiency_percent": %.2f},
  "producers": [
    {"id": 1, "count": 2, "items": [17, 40]},
    {"id": 2, "count": 1, "items": [93]}
  ],
  "consumers": [
    {"id": 1, "count": 2, "items": [17, 40]},
    {"id": 2, "count": 1, "items": ["93"]}
  ]
}`, produced, consumed, efficiency)
}

// EmptyStatsJSON is the service response before the simulation writes any
// statistics.
const EmptyStatsJSON = `{"metadata": {}, "statistics": {}, "producers": [], "consumers": [], "last_update": null}`

// HealthJSON is a healthy GET /health body.
const HealthJSON = `{"status": "ok", "timestamp": "2026-03-14T10:00:00"}`
