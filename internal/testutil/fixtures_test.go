package testutil

import (
	"encoding/json"
	"testing"

	"github.com/npratt/pcmon/internal/logparse"
)

func TestProgressLine_Parses(t *testing.T) {
	ev, ok := logparse.ParseProgress(ProgressLine("10:00:04", 3, 40, 7))
	if !ok {
		t.Fatal("ProgressLine should parse as a progress event")
	}
	if ev.ConsumerID != 3 || ev.Count != 7 {
		t.Errorf("event = %+v, want consumer 3 count 7", ev)
	}
	if ev.At.String() != "10:00:04" {
		t.Errorf("At = %s, want 10:00:04", ev.At)
	}
}

func TestRejectionLine_Parses(t *testing.T) {
	ev, ok := logparse.ParseRejection(RejectionLine("10:00:03", 1, 55, 2))
	if !ok {
		t.Fatal("RejectionLine should parse as a rejection event")
	}
	if ev.ConsumerID != 1 || ev.Rejected != 2 {
		t.Errorf("event = %+v, want consumer 1 rejected 2", ev)
	}
}

func TestNoiseLines_AreIgnored(t *testing.T) {
	for _, line := range []string{SystemReadyLine, ProducerLine("10:00:00", 1, 17, 1, 6)} {
		if _, ok := logparse.ParseProgress(line); ok {
			t.Errorf("%q should not parse as progress", line)
		}
	}
}

func TestSampleLogSnapshot(t *testing.T) {
	progress := 0
	for _, line := range SampleLogSnapshot {
		if _, ok := logparse.ParseProgress(line); ok {
			progress++
		}
	}
	if progress != 4 {
		t.Errorf("progress lines = %d, want 4", progress)
	}
	if got := logparse.CountRejected(SampleLogSnapshot); got != 1 {
		t.Errorf("CountRejected = %d, want 1", got)
	}
}

func TestStatsPayloads_AreValidJSON(t *testing.T) {
	payloads := []struct {
		name string
		json string
	}{
		{"StatsJSON", StatsJSON(10, 8)},
		{"StatsJSON zero", StatsJSON(0, 0)},
		{"EmptyStatsJSON", EmptyStatsJSON},
		{"HealthJSON", HealthJSON},
	}

	for _, p := range payloads {
		var result map[string]any
		if err := json.Unmarshal([]byte(p.json), &result); err != nil {
			t.Errorf("%s is not valid JSON: %v", p.name, err)
		}
	}
}
