package apiclient

import (
	"context"
	"sync"
)

// DynamicStatsFunc is a callback for dynamic Stats responses.
// The bool result reports whether the callback handled the call.
type DynamicStatsFunc func(ctx context.Context, call int) (*StatsResponse, error, bool)

// DynamicLogsFunc is a callback for dynamic Logs responses.
type DynamicLogsFunc func(ctx context.Context, call int) ([]string, error, bool)

// MockClient is a mock implementation of Source for testing.
// It records all calls and returns configured responses.
type MockClient struct {
	mu sync.Mutex

	// Configured responses
	StatsResponse *StatsResponse
	StatsError    error
	LogsResponse  []string
	LogsError     error

	// Dynamic response callbacks
	DynamicStats DynamicStatsFunc
	DynamicLogs  DynamicLogsFunc

	// Call tracking
	StatsCalls int
	LogsCalls  int
}

// NewMockClient creates a MockClient that serves an empty statistics
// snapshot and an empty log.
func NewMockClient() *MockClient {
	return &MockClient{
		StatsResponse: &StatsResponse{},
	}
}

// Stats returns the configured statistics response.
func (m *MockClient) Stats(ctx context.Context) (*StatsResponse, error) {
	m.mu.Lock()
	m.StatsCalls++
	call := m.StatsCalls
	dynamic := m.DynamicStats
	resp, err := m.StatsResponse, m.StatsError
	m.mu.Unlock()

	if dynamic != nil {
		if r, e, handled := dynamic(ctx, call); handled {
			return r, e
		}
	}
	return resp, err
}

// Logs returns the configured log response.
func (m *MockClient) Logs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	m.LogsCalls++
	call := m.LogsCalls
	dynamic := m.DynamicLogs
	resp, err := m.LogsResponse, m.LogsError
	m.mu.Unlock()

	if dynamic != nil {
		if r, e, handled := dynamic(ctx, call); handled {
			return r, e
		}
	}
	return resp, err
}

// SetStats replaces the configured statistics response.
func (m *MockClient) SetStats(resp *StatsResponse, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StatsResponse = resp
	m.StatsError = err
}

// SetLogs replaces the configured log response.
func (m *MockClient) SetLogs(lines []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogsResponse = lines
	m.LogsError = err
}

// Calls returns the number of Stats and Logs calls made so far.
func (m *MockClient) Calls() (stats, logs int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StatsCalls, m.LogsCalls
}

// Verify MockClient implements Source at compile time.
var _ Source = (*MockClient)(nil)
