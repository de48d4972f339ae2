package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// FakeService is an in-process stand-in for the simulation's HTTP API.
// It serves /api/stats, /api/logs and /api/health from mutable state and
// records request counts per path.
type FakeService struct {
	mu       sync.Mutex
	stats    string
	logs     []string
	health   string
	statuses map[string]int
	requests map[string]int

	server *httptest.Server
}

// NewFakeService starts a FakeService that is closed when the test ends.
func NewFakeService(t *testing.T) *FakeService {
	t.Helper()
	fs := &FakeService{
		stats:    EmptyStatsJSON,
		health:   HealthJSON,
		statuses: make(map[string]int),
		requests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/stats", fs.handle(func() (any, string) { return nil, fs.stats }))
	mux.HandleFunc("/api/logs", fs.handle(func() (any, string) {
		return map[string][]string{"logs": append([]string{}, fs.logs...)}, ""
	}))
	mux.HandleFunc("/api/health", fs.handle(func() (any, string) { return nil, fs.health }))

	fs.server = httptest.NewServer(mux)
	t.Cleanup(fs.server.Close)
	return fs
}

// BaseURL returns the API root, e.g. "http://127.0.0.1:1234/api".
func (fs *FakeService) BaseURL() string {
	return fs.server.URL + "/api"
}

// SetStats replaces the raw JSON body served by /api/stats.
func (fs *FakeService) SetStats(body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.stats = body
}

// SetLogs replaces the log snapshot served by /api/logs.
func (fs *FakeService) SetLogs(lines []string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.logs = append([]string{}, lines...)
}

// SetHealth replaces the raw JSON body served by /api/health.
func (fs *FakeService) SetHealth(body string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.health = body
}

// FailWith makes path (e.g. "/api/stats") answer with the given status
// code. A code of 0 restores normal responses.
func (fs *FakeService) FailWith(path string, code int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if code == 0 {
		delete(fs.statuses, path)
		return
	}
	fs.statuses[path] = code
}

// Requests returns how many requests path has received.
func (fs *FakeService) Requests(path string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.requests[path]
}

// handle serves either a value encoded as JSON or a raw JSON body.
func (fs *FakeService) handle(body func() (any, string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		fs.requests[r.URL.Path]++
		code, failing := fs.statuses[r.URL.Path]
		value, raw := body()
		fs.mu.Unlock()

		if failing {
			http.Error(w, http.StatusText(code), code)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if value != nil {
			_ = json.NewEncoder(w).Encode(value)
			return
		}
		_, _ = w.Write([]byte(raw))
	}
}
