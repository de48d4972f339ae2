package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const (
	// DefaultBaseURL is the API root of a locally running simulation.
	DefaultBaseURL = "http://localhost:5000/api"
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 5 * time.Second
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 16 << 20
)

// StatusError reports a non-2xx response from the service.
type StatusError struct {
	Path string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.Path, e.Code, http.StatusText(e.Code))
}

// HTTPClient implements Source against the simulation's HTTP API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		c.http = hc
	}
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:5000/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Stats fetches GET /stats.
func (c *HTTPClient) Stats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.get(ctx, "/stats", &resp); err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	return &resp, nil
}

// Logs fetches GET /logs.
func (c *HTTPClient) Logs(ctx context.Context) ([]string, error) {
	var resp LogsResponse
	if err := c.get(ctx, "/logs", &resp); err != nil {
		return nil, fmt.Errorf("fetch logs: %w", err)
	}
	return resp.Logs, nil
}

// Health fetches GET /health.
func (c *HTTPClient) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, "/health", &resp); err != nil {
		return nil, fmt.Errorf("fetch health: %w", err)
	}
	return &resp, nil
}

// get issues a GET request and decodes the JSON body into v.
func (c *HTTPClient) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{Path: path, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

var _ Source = (*HTTPClient)(nil)
