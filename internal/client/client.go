package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/timetable-viewer/internal/model"
)

// Server endpoints
const (
	PathTimeTable = "timeTable"
	PathSolve     = "solve"
	PathRoom      = "room"
	PathTimeslot  = "timeslot"
	PathLesson    = "lesson"
)

// Request headers
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-ID"
	MediaTypeJSON     = "application/json"
)

// Defaults
const (
	DefaultTimeout = 10 * time.Second
	maxErrorBody   = 512
)

// Client is the HTTP implementation of API
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	parsed, err := ParseServerURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ParseServerURL validates a server base URL
func ParseServerURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("server URL is empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("server URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("server URL %q has no host", raw)
	}
	return parsed, nil
}

// BaseURL returns the server base URL
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchSnapshot issues GET /timeTable
func (c *Client) FetchSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var snapshot model.Snapshot
	if err := c.do(ctx, http.MethodGet, &snapshot, PathTimeTable); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// StartSolving issues POST /timeTable/solve
func (c *Client) StartSolving(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, nil, PathTimeTable, PathSolve)
}

// DeleteRoom issues DELETE /room/{id}
func (c *Client) DeleteRoom(ctx context.Context, id model.ID) error {
	return c.delete(ctx, PathRoom, id)
}

// DeleteTimeslot issues DELETE /timeslot/{id}
func (c *Client) DeleteTimeslot(ctx context.Context, id model.ID) error {
	return c.delete(ctx, PathTimeslot, id)
}

// DeleteLesson issues DELETE /lesson/{id}
func (c *Client) DeleteLesson(ctx context.Context, id model.ID) error {
	return c.delete(ctx, PathLesson, id)
}

// delete issues DELETE /{resource}/{id}. JoinPath cleans dot segments, so
// "." and ".." would address the collection or the server root instead.
func (c *Client) delete(ctx context.Context, resource string, id model.ID) error {
	switch id {
	case "", ".", "..":
		return fmt.Errorf("delete %s %q: %w", resource, id, ErrInvalidID)
	}
	return c.do(ctx, http.MethodDelete, nil, resource, url.PathEscape(id.String()))
}

// do sends one request and decodes the JSON answer into out when out is non-nil
func (c *Client) do(ctx context.Context, method string, out any, segments ...string) error {
	endpoint := c.baseURL.JoinPath(segments...)
	path := endpoint.EscapedPath()
	requestID := uuid.NewString()

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return &RequestError{Method: method, Path: path, Err: err}
	}
	req.Header.Set(HeaderAccept, MediaTypeJSON)
	req.Header.Set(HeaderRequestID, requestID)
	if method == http.MethodPost {
		req.Header.Set(HeaderContentType, MediaTypeJSON)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err))
		return &RequestError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}
