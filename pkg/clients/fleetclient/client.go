// Package fleetclient talks to the fleet management REST backend. All
// requests are scoped to one operator via the dsp_code query parameter.
package fleetclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Options configure a Client.
type Options struct {
	// BaseURL is the backend root, without a trailing slash.
	BaseURL string

	// DSPCode is the operator/tenant identifier appended to every request.
	DSPCode string

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts for idempotent reads.
	// Writes are never retried.
	MaxRetries int
}

// Client wraps HTTP access to the fleet backend.
type Client struct {
	baseURL    string
	dspCode    string
	httpClient *http.Client
	maxRetries int
	logger     *zap.Logger
}

// NewClient creates a fleet backend client.
func NewClient(opts Options, logger *zap.Logger) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("fleet client requires a base URL")
	}
	if opts.DSPCode == "" {
		return nil, fmt.Errorf("fleet client requires a dsp_code")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:    opts.BaseURL,
		dspCode:    opts.DSPCode,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: opts.MaxRetries,
		logger:     logger,
	}, nil
}

// DSPCode returns the operator code the client is scoped to.
func (c *Client) DSPCode() string {
	return c.dspCode
}

// apiError is a non-2xx response from the backend.
type apiError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// get issues a GET with retry and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		lastErr = c.do(ctx, http.MethodGet, path, query, nil, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || attempt == c.maxRetries {
			return lastErr
		}

		delay := backoffDelay(attempt)
		c.logger.Debug("retrying fleet backend read",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(lastErr))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	return lastErr
}

// send issues a write request with no retry.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body, out any) error {
	return c.do(ctx, method, path, query, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("dsp_code", c.dspCode)
	fullURL := c.baseURL + path + "?" + query.Encode()

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apiError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 256),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}

	return nil
}

// isRetryable treats transport errors and 5xx responses as transient.
func isRetryable(err error) bool {
	if ae, ok := err.(*apiError); ok {
		return ae.StatusCode >= 500
	}
	return true
}

func backoffDelay(attempt int) time.Duration {
	delay := 100 * time.Millisecond << attempt
	if max := 2 * time.Second; delay > max {
		return max
	}
	return delay
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
