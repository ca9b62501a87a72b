// Package client provides a thin HTTP client for the application's search API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/donaldgifford/searchselect/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// Client is a thin HTTP client for the search API.
type Client struct {
	baseURL     string
	http        *resty.Client
	rateLimiter *RateLimiter
	log         *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// WithRateLimiter injects a limiter every request waits on before it is sent.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) {
		c.rateLimiter = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// New creates a new API client targeting the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    resty.New(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json")
	return c
}

// BaseURL returns the base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request and decodes the JSON response into dst.
func (c *Client) get(ctx context.Context, path string, query url.Values, dst any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return &NetworkError{URL: c.baseURL + path, Err: fmt.Errorf("rate limit: %w", err)}
		}
		metrics.ClientRateLimitWaits.Inc()
	}

	reqID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, reqID)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}

	resp, err := req.Get(path)
	if err != nil {
		if isConnectionRefused(err) {
			err = fmt.Errorf("API server not running at %s", c.baseURL)
		}
		c.log.Debug("request failed", "path", path, "request_id", reqID, "err", err)
		return &NetworkError{URL: c.baseURL + path, Err: err}
	}

	body := resp.Body()
	c.log.Debug("request",
		"path", path,
		"status", resp.StatusCode(),
		"duration_ms", resp.Time().Milliseconds(),
		"request_id", reqID,
	)

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return &NetworkError{
			URL:        c.baseURL + path,
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(body),
		}
	}

	if dst != nil && len(body) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			return &NetworkError{URL: c.baseURL + path, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	return nil
}

// errorMessage extracts the server's message field from an error body, or
// falls back to the raw body text.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if m := gjson.GetBytes(body, "message"); m.Exists() {
			return m.String()
		}
		if m := gjson.GetBytes(body, "error"); m.Exists() {
			return m.String()
		}
	}
	return strings.TrimSpace(string(body))
}

func isConnectionRefused(err error) bool {
	return strings.Contains(err.Error(), "connection refused")
}
