// Package fetcher provides the shared outbound HTTP client used by the
// source adapters. It applies a per-host politeness rate limit and gives
// every single request its own timeout, so one slow endpoint can only
// abort its own call.
package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxResponseBytes caps response bodies to prevent memory exhaustion
// from a misbehaving endpoint.
const maxResponseBytes = 8 << 20 // 8 MiB

// Config holds the settings for the outbound client.
type Config struct {
	// Timeout bounds a single outbound request including body read.
	Timeout time.Duration

	// UserAgent is sent on every request.
	UserAgent string

	// PerHostRate is the sustained request rate allowed per host.
	PerHostRate float64

	// PerHostBurst is the burst capacity per host.
	PerHostBurst int
}

// DefaultConfig returns the standard outbound client settings.
// The 5 second timeout is the reference per-request bound.
func DefaultConfig() Config {
	return Config{
		Timeout:      5 * time.Second,
		UserAgent:    "research-radar/1.0",
		PerHostRate:  4.0,
		PerHostBurst: 8,
	}
}

// Client is a rate-limited HTTP client shared by all source adapters.
// It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	config     Config

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewClient creates a Client from the given configuration.
// Zero-valued fields fall back to DefaultConfig values.
func NewClient(cfg Config) *Client {
	defaults := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.PerHostRate <= 0 {
		cfg.PerHostRate = defaults.PerHostRate
	}
	if cfg.PerHostBurst <= 0 {
		cfg.PerHostBurst = defaults.PerHostBurst
	}

	return &Client{
		// The transport-level timeout is a backstop; the per-request
		// context deadline set in RequestContext is the primary bound.
		httpClient: &http.Client{Timeout: cfg.Timeout + time.Second},
		config:     cfg,
		limiters:   make(map[string]*rate.Limiter),
	}
}

// HTTPClient exposes the underlying http.Client for libraries that take
// one directly (e.g. the feed parser).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// UserAgent returns the configured outbound User-Agent string.
func (c *Client) UserAgent() string {
	return c.config.UserAgent
}

// RequestContext derives a context carrying the per-request deadline.
// The returned cancel function must be called when the request settles.
// Each call produces an independent deadline; cancellation never cascades
// to sibling requests.
func (c *Client) RequestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.config.Timeout)
}

// Acquire blocks until the politeness limiter for the URL's host grants a
// token, or the context is done.
func (c *Client) Acquire(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url for rate limit: %w", err)
	}
	return c.limiterFor(u.Hostname()).Wait(ctx)
}

func (c *Client) limiterFor(host string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(c.config.PerHostRate), c.config.PerHostBurst)
		c.limiters[host] = l
	}
	return l
}

// GetJSON issues a rate-limited GET with the per-request timeout and
// decodes the JSON response body into v.
func (c *Client) GetJSON(ctx context.Context, rawURL string, v any) error {
	if err := c.Acquire(ctx, rawURL); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	ctx, cancel := c.RequestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("get %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	body := io.LimitReader(resp.Body, maxResponseBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return nil
}
