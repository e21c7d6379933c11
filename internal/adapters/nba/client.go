// Package nba fetches season game logs and play-by-play feeds from the
// public NBA endpoints. The stats host is aggressive about dropping
// clients that look like scripts, so requests carry browser headers and
// go through a shared rate limiter with retry on transient failures.
package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

// Default client configuration constants.
const (
	defaultStatsBaseURL = "https://stats.nba.com/stats"
	defaultLiveBaseURL  = "https://cdn.nba.com/static/json/liveData"
	defaultTimeout      = 30 * time.Second
	defaultRateLimit    = 1.5 // requests per second
	defaultMaxElapsed   = 45 * time.Second
)

// Client talks to the NBA stats and live-data hosts.
type Client struct {
	httpClient   *http.Client
	limiter      *rate.Limiter
	statsBaseURL string
	liveBaseURL  string
	maxElapsed   time.Duration
}

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithStatsBaseURL overrides the stats host, mainly for tests.
func WithStatsBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.statsBaseURL = u
		}
	}
}

// WithLiveBaseURL overrides the live-data host, mainly for tests.
func WithLiveBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.liveBaseURL = u
		}
	}
}

// WithRateLimit sets the request rate in requests per second.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithMaxElapsed bounds the total retry time per request.
func WithMaxElapsed(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxElapsed = d
		}
	}
}

// NewClient creates a feed client with defaults suitable for bulk ingest.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		limiter:      rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
		statsBaseURL: defaultStatsBaseURL,
		liveBaseURL:  defaultLiveBaseURL,
		maxElapsed:   defaultMaxElapsed,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// browserHeaders mimics a regular browser session; stats.nba.com returns
// endless redirects or hangs without them.
func browserHeaders(req *http.Request) {
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.nba.com/")
	req.Header.Set("Origin", "https://www.nba.com")
}

// getJSON performs a rate-limited GET with retries and decodes the body
// into out.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		browserHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("%w: %d from %s", ErrUpstreamStatus, resp.StatusCode, url)
			// Client errors will not heal on retry.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	strategy := backoff.NewExponentialBackOff()
	strategy.MaxElapsedTime = c.maxElapsed
	if err := backoff.Retry(operation, backoff.WithContext(strategy, ctx)); err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return nil
}
