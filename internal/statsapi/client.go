// Package statsapi is the client for the football statistics REST API.
// Responses arrive wrapped in an {"api": {...}} envelope; the client unwraps
// the requested root section and surfaces upstream error messages.
package statsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// Default configuration values.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxRetries  = 3
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// API key header used by the provider.
const apiKeyHeader = "x-rapidapi-key"

// Client performs GET requests against the statistics API with bounded
// retries and exponential backoff.
type Client struct {
	baseURL     string
	apiKey      string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxDelay sets maximum retry delay.
func WithMaxDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.maxDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new statistics API client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UpstreamError is the provider's error message delivered instead of the
// api envelope.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: %s", e.Message)
}

// get performs a GET with retries and unwraps the envelope's root section.
func (c *Client) get(ctx context.Context, path, root string) (json.RawMessage, error) {
	url := c.baseURL + path

	delay := c.retryDelay
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			// Exponential backoff
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set(apiKeyHeader, c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		// Handle rate limiting
		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
			continue
		}

		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}

		api, ok := envelope["api"]
		if !ok {
			// Upstream errors are not retried
			var msg string
			if raw, ok := envelope["message"]; ok {
				_ = json.Unmarshal(raw, &msg)
			}
			return nil, &UpstreamError{Message: msg}
		}

		var sections map[string]json.RawMessage
		if err := json.Unmarshal(api, &sections); err != nil {
			return nil, fmt.Errorf("unmarshal api section: %w", err)
		}

		section, ok := sections[root]
		if !ok {
			return nil, fmt.Errorf("response missing %q section", root)
		}
		return section, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// Leagues retrieves the raw leagues section.
func (c *Client) Leagues(ctx context.Context) (json.RawMessage, error) {
	return c.get(ctx, "/leagues", "leagues")
}

// FixturesByLeague retrieves the raw fixtures section for a league.
func (c *Client) FixturesByLeague(ctx context.Context, leagueID int64) (json.RawMessage, error) {
	return c.get(ctx, "/fixtures/league/"+strconv.FormatInt(leagueID, 10), "fixtures")
}

// FixtureStatistics retrieves the raw team statistics section for a fixture.
func (c *Client) FixtureStatistics(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return c.get(ctx, "/statistics/fixture/"+strconv.FormatInt(fixtureID, 10), "statistics")
}

// PlayerStatistics retrieves the raw player statistics section for a fixture.
func (c *Client) PlayerStatistics(ctx context.Context, fixtureID int64) (json.RawMessage, error) {
	return c.get(ctx, "/players/fixture/"+strconv.FormatInt(fixtureID, 10), "players")
}
