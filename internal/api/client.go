// Package api wraps the public REST APIs the bot's commands call. All requests
// share one http.Client and one adaptive rate limiter.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"bookshelf/pkg/retrylimit"
)

const maxAttempts = 3

// Client talks to every external API the bot uses.
type Client struct {
	http    *http.Client
	limiter *retrylimit.AdaptiveLimiter
	nasaKey string
}

func NewClient(nasaKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(5, 1, 20, 1, 0.5),
		nasaKey: nasaKey,
	}
}

// getJSON performs a rate-limited GET and decodes the body into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, params url.Values, out any) error {
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	return retrylimit.WithRetry(ctx, c.limiter, maxAttempts, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return &retrylimit.StatusError{Code: resp.StatusCode}
		}

		// Some of these APIs send JSON with a text/html content type, so
		// decode from raw bytes rather than trusting headers.
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", req.URL.Host, err)
		}
		return nil
	})
}
