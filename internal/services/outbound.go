package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"travelplanner/pkg/utils"
)

const DefaultUserAgent = "AI-Travel-Planner/1.0"

// OutboundConfig is shared by the clients that call public data services.
type OutboundConfig struct {
	UserAgent string
	Timeout   time.Duration
	Retry     utils.RetryPolicy
}

func (c OutboundConfig) withDefaults(name string, timeout time.Duration) OutboundConfig {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = timeout
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = utils.DefaultRetryPolicy(name)
	}
	if c.Retry.Name == "" {
		c.Retry.Name = name
	}
	return c
}

func (c OutboundConfig) httpClient() *http.Client {
	return &http.Client{Timeout: c.Timeout}
}

// getWithRetry issues a GET under the configured retry policy and returns the
// body of a 2xx response.
func getWithRetry(ctx context.Context, client *http.Client, cfg OutboundConfig, rawURL string) (int, []byte, error) {
	resp, err := cfg.Retry.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", cfg.UserAgent)
		req.Header.Set("Accept", "application/json")
		return client.Do(req)
	})
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%s: read body: %w", cfg.Retry.Name, err)
	}
	return resp.StatusCode, body, nil
}
