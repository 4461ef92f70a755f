// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex is a minimal client for the OpenAlex REST API covering
// the Sources and Works endpoints used by the pipeline.
package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/journal-trends/internal/httputil"
	"github.com/pdiddy/journal-trends/pkg/types"
)

const (
	defaultBaseURL        = "https://api.openalex.org"
	defaultTimeout        = 30 * time.Second
	defaultRequestsPerSec = 10
	defaultUserAgent      = "journal-trends/0.1"
)

// Client issues rate-limited requests to the OpenAlex API. All requests
// pass through a token bucket and retry on HTTP 429 with exponential
// backoff; any other failure propagates to the caller.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	email      string
	userAgent  string
	maxRetries int
}

// NewClient builds a Client from cfg, applying defaults for unset fields.
func NewClient(cfg types.FetchConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSec
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		baseURL:    base,
		email:      cfg.ContactEmail,
		userAgent:  ua,
		maxRetries: cfg.MaxRetries,
	}
}

// getJSON performs a rate-limited GET against the given API path with
// params and decodes the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if c.email != "" {
		params.Set("mailto", c.email)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.maxRetries)
	if err != nil {
		return fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return nil
}
