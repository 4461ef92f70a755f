// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "journal-trends/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the stages that call the OpenAlex API
// (resolve and extract).
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL overrides the OpenAlex API root (default
	// "https://api.openalex.org"). Tests point this at a local server.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// ContactEmail is sent as the mailto parameter for polite pool access.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`

	// RequestsPerSecond caps the API request rate (default 10).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries is the number of retry attempts on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// FromYear is the minimum publication year for fetched works (default 2010).
	FromYear int `json:"from_year" yaml:"from_year"`

	// JournalDelay is the pause between consecutive journals during
	// extraction (default 500ms).
	JournalDelay time.Duration `json:"journal_delay" yaml:"journal_delay"`
}
