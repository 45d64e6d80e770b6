// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// outbound network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout for source fetches.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gapfinder/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SourceConfig holds settings for the source fetch stage. Credentials are
// explicit fields so their presence is a testable input rather than an
// ambient environment read.
type SourceConfig struct {
	HTTPConfig `yaml:",inline"`

	// PerSourceLimit is the page size requested from each platform (default 20).
	PerSourceLimit int `json:"per_source_limit" yaml:"per_source_limit"`

	// MaxResults caps the aggregated, ranked result set (default 30).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// GitHubToken is an optional token for higher GitHub rate limits.
	GitHubToken string `json:"github_token,omitempty" yaml:"github_token,omitempty"`

	// ProductHuntAPIKey authenticates the Product Hunt GraphQL API.
	// Without it the Product Hunt source is skipped entirely.
	ProductHuntAPIKey string `json:"producthunt_api_key,omitempty" yaml:"producthunt_api_key,omitempty"`

	// RedditSubreddits lists the sub-communities searched by the Reddit
	// source, in order. Defaults to the startup-focused set.
	RedditSubreddits []string `json:"reddit_subreddits" yaml:"reddit_subreddits"`

	// RedditPerSubLimit is the page size per subreddit search (default 10).
	RedditPerSubLimit int `json:"reddit_per_sub_limit" yaml:"reddit_per_sub_limit"`

	// RedditWindow is Reddit's recency window parameter (default "month").
	RedditWindow string `json:"reddit_window" yaml:"reddit_window"`

	// DevToTopDays requests Dev.to's top articles over the last N days (default 7).
	DevToTopDays int `json:"devto_top_days" yaml:"devto_top_days"`
}

// AnalysisConfig holds settings for the analysis relay.
type AnalysisConfig struct {
	// WebhookURL is the external analysis service endpoint. Empty means
	// the service is unconfigured and the relay answers with a fallback.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url,omitempty"`

	// Timeout bounds the relay call (default 30s). Materially longer than
	// source fetch timeouts since analysis is slow.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxResults is how many top-ranked results are forwarded (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Addr is the listen address (default ":5000").
	Addr string `json:"addr" yaml:"addr"`

	// AllowedOrigin restricts CORS (default "http://localhost:3000").
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`
}

// HistoryConfig holds settings for the optional search-history store.
type HistoryConfig struct {
	// Path is the SQLite database file. Empty disables the store.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// Config groups all component configurations.
type Config struct {
	Sources  SourceConfig   `json:"sources" yaml:"sources"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	History  HistoryConfig  `json:"history" yaml:"history"`
}

// Defaults returns a Config with the reference defaults filled in.
func Defaults() Config {
	return Config{
		Sources: SourceConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "gapfinder/0.1",
			},
			PerSourceLimit:    20,
			MaxResults:        30,
			RedditSubreddits:  []string{"startups", "entrepreneur", "SideProject", "BuiltInPublic"},
			RedditPerSubLimit: 10,
			RedditWindow:      "month",
			DevToTopDays:      7,
		},
		Analysis: AnalysisConfig{
			Timeout:    30 * time.Second,
			MaxResults: 20,
		},
		Server: ServerConfig{
			Addr:          ":5000",
			AllowedOrigin: "http://localhost:3000",
		},
	}
}
