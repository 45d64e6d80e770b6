// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package source queries external content platforms and normalizes their
// responses into the common result shape. Each platform (GitHub, Hacker News,
// Reddit, Dev.to, Stack Overflow, Product Hunt) implements the Source
// interface per the Strategy pattern; a shared executor applies the common
// request/decode policy once.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// Source fetches search results from a single external platform.
type Source interface {
	Name() string
	Describe(cfg types.SourceConfig) types.SourceStatus
	Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error)
}

// Registry returns all platform sources in their canonical order. The order
// fixes the flattening order of the aggregation stage, which in turn decides
// which duplicate survives deduplication.
func Registry(cfg types.SourceConfig) []Source {
	client := &http.Client{Timeout: cfg.Timeout}
	return []Source{
		&GitHubSource{Client: client, Token: cfg.GitHubToken},
		&HackerNewsSource{Client: client},
		&RedditSource{Client: client},
		&DevToSource{Client: client},
		&StackOverflowSource{Client: client},
		&ProductHuntSource{Client: client, APIKey: cfg.ProductHuntAPIKey},
	}
}

// Statuses returns the informational descriptor for every configured source.
func Statuses(cfg types.SourceConfig) []types.SourceStatus {
	var statuses []types.SourceStatus
	for _, s := range Registry(cfg) {
		statuses = append(statuses, s.Describe(cfg))
	}
	return statuses
}

// getJSON issues a GET request and decodes the JSON response into v. It is
// the shared executor for the REST sources: one place for request
// construction, status checking, and decoding.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, cfg types.SourceConfig, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Set(k, val)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// decodeJSON decodes a response body into v, wrapping decode failures.
func decodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// pageSize returns the configured per-source page size with the default cap.
func pageSize(cfg types.SourceConfig) int {
	if cfg.PerSourceLimit <= 0 {
		return 20
	}
	return cfg.PerSourceLimit
}

// truncateText shortens s to at most max bytes without failing on short input.
func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
