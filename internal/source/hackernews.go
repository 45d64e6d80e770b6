// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/gapfinder/internal/httputil"
	"github.com/pdiddy/gapfinder/pkg/types"
)

// hackerNewsAPIBase is the Algolia-backed Hacker News search endpoint.
// Declared as a var so tests can substitute an httptest server.
var hackerNewsAPIBase = "https://hn.algolia.com/api/v1/search"

// HackerNewsSource searches Hacker News stories via the Algolia API.
type HackerNewsSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *HackerNewsSource) Name() string { return "Hacker News" }

// Describe returns the informational status for the sources endpoint.
func (s *HackerNewsSource) Describe(types.SourceConfig) types.SourceStatus {
	return types.SourceStatus{
		Name:         "Hacker News",
		Status:       "active",
		RequiresAuth: false,
		Description:  "Tech news and startup discussions",
	}
}

// Fetch queries the Algolia search API and returns normalized results.
// Algolia rate-limits anonymous search, so requests go through the shared
// 429 retry helper.
func (s *HackerNewsSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	params := url.Values{
		"query":         {query},
		"hitsPerPage":   {fmt.Sprintf("%d", pageSize(cfg))},
		"typoTolerance": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hackerNewsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Hacker News API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Hacker News API returned HTTP %d", resp.StatusCode)
	}

	var hr hackerNewsResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return nil, fmt.Errorf("parsing Hacker News response: %w", err)
	}

	var results []types.Result
	for _, hit := range hr.Hits {
		// Stories without an outbound link (Ask HN, dead links) are skipped.
		if hit.Title == "" || hit.URL == "" {
			continue
		}

		results = append(results, types.Result{
			Title:       hit.Title,
			Description: hit.URL,
			Source:      "Hacker News",
			URL:         hit.URL,
			Engagement:  hit.Points + hit.NumComments,
			Metadata: map[string]any{
				"points":     hit.Points,
				"comments":   hit.NumComments,
				"author":     hit.Author,
				"created_at": hit.CreatedAt,
			},
		})
	}
	return results, nil
}

// Algolia search API JSON structures.
type hackerNewsResponse struct {
	Hits []hackerNewsHit `json:"hits"`
}

type hackerNewsHit struct {
	ObjectID    string `json:"objectID"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Points      int    `json:"points"`
	NumComments int    `json:"num_comments"`
	Author      string `json:"author"`
	CreatedAt   string `json:"created_at"`
}
