// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// devToAPIBase is the Dev.to articles endpoint. Declared as a var so tests
// can substitute an httptest server.
var devToAPIBase = "https://dev.to/api/articles"

// DevToSource fetches top Dev.to articles tagged with the query.
type DevToSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *DevToSource) Name() string { return "Dev.to" }

// Describe returns the informational status for the sources endpoint.
func (s *DevToSource) Describe(types.SourceConfig) types.SourceStatus {
	return types.SourceStatus{
		Name:         "Dev.to",
		Status:       "active",
		RequiresAuth: false,
		Description:  "Developer articles and tutorials",
	}
}

// Fetch queries the Dev.to articles API and returns normalized results.
func (s *DevToSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	topDays := cfg.DevToTopDays
	if topDays <= 0 {
		topDays = 7
	}

	params := url.Values{
		"tag":      {query},
		"per_page": {fmt.Sprintf("%d", pageSize(cfg))},
		"top":      {fmt.Sprintf("%d", topDays)},
	}

	var articles []devToArticle
	if err := getJSON(ctx, s.Client, devToAPIBase+"?"+params.Encode(), nil, cfg, &articles); err != nil {
		return nil, fmt.Errorf("Dev.to API: %w", err)
	}

	var results []types.Result
	for _, article := range articles {
		if article.Title == "" || article.URL == "" {
			continue
		}

		description := article.Description
		if description == "" {
			description = article.Excerpt
		}
		if description == "" {
			description = "No description"
		}

		results = append(results, types.Result{
			Title:       article.Title,
			Description: description,
			Source:      "Dev.to",
			URL:         article.URL,
			Engagement:  article.Reactions + article.Comments,
			Metadata: map[string]any{
				"reactions":    article.Reactions,
				"comments":     article.Comments,
				"reading_time": article.ReadingTime,
				"published_at": article.PublishedAt,
			},
		})
	}
	return results, nil
}

// Dev.to articles API JSON structure.
type devToArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
	URL         string `json:"url"`
	Reactions   int    `json:"positive_reactions_count"`
	Comments    int    `json:"comments_count"`
	ReadingTime int    `json:"reading_time_minutes"`
	PublishedAt string `json:"published_at"`
}
