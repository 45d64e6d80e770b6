// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// githubAPIBase is the GitHub repository search endpoint. Declared as a var
// so tests can substitute an httptest server.
var githubAPIBase = "https://api.github.com/search/repositories"

// GitHubSource searches GitHub repositories, sorted by stars.
type GitHubSource struct {
	Client *http.Client
	// Token is optional; without it GitHub serves anonymous rate limits.
	Token string
}

// Name returns the source identifier.
func (s *GitHubSource) Name() string { return "GitHub" }

// Describe returns the informational status for the sources endpoint.
func (s *GitHubSource) Describe(types.SourceConfig) types.SourceStatus {
	return types.SourceStatus{
		Name:         "GitHub",
		Status:       "active",
		RequiresAuth: s.Token != "",
		Description:  "Trending repositories and code projects",
	}
}

// Fetch queries the GitHub search API and returns normalized results.
func (s *GitHubSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	params := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {fmt.Sprintf("%d", pageSize(cfg))},
	}

	header := http.Header{}
	if s.Token != "" {
		header.Set("Authorization", "token "+s.Token)
	}

	var gr githubResponse
	if err := getJSON(ctx, s.Client, githubAPIBase+"?"+params.Encode(), header, cfg, &gr); err != nil {
		return nil, fmt.Errorf("GitHub API: %w", err)
	}

	var results []types.Result
	for _, repo := range gr.Items {
		if repo.Name == "" || repo.HTMLURL == "" {
			continue
		}

		description := repo.Description
		if description == "" {
			description = "No description available"
		}

		results = append(results, types.Result{
			Title:       repo.Name,
			Description: description,
			Source:      "GitHub",
			URL:         repo.HTMLURL,
			Engagement:  repo.Stars + repo.Forks,
			Metadata: map[string]any{
				"stars":      repo.Stars,
				"forks":      repo.Forks,
				"language":   repo.Language,
				"created_at": repo.CreatedAt,
			},
		})
	}
	return results, nil
}

// GitHub search API JSON structures.
type githubResponse struct {
	Items []githubRepo `json:"items"`
}

type githubRepo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	HTMLURL     string `json:"html_url"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	CreatedAt   string `json:"created_at"`
}
