// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// productHuntAPIBase is the Product Hunt GraphQL endpoint. Declared as a var
// so tests can substitute an httptest server.
var productHuntAPIBase = "https://api.producthunt.com/v2/api/graphql"

// productHuntQuery lists the current top launches by vote count. The niche is
// deliberately not interpolated: the v2 API has no post text search, so the
// source surfaces what is trending and lets ranking sort it against the rest.
const productHuntQuery = `
  query {
    posts(first: 20, order: VOTES_COUNT) {
      edges {
        node {
          id
          name
          tagline
          url
          votesCount
          commentsCount
          createdAt
        }
      }
    }
  }
`

// ProductHuntSource fetches product launches from the Product Hunt GraphQL
// API. The API mandates a bearer token; without one the source skips fetching
// and returns empty, which is a deliberate degraded mode rather than a failure.
type ProductHuntSource struct {
	Client *http.Client
	APIKey string
}

// Name returns the source identifier.
func (s *ProductHuntSource) Name() string { return "Product Hunt" }

// Describe returns the informational status for the sources endpoint.
func (s *ProductHuntSource) Describe(types.SourceConfig) types.SourceStatus {
	status := "inactive"
	if s.APIKey != "" {
		status = "active"
	}
	return types.SourceStatus{
		Name:         "Product Hunt",
		Status:       status,
		RequiresAuth: true,
		Description:  "New product launches",
	}
}

// Fetch queries the GraphQL API and returns normalized results, or an empty
// set immediately when no API key is configured.
func (s *ProductHuntSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	if s.APIKey == "" {
		return nil, nil
	}

	body, err := json.Marshal(map[string]string{"query": productHuntQuery})
	if err != nil {
		return nil, fmt.Errorf("encoding GraphQL query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, productHuntAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Product Hunt API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Product Hunt API returned HTTP %d", resp.StatusCode)
	}

	var pr productHuntResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("parsing Product Hunt response: %w", err)
	}

	var results []types.Result
	for _, edge := range pr.Data.Posts.Edges {
		post := edge.Node
		if post.Name == "" || post.URL == "" {
			continue
		}

		description := post.Tagline
		if description == "" {
			description = "No description"
		}

		results = append(results, types.Result{
			Title:       post.Name,
			Description: description,
			Source:      "Product Hunt",
			URL:         post.URL,
			Engagement:  post.VotesCount + post.CommentsCount,
			Metadata: map[string]any{
				"votes":      post.VotesCount,
				"comments":   post.CommentsCount,
				"created_at": post.CreatedAt,
			},
		})
	}
	return results, nil
}

// Product Hunt GraphQL JSON structures.
type productHuntResponse struct {
	Data struct {
		Posts struct {
			Edges []struct {
				Node productHuntPost `json:"node"`
			} `json:"edges"`
		} `json:"posts"`
	} `json:"data"`
}

type productHuntPost struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Tagline       string `json:"tagline"`
	URL           string `json:"url"`
	VotesCount    int    `json:"votesCount"`
	CommentsCount int    `json:"commentsCount"`
	CreatedAt     string `json:"createdAt"`
}
