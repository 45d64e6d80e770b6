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

// stackOverflowAPIBase is the Stack Exchange advanced search endpoint.
// Declared as a var so tests can substitute an httptest server.
var stackOverflowAPIBase = "https://api.stackexchange.com/2.3/search/advanced"

// StackOverflowSource searches Stack Overflow questions.
type StackOverflowSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *StackOverflowSource) Name() string { return "Stack Overflow" }

// Describe returns the informational status for the sources endpoint.
func (s *StackOverflowSource) Describe(types.SourceConfig) types.SourceStatus {
	return types.SourceStatus{
		Name:         "Stack Overflow",
		Status:       "active",
		RequiresAuth: false,
		Description:  "Programming questions and answers",
	}
}

// Fetch queries the Stack Exchange API and returns normalized results.
// The API throttles anonymous clients, so requests go through the shared
// 429 retry helper.
func (s *StackOverflowSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	params := url.Values{
		"order":    {"desc"},
		"sort":     {"relevance"},
		"q":        {query},
		"site":     {"stackoverflow"},
		"pagesize": {fmt.Sprintf("%d", pageSize(cfg))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, stackOverflowAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Stack Overflow API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Stack Overflow API returned HTTP %d", resp.StatusCode)
	}

	var sr stackOverflowResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Stack Overflow response: %w", err)
	}

	var results []types.Result
	for _, q := range sr.Items {
		if q.Title == "" || q.Link == "" {
			continue
		}

		results = append(results, types.Result{
			Title:       q.Title,
			Description: q.Link,
			Source:      "Stack Overflow",
			URL:         q.Link,
			Engagement:  q.Score + q.AnswerCount,
			Metadata: map[string]any{
				"score":   q.Score,
				"answers": q.AnswerCount,
				"views":   q.ViewCount,
				"created": q.CreationDate,
			},
		})
	}
	return results, nil
}

// Stack Exchange API JSON structures.
type stackOverflowResponse struct {
	Items []stackOverflowQuestion `json:"items"`
}

type stackOverflowQuestion struct {
	Title        string `json:"title"`
	Link         string `json:"link"`
	Score        int    `json:"score"`
	AnswerCount  int    `json:"answer_count"`
	ViewCount    int    `json:"view_count"`
	CreationDate int64  `json:"creation_date"`
}
