// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// redditAPIBase is the Reddit search endpoint prefix; the subreddit is
// interpolated per sub-query. Declared as a var so tests can substitute an
// httptest server.
var redditAPIBase = "https://www.reddit.com"

// redditUserAgent is sent instead of the configured agent: Reddit's public
// JSON endpoints throttle non-browser agents aggressively.
const redditUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// redditCap bounds the combined result count across all subreddits.
const redditCap = 30

// RedditSource searches a fixed list of startup-focused subreddits. The
// sub-queries run sequentially; a failing subreddit is skipped without
// aborting the others.
type RedditSource struct {
	Client *http.Client
}

// Name returns the source identifier.
func (s *RedditSource) Name() string { return "Reddit" }

// Describe returns the informational status for the sources endpoint.
func (s *RedditSource) Describe(types.SourceConfig) types.SourceStatus {
	return types.SourceStatus{
		Name:         "Reddit",
		Status:       "active",
		RequiresAuth: false,
		Description:  "Community discussions from startup subreddits",
	}
}

// Fetch queries every configured subreddit in order and accumulates the
// results, capped at redditCap. Only the whole-source failure case (every
// subreddit failed) is reported as an error.
func (s *RedditSource) Fetch(ctx context.Context, query string, cfg types.SourceConfig) ([]types.Result, error) {
	subreddits := cfg.RedditSubreddits
	if len(subreddits) == 0 {
		subreddits = []string{"startups", "entrepreneur", "SideProject", "BuiltInPublic"}
	}

	limit := cfg.RedditPerSubLimit
	if limit <= 0 {
		limit = 10
	}
	window := cfg.RedditWindow
	if window == "" {
		window = "month"
	}

	var all []types.Result
	var lastErr error
	failed := 0

	for _, sub := range subreddits {
		posts, err := s.fetchSubreddit(ctx, query, sub, limit, window)
		if err != nil {
			failed++
			lastErr = fmt.Errorf("r/%s: %w", sub, err)
			continue
		}
		all = append(all, posts...)
	}

	if failed == len(subreddits) && lastErr != nil {
		return nil, fmt.Errorf("Reddit API: all subreddits failed: %w", lastErr)
	}

	if len(all) > redditCap {
		all = all[:redditCap]
	}
	return all, nil
}

func (s *RedditSource) fetchSubreddit(ctx context.Context, query, sub string, limit int, window string) ([]types.Result, error) {
	params := url.Values{
		"q":     {query},
		"limit": {fmt.Sprintf("%d", limit)},
		"sort":  {"relevance"},
		"t":     {window},
	}

	reqURL := fmt.Sprintf("%s/r/%s/search.json?%s", redditAPIBase, sub, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", redditUserAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	var rr redditResponse
	if err := decodeJSON(resp, &rr); err != nil {
		return nil, err
	}

	var results []types.Result
	for _, child := range rr.Data.Children {
		post := child.Data
		if post.Title == "" {
			continue
		}

		description := "Click to view post"
		if post.SelfText != "" {
			description = truncateText(post.SelfText, 200) + "..."
		}

		results = append(results, types.Result{
			Title:       post.Title,
			Description: description,
			Source:      fmt.Sprintf("Reddit (r/%s)", sub),
			URL:         "https://reddit.com" + post.Permalink,
			Engagement:  post.Score + post.NumComments,
			Metadata: map[string]any{
				"score":     post.Score,
				"comments":  post.NumComments,
				"subreddit": sub,
				"created":   post.CreatedUTC,
			},
		})
	}
	return results, nil
}

// Reddit listing JSON structures.
type redditResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Permalink   string  `json:"permalink"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}
