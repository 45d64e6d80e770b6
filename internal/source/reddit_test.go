// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/gapfinder/pkg/types"
)

func redditCfg(subs ...string) types.SourceConfig {
	cfg := testSourceCfg()
	cfg.RedditSubreddits = subs
	cfg.RedditPerSubLimit = 10
	cfg.RedditWindow = "month"
	return cfg
}

func redditListing(posts ...string) string {
	var children []string
	for _, p := range posts {
		children = append(children, p)
	}
	return `{"data":{"children":[` + strings.Join(children, ",") + `]}}`
}

func redditPostJSON(title, selftext string, score, comments int) string {
	return fmt.Sprintf(
		`{"data":{"title":%q,"selftext":%q,"permalink":"/r/x/comments/1/post","score":%d,"num_comments":%d,"created_utc":1700000000}}`,
		title, selftext, score, comments)
}

func TestRedditFetchAcrossSubreddits(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/r/startups/"):
			w.Write([]byte(redditListing(redditPostJSON("Idea A", "long selftext body", 10, 5))))
		case strings.HasPrefix(r.URL.Path, "/r/entrepreneur/"):
			w.Write([]byte(redditListing(redditPostJSON("Idea B", "", 3, 1))))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	s := &RedditSource{Client: ts.Client()}
	results, err := s.Fetch(context.Background(), "saas", redditCfg("startups", "entrepreneur"))
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].Source != "Reddit (r/startups)" {
		t.Errorf("source = %q, want parameterized subreddit tag", results[0].Source)
	}
	if results[0].Engagement != 15 {
		t.Errorf("engagement = %d, want score+comments = 15", results[0].Engagement)
	}
	if !strings.HasPrefix(results[0].URL, "https://reddit.com/r/") {
		t.Errorf("url = %q, want synthesized permalink", results[0].URL)
	}
	if !strings.HasSuffix(results[0].Description, "...") && results[0].Description != "long selftext body" {
		t.Errorf("description = %q", results[0].Description)
	}
	// Empty selftext falls back to the placeholder.
	if results[1].Description != "Click to view post" {
		t.Errorf("description fallback = %q", results[1].Description)
	}
}

func TestRedditSubredditFailureIsolated(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/r/broken/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(redditListing(redditPostJSON("Survivor", "", 1, 0))))
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	s := &RedditSource{Client: ts.Client()}
	results, err := s.Fetch(context.Background(), "x", redditCfg("broken", "startups"))
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil when one subreddit fails", err)
	}
	if len(results) != 1 || results[0].Title != "Survivor" {
		t.Errorf("results = %+v", results)
	}
}

func TestRedditAllSubredditsFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	s := &RedditSource{Client: ts.Client()}
	if _, err := s.Fetch(context.Background(), "x", redditCfg("a", "b")); err == nil {
		t.Error("expected error when every subreddit fails")
	}
}

func TestRedditCombinedCap(t *testing.T) {
	// Two subreddits returning 20 posts each: the combined set caps at 30.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var posts []string
		for i := 0; i < 20; i++ {
			posts = append(posts, redditPostJSON(fmt.Sprintf("%s post %d", r.URL.Path, i), "", i, 0))
		}
		w.Write([]byte(redditListing(posts...)))
	}))
	defer ts.Close()

	old := redditAPIBase
	redditAPIBase = ts.URL
	defer func() { redditAPIBase = old }()

	s := &RedditSource{Client: ts.Client()}
	results, err := s.Fetch(context.Background(), "x", redditCfg("one", "two"))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 30 {
		t.Errorf("len(results) = %d, want cap of 30", len(results))
	}
}
