// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/gapfinder/pkg/types"
)

func testSourceCfg() types.SourceConfig {
	return types.SourceConfig{
		HTTPConfig:     types.HTTPConfig{UserAgent: "test/0.1"},
		PerSourceLimit: 20,
		MaxResults:     30,
	}
}

func TestGitHubFetch(t *testing.T) {
	var gotAuth, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[
			{"name":"gap-scanner","description":"Finds market gaps","html_url":"https://github.com/x/gap-scanner","stargazers_count":120,"forks_count":30,"language":"Go","created_at":"2025-01-01T00:00:00Z"},
			{"name":"no-desc","html_url":"https://github.com/x/no-desc"},
			{"name":"","html_url":"https://github.com/x/unnamed"}
		]}`))
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	s := &GitHubSource{Client: ts.Client(), Token: "tok123"}
	results, err := s.Fetch(context.Background(), "market gap", testSourceCfg())
	if err != nil {
		t.Fatal(err)
	}

	if gotAuth != "token tok123" {
		t.Errorf("Authorization = %q, want token header", gotAuth)
	}
	if gotQuery != "market gap" {
		t.Errorf("q = %q", gotQuery)
	}

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 (unnamed repo dropped)", len(results))
	}

	r := results[0]
	if r.Title != "gap-scanner" || r.Source != "GitHub" {
		t.Errorf("result = %+v", r)
	}
	if r.Engagement != 150 {
		t.Errorf("engagement = %d, want stars+forks = 150", r.Engagement)
	}
	if r.Metadata["stars"] != 120 {
		t.Errorf("metadata stars = %v", r.Metadata["stars"])
	}

	// Missing optional fields take safe defaults.
	if results[1].Description != "No description available" {
		t.Errorf("description fallback = %q", results[1].Description)
	}
	if results[1].Engagement != 0 {
		t.Errorf("engagement = %d, want 0 for missing counts", results[1].Engagement)
	}
}

func TestGitHubFetchAnonymous(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"items":[]}`))
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	s := &GitHubSource{Client: ts.Client()}
	if _, err := s.Fetch(context.Background(), "x", testSourceCfg()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Errorf("Authorization = %q, want none without token", gotAuth)
	}
}

func TestGitHubFetchServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	s := &GitHubSource{Client: ts.Client()}
	if _, err := s.Fetch(context.Background(), "x", testSourceCfg()); err == nil {
		t.Error("expected error for HTTP 502")
	}
}

func TestGitHubFetchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"items": [{`))
	}))
	defer ts.Close()

	old := githubAPIBase
	githubAPIBase = ts.URL
	defer func() { githubAPIBase = old }()

	s := &GitHubSource{Client: ts.Client()}
	if _, err := s.Fetch(context.Background(), "x", testSourceCfg()); err == nil {
		t.Error("expected error for malformed payload")
	}
}
