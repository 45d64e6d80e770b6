// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/pdiddy/gapfinder/internal/source"
	"github.com/pdiddy/gapfinder/pkg/types"
)

func TestReportFileRoundTrip(t *testing.T) {
	sources := []source.Source{
		&mockSource{name: "GitHub", results: []types.Result{result("repo", "GitHub", 12)}},
		&mockSource{name: "Reddit", err: errors.New("HTTP 503")},
	}

	out, err := Aggregate(context.Background(), "ai agents", "autonomous tools", sources, testCfg(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := WriteReportFile(path, out, 30); err != nil {
		t.Fatal(err)
	}

	rf, err := ReadReportFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if rf.Query.Niche != "ai agents" {
		t.Errorf("niche = %q, want %q", rf.Query.Niche, "ai agents")
	}
	if rf.Query.Description != "autonomous tools" {
		t.Errorf("description = %q", rf.Query.Description)
	}
	if len(rf.Results) != 1 || rf.Results[0].Title != "repo" {
		t.Errorf("results = %+v", rf.Results)
	}
	if rf.Summary.Total != 1 {
		t.Errorf("total = %d, want 1", rf.Summary.Total)
	}
	if len(rf.Summary.SourceErrors) != 1 {
		t.Errorf("sourceErrors = %v, want one entry", rf.Summary.SourceErrors)
	}
}

func TestReadReportFileMissing(t *testing.T) {
	_, err := ReadReportFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}
