// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"

	"github.com/pdiddy/gapfinder/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := testStore(t)

	for _, q := range []string{"first", "second", "third"} {
		if err := store.RecordSearch(q); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Query != "third" || entries[1].Query != "second" {
		t.Errorf("entries = %+v", entries)
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("createdAt not recorded")
	}
}

func TestRecentDefaultLimit(t *testing.T) {
	store := testStore(t)
	if err := store.RecordSearch("only"); err != nil {
		t.Fatal(err)
	}
	entries, err := store.Recent(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestSaveAndCachedResults(t *testing.T) {
	store := testStore(t)

	first := []types.Result{
		{Title: "A", Description: "d", URL: "https://a", Source: "GitHub", Engagement: 5},
		{Title: "B", Description: "d", URL: "https://b", Source: "Reddit (r/startups)", Engagement: 2},
	}
	if err := store.SaveResults("niche", first); err != nil {
		t.Fatal(err)
	}

	got, err := store.CachedResults("niche")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Title != "A" || got[1].Engagement != 2 {
		t.Errorf("cached = %+v", got)
	}

	// Saving again replaces the prior rows instead of appending.
	if err := store.SaveResults("niche", first[:1]); err != nil {
		t.Fatal(err)
	}
	got, err = store.CachedResults("niche")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("len(cached) = %d after replace, want 1", len(got))
	}
}

func TestCachedResultsUnknownQuery(t *testing.T) {
	store := testStore(t)
	got, err := store.CachedResults("never searched")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("cached = %+v, want empty", got)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.RecordSearch("durable"); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	entries, err := store.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Query != "durable" {
		t.Errorf("entries = %+v", entries)
	}
}
