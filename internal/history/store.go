// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists search history and per-query result caches in
// SQLite. The store is optional: aggregation always runs fresh, and the
// store is written behind a successful run for later inspection.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/gapfinder/pkg/types"
)

// Store manages the history SQLite database.
type Store struct {
	db *sql.DB
}

// SearchEntry is one recorded search.
type SearchEntry struct {
	ID        int64     `json:"id"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewStore opens or creates the history database at path. The schema is
// created if it does not exist.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cached_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			url TEXT,
			source TEXT,
			engagement INTEGER NOT NULL DEFAULT 0,
			cached_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cached_results_query ON cached_results(query)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordSearch appends a search to the history.
func (s *Store) RecordSearch(query string) error {
	_, err := s.db.Exec(
		`INSERT INTO searches (query, created_at) VALUES (?, ?)`,
		query, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// SaveResults replaces the cached results for a query with the given set.
func (s *Store) SaveResults(query string, results []types.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cached_results WHERE query = ?`, query); err != nil {
		return fmt.Errorf("clearing cached results: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range results {
		_, err := tx.Exec(
			`INSERT INTO cached_results (query, title, description, url, source, engagement, cached_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			query, r.Title, r.Description, r.URL, r.Source, r.Engagement, now,
		)
		if err != nil {
			return fmt.Errorf("caching result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cached results: %w", err)
	}
	return nil
}

// Recent returns the most recent searches, newest first.
func (s *Store) Recent(limit int) ([]SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, query, created_at FROM searches ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []SearchEntry
	for rows.Next() {
		var e SearchEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Query, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, created); parseErr == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CachedResults returns the cached result set for a query, in cached order.
func (s *Store) CachedResults(query string) ([]types.Result, error) {
	rows, err := s.db.Query(
		`SELECT title, description, url, source, engagement
		 FROM cached_results WHERE query = ? ORDER BY id`, query,
	)
	if err != nil {
		return nil, fmt.Errorf("querying cached results: %w", err)
	}
	defer rows.Close()

	var results []types.Result
	for rows.Next() {
		var r types.Result
		if err := rows.Scan(&r.Title, &r.Description, &r.URL, &r.Source, &r.Engagement); err != nil {
			return nil, fmt.Errorf("scanning cached result: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
