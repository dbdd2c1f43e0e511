// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists per-page conversion outcomes in a SQLite
// database so repeated runs can skip unchanged pages and the status command
// can report on a previous run.
package manifest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/dokuport/pkg/types"
)

// DefaultFile is the manifest filename used when no explicit path is
// configured; it lives at the root of the output directory.
const DefaultFile = ".dokuport.db"

// Store manages the conversion manifest database.
type Store struct {
	db *sql.DB
}

// Entry is one manifest row: the recorded outcome for a single page.
type Entry struct {
	ID          string
	SourcePath  string
	OutputPath  string
	Checksum    string
	Status      types.ConversionStatus
	ConvertedAt time.Time
}

// Open opens or creates the manifest database at path, creating the schema
// when missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifest directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating manifest schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	const schema = `CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		output_path TEXT NOT NULL,
		checksum TEXT NOT NULL,
		status TEXT NOT NULL,
		converted_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Unchanged reports whether the page was previously converted from source
// content with the same checksum. Pages recorded as failed or skipped are
// always considered changed so the next run retries them.
func (s *Store) Unchanged(id, checksum string) (bool, error) {
	var prev string
	var status string
	err := s.db.QueryRow(`SELECT checksum, status FROM pages WHERE id = ?`, id).Scan(&prev, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up page %s: %w", id, err)
	}
	return prev == checksum && types.ConversionStatus(status) == types.StatusConverted, nil
}

// Record stores the outcome for a page, replacing any previous row.
func (s *Store) Record(page types.Page, checksum string, status types.ConversionStatus) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pages (id, source_path, output_path, checksum, status, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		page.ID, page.SourcePath, page.RelPath, checksum, string(status),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording page %s: %w", page.ID, err)
	}
	return nil
}

// List returns all manifest entries ordered by page identifier.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source_path, output_path, checksum, status, converted_at FROM pages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing manifest entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status, at string
		if err := rows.Scan(&e.ID, &e.SourcePath, &e.OutputPath, &e.Checksum, &status, &at); err != nil {
			return nil, fmt.Errorf("scanning manifest entry: %w", err)
		}
		e.Status = types.ConversionStatus(status)
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest entries: %w", err)
	}
	return entries, nil
}

// Summary returns per-status counts for all recorded pages.
func (s *Store) Summary(ctx context.Context) (map[types.ConversionStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM pages GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("summarizing manifest: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.ConversionStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning manifest summary: %w", err)
		}
		counts[types.ConversionStatus(status)] = n
	}
	return counts, rows.Err()
}

// PathFor resolves the manifest path for a run: the configured path when
// set, otherwise DefaultFile under the output directory.
func PathFor(cfg types.SiteConfig) string {
	if cfg.Manifest.Path != "" {
		return cfg.Manifest.Path
	}
	return filepath.Join(cfg.Output.Dir, DefaultFile)
}
