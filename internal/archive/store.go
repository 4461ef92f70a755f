// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive maintains a queryable SQLite index over the pipeline's
// artifacts: resolved journals, raw works, and keyword hits, with FTS5
// full-text search over titles and abstracts.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// Store manages the archive SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive database at path, creating the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

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
		`CREATE TABLE IF NOT EXISTS journals (
			id TEXT PRIMARY KEY,
			input_name TEXT,
			display_name TEXT,
			matched_issn TEXT,
			sheet TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS works (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			journal_id TEXT NOT NULL REFERENCES journals(id),
			doi TEXT,
			title TEXT,
			year INTEGER,
			authors TEXT,
			abstract TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_works_journal_id ON works(journal_id)`,
		`CREATE INDEX IF NOT EXISTS idx_works_year ON works(year)`,
		`CREATE TABLE IF NOT EXISTS hits (
			work_id TEXT NOT NULL REFERENCES works(id),
			keyword TEXT NOT NULL,
			pattern TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_work_id ON hits(work_id)`,
		`CREATE INDEX IF NOT EXISTS idx_hits_keyword ON hits(keyword)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='works_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE works_fts USING fts5(title, abstract, content=works, content_rowid=rowid)`,
			`CREATE TRIGGER works_ai AFTER INSERT ON works BEGIN
				INSERT INTO works_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER works_ad AFTER DELETE ON works BEGIN
				INSERT INTO works_fts(works_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER works_au AFTER UPDATE ON works BEGIN
				INSERT INTO works_fts(works_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO works_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// BuildSummary holds counts from an archive build.
type BuildSummary struct {
	Journals int
	Works    int
	Hits     int
}

// Build fully rebuilds the archive from the raw extraction artifact and
// the hit table, consistent with the pipeline's regenerate-everything
// contract. Existing rows are dropped first.
func (s *Store) Build(ctx context.Context, records []artifact.JournalRecord, hits []types.Hit, w io.Writer) (BuildSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"hits", "works", "journals"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return BuildSummary{}, fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	var summary BuildSummary

	insertJournal, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO journals (id, input_name, display_name, matched_issn, sheet) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("preparing journal insert: %w", err)
	}
	defer insertJournal.Close()

	insertWork, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO works (id, journal_id, doi, title, year, authors, abstract) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("preparing work insert: %w", err)
	}
	defer insertWork.Close()

	for _, rec := range records {
		if _, err := insertJournal.ExecContext(ctx,
			rec.OpenAlexID, rec.JournalInput, rec.JournalOpenAlex, rec.MatchedISSN, rec.Sheet); err != nil {
			return BuildSummary{}, fmt.Errorf("indexing journal %s: %w", rec.JournalInput, err)
		}
		summary.Journals++

		for i := range rec.Works {
			work := &rec.Works[i]
			id := work.Identity()
			if id == "" {
				continue
			}
			abstract, _ := openalex.ReconstructAbstract(work.AbstractInvertedIndex)
			res, err := insertWork.ExecContext(ctx,
				id, rec.OpenAlexID, work.DOI, work.Title, work.PublicationYear,
				strings.Join(work.AuthorNames(), "; "), abstract)
			if err != nil {
				return BuildSummary{}, fmt.Errorf("indexing work %s: %w", id, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				summary.Works++
			}
		}
		fmt.Fprintf(w, "indexed %s (%d works)\n", rec.JournalInput, len(rec.Works))
	}

	insertHit, err := tx.PrepareContext(ctx,
		`INSERT INTO hits (work_id, keyword, pattern) VALUES (?, ?, ?)`)
	if err != nil {
		return BuildSummary{}, fmt.Errorf("preparing hit insert: %w", err)
	}
	defer insertHit.Close()

	for _, h := range hits {
		id := h.ArticleID()
		if id == "" {
			continue
		}
		if _, err := insertHit.ExecContext(ctx, id, h.Keyword, h.Pattern); err != nil {
			return BuildSummary{}, fmt.Errorf("indexing hit for %s: %w", id, err)
		}
		summary.Hits++
	}

	if err := tx.Commit(); err != nil {
		return BuildSummary{}, fmt.Errorf("committing archive build: %w", err)
	}
	return summary, nil
}
