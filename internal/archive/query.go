// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// QueryOptions filters an archive query. Text runs FTS5 full-text search
// over title and abstract; the remaining fields are structured filters.
// All provided filters must match.
type QueryOptions struct {
	Text    string
	Journal string
	Keyword string
	Year    int
	Limit   int
}

// IsEmpty reports whether no filter is set.
func (o QueryOptions) IsEmpty() bool {
	return o.Text == "" && o.Journal == "" && o.Keyword == "" && o.Year == 0
}

// QueryResult is one matched work with its journal and hit labels.
type QueryResult struct {
	WorkID   string `json:"work_id"`
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Journal  string `json:"journal"`
	DOI      string `json:"doi,omitempty"`
	Keywords string `json:"keywords,omitempty"`
}

const defaultQueryLimit = 20

// Query returns works matching the options, newest first.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}

	var (
		where []string
		args  []any
	)

	if opts.Text != "" {
		where = append(where, `w.rowid IN (SELECT rowid FROM works_fts WHERE works_fts MATCH ?)`)
		args = append(args, opts.Text)
	}
	if opts.Journal != "" {
		where = append(where, `(j.display_name LIKE ? OR j.input_name LIKE ?)`)
		pattern := "%" + opts.Journal + "%"
		args = append(args, pattern, pattern)
	}
	if opts.Keyword != "" {
		where = append(where, `EXISTS (SELECT 1 FROM hits hk WHERE hk.work_id = w.id AND hk.keyword = ?)`)
		args = append(args, opts.Keyword)
	}
	if opts.Year != 0 {
		where = append(where, `w.year = ?`)
		args = append(args, opts.Year)
	}

	query := `SELECT w.id, w.title, w.year, j.display_name, COALESCE(w.doi, ''),
		COALESCE((SELECT group_concat(DISTINCT h.keyword) FROM hits h WHERE h.work_id = w.id), '')
		FROM works w JOIN journals j ON j.id = w.journal_id`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY w.year DESC, w.title LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var r QueryResult
		var year sql.NullInt64
		if err := rows.Scan(&r.WorkID, &r.Title, &year, &r.Journal, &r.DOI, &r.Keywords); err != nil {
			return nil, fmt.Errorf("scanning archive row: %w", err)
		}
		r.Year = int(year.Int64)
		results = append(results, r)
	}
	return results, rows.Err()
}
