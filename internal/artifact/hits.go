// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/journal-trends/pkg/types"
)

// hitsHeader is the hit table column order. Readers locate columns by
// name, so extra columns in a hand-edited file are tolerated.
var hitsHeader = []string{
	"journal_input",
	"journal_openalex",
	"work_id",
	"doi",
	"year",
	"title",
	"authors",
	"keyword",
	"pattern",
}

// WriteHits writes the keyword hit table as CSV.
func WriteHits(path string, hits []types.Hit) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating hit table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(hitsHeader); err != nil {
		return fmt.Errorf("writing hit table header: %w", err)
	}
	for _, h := range hits {
		row := []string{
			h.JournalInput,
			h.JournalOpenAlex,
			h.WorkID,
			h.DOI,
			strconv.Itoa(h.Year),
			h.Title,
			h.Authors,
			h.Keyword,
			h.Pattern,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing hit table row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadHits loads a keyword hit table. The file must carry at least the
// journal_input, year, keyword, and title columns; rows whose year does
// not parse or whose title is empty are dropped, matching the scan
// stage's skip policy for incomplete works.
func ReadHits(path string) ([]types.Hit, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("hit table not found: %s (run the scan stage first)", path)
		}
		return nil, fmt.Errorf("opening hit table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing hit table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("hit table %s is empty", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range []string{"journal_input", "year", "keyword", "title"} {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("hit table %s missing columns: %s", path, strings.Join(missing, ", "))
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var hits []types.Hit
	for _, row := range records[1:] {
		year, err := strconv.Atoi(field(row, "year"))
		if err != nil {
			continue
		}
		title := field(row, "title")
		if title == "" {
			continue
		}
		hits = append(hits, types.Hit{
			JournalInput:    field(row, "journal_input"),
			JournalOpenAlex: field(row, "journal_openalex"),
			WorkID:          field(row, "work_id"),
			DOI:             field(row, "doi"),
			Year:            year,
			Title:           title,
			Authors:         field(row, "authors"),
			Keyword:         field(row, "keyword"),
			Pattern:         field(row, "pattern"),
		})
	}
	return hits, nil
}
