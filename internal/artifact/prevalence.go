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

var prevalenceHeader = []string{
	"journal_input",
	"year",
	"keyword",
	"n_articles_total",
	"n_articles_with_keyword",
	"share",
	"percentage",
}

// WritePrevalence writes the aggregate table as CSV. Floats use the
// shortest exact decimal form, so identical inputs produce byte-identical
// output.
func WritePrevalence(path string, rows []types.AggregateRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating prevalence table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(prevalenceHeader); err != nil {
		return fmt.Errorf("writing prevalence header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Journal,
			strconv.Itoa(r.Year),
			r.Keyword,
			strconv.Itoa(r.TotalArticles),
			strconv.Itoa(r.MatchingArticles),
			strconv.FormatFloat(r.Share, 'f', -1, 64),
			strconv.FormatFloat(r.Percentage, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing prevalence row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ReadPrevalence loads an aggregate table written by WritePrevalence.
func ReadPrevalence(path string) ([]types.AggregateRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("prevalence table not found: %s (run the aggregate stage first)", path)
		}
		return nil, fmt.Errorf("opening prevalence table %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing prevalence table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("prevalence table %s is empty", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range prevalenceHeader {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("prevalence table %s missing columns: %s", path, strings.Join(missing, ", "))
	}

	var rows []types.AggregateRow
	for i, record := range records[1:] {
		get := func(name string) string { return record[col[name]] }

		year, err := strconv.Atoi(get("year"))
		if err != nil {
			return nil, fmt.Errorf("prevalence table %s row %d: bad year %q", path, i+2, get("year"))
		}
		total, err := strconv.Atoi(get("n_articles_total"))
		if err != nil {
			return nil, fmt.Errorf("prevalence table %s row %d: bad total %q", path, i+2, get("n_articles_total"))
		}
		matching, err := strconv.Atoi(get("n_articles_with_keyword"))
		if err != nil {
			return nil, fmt.Errorf("prevalence table %s row %d: bad count %q", path, i+2, get("n_articles_with_keyword"))
		}
		share, _ := strconv.ParseFloat(get("share"), 64)
		pct, _ := strconv.ParseFloat(get("percentage"), 64)

		rows = append(rows, types.AggregateRow{
			Journal:          get("journal_input"),
			Year:             year,
			Keyword:          get("keyword"),
			TotalArticles:    total,
			MatchingArticles: matching,
			Share:            share,
			Percentage:       pct,
		})
	}
	return rows, nil
}
