// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate computes per-(journal, year, keyword) prevalence from
// the hit table and the raw extraction artifact.
package aggregate

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// Options selects the input artifacts for the aggregate stage.
type Options struct {
	Sheet  string
	OutDir string
}

// Run reads the hit table and raw works artifact, builds the prevalence
// table, and writes it as CSV. Output is fully regenerated on every run.
func Run(opts Options, w io.Writer) error {
	hits, err := artifact.ReadHits(artifact.HitsPath(opts.OutDir, opts.Sheet))
	if err != nil {
		return err
	}
	records, err := artifact.ReadRawWorks(artifact.RawWorksPath(opts.OutDir, opts.Sheet))
	if err != nil {
		return err
	}

	rows := BuildRows(hits, records)

	path := artifact.PrevalencePath(opts.OutDir, opts.Sheet)
	if err := artifact.WritePrevalence(path, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "keyword prevalence saved to %s (%d rows)\n", path, len(rows))
	return nil
}

type jykKey struct {
	journal string
	year    int
	keyword string
}

type jyKey struct {
	journal string
	year    int
}

// BuildRows produces exactly one row per (journal, year, keyword) present
// in the hit table. The matching count is the number of distinct article
// identities with at least one hit for the label; the total is the number
// of distinct article identities in the raw works for that journal-year,
// regardless of keyword. Works without a publication year are excluded
// from totals. A zero total yields share and percentage of exactly zero.
// Rows are sorted by keyword, then journal, then year, so unchanged
// inputs reproduce identical output.
func BuildRows(hits []types.Hit, records []artifact.JournalRecord) []types.AggregateRow {
	matched := make(map[jykKey]map[string]bool)
	for _, h := range hits {
		id := h.ArticleID()
		if id == "" || h.Year == 0 {
			continue
		}
		key := jykKey{h.JournalInput, h.Year, h.Keyword}
		if matched[key] == nil {
			matched[key] = make(map[string]bool)
		}
		matched[key][id] = true
	}

	totals := make(map[jyKey]map[string]bool)
	for _, rec := range records {
		for i := range rec.Works {
			work := &rec.Works[i]
			if work.PublicationYear == 0 {
				continue
			}
			id := work.Identity()
			if id == "" {
				continue
			}
			key := jyKey{rec.JournalInput, work.PublicationYear}
			if totals[key] == nil {
				totals[key] = make(map[string]bool)
			}
			totals[key][id] = true
		}
	}

	rows := make([]types.AggregateRow, 0, len(matched))
	for key, ids := range matched {
		total := len(totals[jyKey{key.journal, key.year}])
		matching := len(ids)

		var share float64
		if total > 0 {
			share = float64(matching) / float64(total)
		}

		rows = append(rows, types.AggregateRow{
			Journal:          key.journal,
			Year:             key.year,
			Keyword:          key.keyword,
			TotalArticles:    total,
			MatchingArticles: matching,
			Share:            share,
			Percentage:       share * 100,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Keyword != rows[j].Keyword {
			return rows[i].Keyword < rows[j].Keyword
		}
		if rows[i].Journal != rows[j].Journal {
			return rows[i].Journal < rows[j].Journal
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}
