// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan implements the clean/match pipeline stage: it rebuilds
// abstracts from the raw extraction artifact, tests them against the
// keyword rule table, and writes the hit and summary tables.
package scan

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/keywords"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// Options selects the input artifact and rule table for the scan stage.
type Options struct {
	Sheet  string
	OutDir string

	// Rules is the keyword rule table. Nil means the built-in default table.
	Rules []keywords.Rule
}

// Run reads the raw works artifact and writes the hit table plus the
// summary hit-count table.
func Run(opts Options, w io.Writer) error {
	rules := opts.Rules
	if rules == nil {
		rules = keywords.DefaultRules()
	}
	matcher := keywords.NewMatcher(rules)

	records, err := artifact.ReadRawWorks(artifact.RawWorksPath(opts.OutDir, opts.Sheet))
	if err != nil {
		return err
	}

	var hits []types.Hit
	for i, rec := range records {
		fmt.Fprintf(w, "[%d/%d] scanning %s (%d works)\n", i+1, len(records), rec.JournalInput, len(rec.Works))
		hits = append(hits, ScanJournal(rec, matcher)...)
	}

	hitsPath := artifact.HitsPath(opts.OutDir, opts.Sheet)
	if err := artifact.WriteHits(hitsPath, hits); err != nil {
		return err
	}

	summaryPath := artifact.SummaryPath(opts.OutDir, opts.Sheet)
	if err := writeSummary(summaryPath, Summarize(hits)); err != nil {
		return err
	}

	fmt.Fprintf(w, "keyword hits saved to %s (%d rows)\n", hitsPath, len(hits))
	fmt.Fprintf(w, "summary table saved to %s\n", summaryPath)
	return nil
}

// ScanJournal emits one Hit per (work, matching rule) pair for a single
// journal record. Works missing a publication year or title are skipped,
// as are works whose abstract cannot be reconstructed. Each abstract is
// reconstructed once and tested against every rule in table order.
func ScanJournal(rec artifact.JournalRecord, matcher *keywords.Matcher) []types.Hit {
	var hits []types.Hit
	for i := range rec.Works {
		work := &rec.Works[i]
		if work.PublicationYear == 0 || work.Title == "" {
			continue
		}

		abstract, ok := openalex.ReconstructAbstract(work.AbstractInvertedIndex)
		if !ok {
			continue
		}

		venue := work.VenueName()
		if venue == "" {
			venue = rec.JournalOpenAlex
		}
		authors := strings.Join(work.AuthorNames(), "; ")

		for _, rule := range matcher.Match(abstract) {
			hits = append(hits, types.Hit{
				JournalInput:    rec.JournalInput,
				JournalOpenAlex: venue,
				WorkID:          work.ID,
				DOI:             work.DOI,
				Year:            work.PublicationYear,
				Title:           work.Title,
				Authors:         authors,
				Keyword:         rule.Label,
				Pattern:         rule.Pattern,
			})
		}
	}
	return hits
}

// SummaryRow counts raw hit rows for a (journal, keyword, year) triple.
type SummaryRow struct {
	Journal string
	Keyword string
	Year    int
	Hits    int
}

// Summarize collapses hits into per-(journal, keyword, year) counts,
// sorted by journal, then keyword, then year.
func Summarize(hits []types.Hit) []SummaryRow {
	type key struct {
		journal string
		keyword string
		year    int
	}
	counts := make(map[key]int)
	for _, h := range hits {
		counts[key{h.JournalInput, h.Keyword, h.Year}]++
	}

	rows := make([]SummaryRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, SummaryRow{Journal: k.journal, Keyword: k.keyword, Year: k.year, Hits: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Journal != rows[j].Journal {
			return rows[i].Journal < rows[j].Journal
		}
		if rows[i].Keyword != rows[j].Keyword {
			return rows[i].Keyword < rows[j].Keyword
		}
		return rows[i].Year < rows[j].Year
	})
	return rows
}

func writeSummary(path string, rows []SummaryRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating summary table %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"journal_input", "keyword", "year", "n_keyword_hits"}); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Journal, r.Keyword, strconv.Itoa(r.Year), strconv.Itoa(r.Hits)}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing summary row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
