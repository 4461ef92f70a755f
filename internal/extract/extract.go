// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements the resolve and extract pipeline stages:
// mapping input journals to OpenAlex sources and pulling down their raw
// work records.
package extract

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/journals"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// Options selects the input workbook slice and output location for the
// resolve and extract stages.
type Options struct {
	// Input is the path to the journal list workbook.
	Input string

	// Sheet is the workbook sheet (discipline) to process.
	Sheet string

	// OutDir is the artifact output directory.
	OutDir string

	// FromYear is the minimum publication year for fetched works.
	FromYear int

	// JournalDelay is the pause between consecutive journals, on top of
	// the client's per-request rate limit.
	JournalDelay time.Duration
}

// Resolve maps every journal in the sheet to an OpenAlex source and
// writes the journal table artifact. Journals with no match are recorded
// with found=false and a warning; they do not abort the batch.
func Resolve(ctx context.Context, client *openalex.Client, opts Options, w io.Writer) error {
	inputs, err := journals.ReadWorkbook(opts.Input, opts.Sheet)
	if err != nil {
		return err
	}

	table := make([]types.Journal, 0, len(inputs))
	found := 0
	for _, in := range inputs {
		j, err := client.ResolveJournal(ctx, in.Name, in.ISSN)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", in.Name, err)
		}
		if j.Found {
			found++
			fmt.Fprintf(w, "resolved %s -> %s (%s)\n", in.Name, j.DisplayName, j.OpenAlexID)
		} else {
			fmt.Fprintf(w, "warning: journal not found in OpenAlex: %s\n", in.Name)
		}
		table = append(table, j)
	}

	path := artifact.JournalsPath(opts.OutDir, opts.Sheet)
	if err := artifact.WriteJournals(path, table); err != nil {
		return err
	}
	fmt.Fprintf(w, "journal table saved to %s (%d/%d found)\n", path, found, len(table))
	return nil
}

// Run performs the extract stage: resolve each journal, fetch its
// complete work list since FromYear, and write the raw works artifact.
// Unresolvable journals are skipped with a warning; any API failure
// aborts the run.
func Run(ctx context.Context, client *openalex.Client, opts Options, w io.Writer) error {
	inputs, err := journals.ReadWorkbook(opts.Input, opts.Sheet)
	if err != nil {
		return err
	}

	var records []artifact.JournalRecord
	for i, in := range inputs {
		if i > 0 && opts.JournalDelay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(opts.JournalDelay):
			}
		}

		j, err := client.ResolveJournal(ctx, in.Name, in.ISSN)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", in.Name, err)
		}
		if !j.Found {
			fmt.Fprintf(w, "warning: journal not found in OpenAlex: %s\n", in.Name)
			continue
		}

		works, err := client.FetchWorks(ctx, j.OpenAlexID, opts.FromYear)
		if err != nil {
			return fmt.Errorf("fetching works for %s: %w", in.Name, err)
		}

		records = append(records, artifact.JournalRecord{
			Sheet:           opts.Sheet,
			JournalInput:    in.Name,
			JournalOpenAlex: j.DisplayName,
			MatchedISSN:     j.MatchedISSN,
			OpenAlexID:      j.OpenAlexID,
			WorkCount:       len(works),
			Works:           works,
		})
		fmt.Fprintf(w, "%s: %d works retrieved\n", in.Name, len(works))
	}

	path := artifact.RawWorksPath(opts.OutDir, opts.Sheet)
	if err := artifact.WriteRawWorks(path, records); err != nil {
		return err
	}
	fmt.Fprintf(w, "raw extraction saved to %s (%d journals)\n", path, len(records))
	return nil
}
