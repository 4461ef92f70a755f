// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"bytes"
	"os"
	"testing"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

func sampleRecords() []artifact.JournalRecord {
	return []artifact.JournalRecord{
		{
			JournalInput: "Social Forces",
			Works: []openalex.Work{
				{ID: "W1", Title: "Uses GPT", PublicationYear: 2021},
				{ID: "W2", Title: "No keywords here", PublicationYear: 2021},
				{Title: "Undated, excluded from totals"},
			},
		},
	}
}

func sampleHits() []types.Hit {
	return []types.Hit{
		{JournalInput: "Social Forces", WorkID: "W1", Year: 2021, Title: "Uses GPT", Keyword: "Generative Pre-trained Transformer (GPT)"},
	}
}

func TestBuildRowsShare(t *testing.T) {
	rows := BuildRows(sampleHits(), sampleRecords())
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row.Journal != "Social Forces" || row.Year != 2021 {
		t.Errorf("row key = %+v", row)
	}
	if row.MatchingArticles != 1 || row.TotalArticles != 2 {
		t.Errorf("counts = %d/%d, want 1/2", row.MatchingArticles, row.TotalArticles)
	}
	if row.Share != 0.5 || row.Percentage != 50 {
		t.Errorf("share = %v, percentage = %v", row.Share, row.Percentage)
	}
}

func TestBuildRowsDistinctArticles(t *testing.T) {
	// Two hits for the same work (different patterns, same label) count once.
	hits := []types.Hit{
		{JournalInput: "J", WorkID: "W1", Year: 2020, Title: "T", Keyword: "Machine learning", Pattern: `\bmachine learning\b`},
		{JournalInput: "J", WorkID: "W1", Year: 2020, Title: "T", Keyword: "Machine learning", Pattern: `\bsupervised learning\b`},
	}
	records := []artifact.JournalRecord{{
		JournalInput: "J",
		Works:        []openalex.Work{{ID: "W1", Title: "T", PublicationYear: 2020}},
	}}

	rows := BuildRows(hits, records)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].MatchingArticles != 1 {
		t.Errorf("MatchingArticles = %d, want 1", rows[0].MatchingArticles)
	}
}

func TestBuildRowsZeroTotal(t *testing.T) {
	// A hit whose journal-year has no raw works with identity: guarded
	// division, no panic, share stays zero.
	hits := []types.Hit{
		{JournalInput: "J", WorkID: "W1", Year: 2020, Title: "T", Keyword: "K"},
	}

	rows := BuildRows(hits, nil)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Share != 0 || rows[0].Percentage != 0 {
		t.Errorf("share = %v, percentage = %v, want zeros", rows[0].Share, rows[0].Percentage)
	}
}

func TestBuildRowsMatchingNeverExceedsTotal(t *testing.T) {
	hits := []types.Hit{
		{JournalInput: "A", WorkID: "W1", Year: 2020, Title: "T1", Keyword: "K"},
		{JournalInput: "A", WorkID: "W2", Year: 2020, Title: "T2", Keyword: "K"},
		{JournalInput: "A", DOI: "10.1/x", Year: 2021, Title: "T3", Keyword: "K"},
		{JournalInput: "B", Year: 2020, Title: "Only a title", Keyword: "K2"},
	}
	records := []artifact.JournalRecord{
		{JournalInput: "A", Works: []openalex.Work{
			{ID: "W1", Title: "T1", PublicationYear: 2020},
			{ID: "W2", Title: "T2", PublicationYear: 2020},
			{ID: "W9", Title: "T9", PublicationYear: 2020},
			{DOI: "10.1/x", Title: "T3", PublicationYear: 2021},
		}},
		{JournalInput: "B", Works: []openalex.Work{
			{Title: "Only a title", PublicationYear: 2020},
		}},
	}

	for _, row := range BuildRows(hits, records) {
		if row.MatchingArticles > row.TotalArticles {
			t.Errorf("row %+v: matching exceeds total", row)
		}
	}
}

func TestBuildRowsSortOrder(t *testing.T) {
	hits := []types.Hit{
		{JournalInput: "B", WorkID: "W1", Year: 2020, Title: "T", Keyword: "GPT"},
		{JournalInput: "A", WorkID: "W2", Year: 2021, Title: "T", Keyword: "GPT"},
		{JournalInput: "A", WorkID: "W3", Year: 2020, Title: "T", Keyword: "GPT"},
		{JournalInput: "A", WorkID: "W4", Year: 2020, Title: "T", Keyword: "BERT"},
	}

	rows := BuildRows(hits, nil)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	// Keyword, then journal, then year.
	want := []struct {
		keyword string
		journal string
		year    int
	}{
		{"BERT", "A", 2020},
		{"GPT", "A", 2020},
		{"GPT", "A", 2021},
		{"GPT", "B", 2020},
	}
	for i, w := range want {
		if rows[i].Keyword != w.keyword || rows[i].Journal != w.journal || rows[i].Year != w.year {
			t.Errorf("rows[%d] = %+v, want %+v", i, rows[i], w)
		}
	}
}

func TestRunIdempotent(t *testing.T) {
	outDir := t.TempDir()
	if err := artifact.WriteHits(artifact.HitsPath(outDir, "Sociology"), sampleHits()); err != nil {
		t.Fatal(err)
	}
	if err := artifact.WriteRawWorks(artifact.RawWorksPath(outDir, "Sociology"), sampleRecords()); err != nil {
		t.Fatal(err)
	}

	opts := Options{Sheet: "Sociology", OutDir: outDir}
	if err := Run(opts, &bytes.Buffer{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	path := artifact.PrevalencePath(outDir, "Sociology")
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := Run(opts, &bytes.Buffer{}); err != nil {
		t.Fatalf("second Run() error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Error("re-running aggregate on unchanged inputs changed the output")
	}
}

func TestRunMissingInputs(t *testing.T) {
	err := Run(Options{Sheet: "Sociology", OutDir: t.TempDir()}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error when stage inputs are absent")
	}
}
