// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/pdiddy/journal-trends/internal/artifact"
	"github.com/pdiddy/journal-trends/internal/keywords"
	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

func invertedIndex(text string) map[string][]int {
	index := make(map[string][]int)
	for i, word := range strings.Fields(text) {
		index[word] = append(index[word], i)
	}
	return index
}

func sampleRecord() artifact.JournalRecord {
	return artifact.JournalRecord{
		Sheet:           "Sociology",
		JournalInput:    "Social Forces",
		JournalOpenAlex: "Social Forces",
		OpenAlexID:      "S456",
		Works: []openalex.Work{
			{
				ID:                    "W1",
				DOI:                   "https://doi.org/10.1/w1",
				Title:                 "Predicting outcomes",
				PublicationYear:       2021,
				Authorships:           []openalex.Authorship{{Author: openalex.Author{DisplayName: "Ada Lovelace"}}},
				AbstractInvertedIndex: invertedIndex("We apply machine learning and a GPT baseline"),
			},
			{
				ID:                    "W2",
				Title:                 "A theory paper",
				PublicationYear:       2021,
				AbstractInvertedIndex: invertedIndex("Purely theoretical argument about institutions"),
			},
			{
				// No year: skipped entirely.
				ID:                    "W3",
				Title:                 "Undated",
				AbstractInvertedIndex: invertedIndex("machine learning everywhere"),
			},
			{
				// No abstract: skipped.
				ID:              "W4",
				Title:           "No abstract",
				PublicationYear: 2021,
			},
		},
	}
}

func TestScanJournal(t *testing.T) {
	matcher := keywords.NewMatcher(keywords.DefaultRules())
	hits := ScanJournal(sampleRecord(), matcher)

	byLabel := make(map[string][]types.Hit)
	for _, h := range hits {
		byLabel[h.Keyword] = append(byLabel[h.Keyword], h)
	}

	if len(byLabel["Machine learning"]) != 1 {
		t.Errorf("Machine learning hits = %v", byLabel["Machine learning"])
	}
	if len(byLabel["Generative Pre-trained Transformer (GPT)"]) != 1 {
		t.Errorf("GPT hits = %v", byLabel["Generative Pre-trained Transformer (GPT)"])
	}
	for _, h := range hits {
		if h.WorkID != "W1" {
			t.Errorf("unexpected hit for work %s (%s)", h.WorkID, h.Keyword)
		}
		if h.Authors != "Ada Lovelace" {
			t.Errorf("Authors = %q", h.Authors)
		}
	}
}

func TestScanJournalCaseSensitiveAcronym(t *testing.T) {
	rec := artifact.JournalRecord{
		JournalInput: "J",
		Works: []openalex.Work{{
			ID:                    "W1",
			Title:                 "Lowercase gpt",
			PublicationYear:       2021,
			AbstractInvertedIndex: invertedIndex("the gpt term in lowercase"),
		}},
	}
	matcher := keywords.NewMatcher([]keywords.Rule{{Pattern: `\bGPT\b`, Label: "GPT"}})
	if hits := ScanJournal(rec, matcher); len(hits) != 0 {
		t.Errorf("expected no hits for lowercase acronym, got %v", hits)
	}
}

func TestRunWritesHitAndSummaryTables(t *testing.T) {
	outDir := t.TempDir()
	if err := artifact.WriteRawWorks(artifact.RawWorksPath(outDir, "Sociology"), []artifact.JournalRecord{sampleRecord()}); err != nil {
		t.Fatal(err)
	}

	var progress bytes.Buffer
	if err := Run(Options{Sheet: "Sociology", OutDir: outDir}, &progress); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	hits, err := artifact.ReadHits(artifact.HitsPath(outDir, "Sociology"))
	if err != nil {
		t.Fatalf("reading hit table: %v", err)
	}
	if len(hits) == 0 {
		t.Fatal("hit table is empty")
	}

	summary, err := os.ReadFile(artifact.SummaryPath(outDir, "Sociology"))
	if err != nil {
		t.Fatalf("reading summary table: %v", err)
	}
	if !strings.HasPrefix(string(summary), "journal_input,keyword,year,n_keyword_hits") {
		t.Errorf("summary header = %q", strings.SplitN(string(summary), "\n", 2)[0])
	}
	if !strings.Contains(progress.String(), "scanning Social Forces") {
		t.Errorf("progress output = %q", progress.String())
	}
}

func TestRunMissingRawArtifact(t *testing.T) {
	err := Run(Options{Sheet: "Sociology", OutDir: t.TempDir()}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error when raw artifact is absent")
	}
	if !strings.Contains(err.Error(), "run the extract stage first") {
		t.Errorf("error = %q", err)
	}
}

func TestSummarize(t *testing.T) {
	hits := []types.Hit{
		{JournalInput: "B", Keyword: "GPT", Year: 2021},
		{JournalInput: "A", Keyword: "GPT", Year: 2021},
		{JournalInput: "A", Keyword: "GPT", Year: 2021},
		{JournalInput: "A", Keyword: "BERT", Year: 2020},
	}

	rows := Summarize(hits)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Sorted by journal, keyword, year.
	if rows[0].Journal != "A" || rows[0].Keyword != "BERT" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
	if rows[1].Keyword != "GPT" || rows[1].Hits != 2 {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].Journal != "B" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
}
