// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package artifact defines the files each pipeline stage reads and writes.
// Filenames are keyed by the sheet name; every stage fully regenerates its
// own artifact and never updates one in place.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/journal-trends/internal/openalex"
	"github.com/pdiddy/journal-trends/pkg/types"
)

// JournalRecord is one journal's slice of the raw extraction artifact:
// the journal's resolved identity plus its full list of raw works.
type JournalRecord struct {
	Sheet           string          `json:"sheet"`
	JournalInput    string          `json:"journal_input"`
	JournalOpenAlex string          `json:"journal_openalex"`
	MatchedISSN     string          `json:"matched_issn,omitempty"`
	OpenAlexID      string          `json:"openalex_id"`
	WorkCount       int             `json:"n_works"`
	Works           []openalex.Work `json:"works_raw"`
}

// SafeSheet makes a sheet name filename-safe by removing spaces.
func SafeSheet(sheet string) string {
	return strings.ReplaceAll(sheet, " ", "")
}

// JournalsPath is the resolve-stage journal table.
func JournalsPath(outDir, sheet string) string {
	return filepath.Join(outDir, "journals_"+SafeSheet(sheet)+".yaml")
}

// RawWorksPath is the extract-stage raw works artifact.
func RawWorksPath(outDir, sheet string) string {
	return filepath.Join(outDir, "openalex_raw_works_"+SafeSheet(sheet)+".json")
}

// HitsPath is the scan-stage keyword hit table.
func HitsPath(outDir, sheet string) string {
	return filepath.Join(outDir, "works_keyword_hits_"+SafeSheet(sheet)+".csv")
}

// SummaryPath is the scan-stage per-(journal, keyword, year) hit count table.
func SummaryPath(outDir, sheet string) string {
	return filepath.Join(outDir, "summary_keyword_hits_"+SafeSheet(sheet)+".csv")
}

// PrevalencePath is the aggregate-stage keyword prevalence table.
func PrevalencePath(outDir, sheet string) string {
	return filepath.Join(outDir, "keyword_prevalence_"+SafeSheet(sheet)+".csv")
}

// FiguresDir holds the visualize-stage output figures.
func FiguresDir(outDir string) string {
	return filepath.Join(outDir, "figures")
}

// IndexDBPath is the archive SQLite database.
func IndexDBPath(outDir string) string {
	return filepath.Join(outDir, "index", "trends.db")
}

// WriteJournals writes the resolved journal table as YAML.
func WriteJournals(path string, journals []types.Journal) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal table %s: %w", path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	defer enc.Close()
	if err := enc.Encode(journals); err != nil {
		return fmt.Errorf("writing journal table %s: %w", path, err)
	}
	return nil
}

// ReadJournals loads a resolved journal table written by WriteJournals.
func ReadJournals(path string) ([]types.Journal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("journal table not found: %s (run the resolve stage first)", path)
		}
		return nil, fmt.Errorf("reading journal table %s: %w", path, err)
	}
	var journals []types.Journal
	if err := yaml.Unmarshal(data, &journals); err != nil {
		return nil, fmt.Errorf("parsing journal table %s: %w", path, err)
	}
	return journals, nil
}

// WriteRawWorks writes the raw extraction artifact as indented JSON.
func WriteRawWorks(path string, records []JournalRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating raw works artifact %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("writing raw works artifact %s: %w", path, err)
	}
	return nil
}

// ReadRawWorks loads the raw extraction artifact.
func ReadRawWorks(path string) ([]JournalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("raw works artifact not found: %s (run the extract stage first)", path)
		}
		return nil, fmt.Errorf("opening raw works artifact %s: %w", path, err)
	}
	defer f.Close()

	var records []JournalRecord
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing raw works artifact %s: %w", path, err)
	}
	return records, nil
}
