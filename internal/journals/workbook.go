// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journals reads the journal list workbook that seeds the pipeline.
package journals

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/journal-trends/pkg/types"
)

// Required columns in the input sheet's header row.
const (
	journalColumn = "Journal Name"
	issnColumn    = "ISSN"
)

// ReadWorkbook loads journal rows from the named sheet of an .xlsx
// workbook. The sheet must carry a header row with the "Journal Name" and
// "ISSN" columns; a missing file, sheet, or column aborts with an error
// naming it. Rows with a blank journal name are skipped.
func ReadWorkbook(path, sheet string) ([]types.JournalInput, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("input workbook not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}

	nameIdx, issnIdx := -1, -1
	for i, col := range rows[0] {
		switch strings.TrimSpace(col) {
		case journalColumn:
			nameIdx = i
		case issnColumn:
			issnIdx = i
		}
	}

	var missing []string
	if nameIdx < 0 {
		missing = append(missing, journalColumn)
	}
	if issnIdx < 0 {
		missing = append(missing, issnColumn)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sheet %q missing required columns: %s", sheet, strings.Join(missing, ", "))
	}

	var inputs []types.JournalInput
	for _, row := range rows[1:] {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		inputs = append(inputs, types.JournalInput{
			Name: name,
			ISSN: cell(row, issnIdx),
		})
	}
	return inputs, nil
}

// cell returns the trimmed value at index i, or "" when the row is short.
// excelize truncates trailing empty cells, so short rows are routine.
func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
