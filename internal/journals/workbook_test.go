// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journals

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an .xlsx file with the given sheet and rows.
func writeWorkbook(t *testing.T, sheet string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		for j, value := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, cellName, value); err != nil {
				t.Fatal(err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "journals.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Sociology", [][]string{
		{"Journal Name", "ISSN"},
		{"American Journal of Sociology", "0002-9602, 1537-5390"},
		{"Social Forces", "0037-7732"},
		{"", "9999-9999"},
		{"Journal With No ISSN", ""},
	})

	inputs, err := ReadWorkbook(path, "Sociology")
	if err != nil {
		t.Fatalf("ReadWorkbook() error: %v", err)
	}
	if len(inputs) != 3 {
		t.Fatalf("got %d journals, want 3 (blank name skipped)", len(inputs))
	}
	if inputs[0].Name != "American Journal of Sociology" || inputs[0].ISSN != "0002-9602, 1537-5390" {
		t.Errorf("inputs[0] = %+v", inputs[0])
	}
	if inputs[2].ISSN != "" {
		t.Errorf("inputs[2].ISSN = %q, want empty", inputs[2].ISSN)
	}
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"), "Sociology")
	if err == nil {
		t.Fatal("expected error for missing workbook")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error %q does not name the missing file", err)
	}
}

func TestReadWorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, "Sociology", [][]string{
		{"Journal Name", "ISSN"},
	})
	if _, err := ReadWorkbook(path, "Political_Science"); err == nil {
		t.Fatal("expected error for missing sheet")
	}
}

func TestReadWorkbookMissingColumns(t *testing.T) {
	path := writeWorkbook(t, "Sociology", [][]string{
		{"Title", "Publisher"},
		{"American Journal of Sociology", "UChicago"},
	})

	_, err := ReadWorkbook(path, "Sociology")
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	for _, col := range []string{"Journal Name", "ISSN"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("error %q does not name missing column %q", err, col)
		}
	}
}
