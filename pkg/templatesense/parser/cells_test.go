package parser

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractGrid(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A3", "Text")
	f.SetCellValue(sheetName, "C4", true)
	f.SetCellValue(sheetName, "D5", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	wb, err := OpenExcel(tmpFile)
	if err != nil {
		t.Fatalf("OpenExcel failed: %v", err)
	}
	defer wb.Close()

	grid, err := wb.Grid(sheetName)
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}

	if len(grid) != 5 {
		t.Fatalf("Expected 5 rows, got %d", len(grid))
	}
	for i, row := range grid {
		if len(row) != 4 {
			t.Errorf("Expected row %d padded to 4 columns, got %d", i+1, len(row))
		}
	}

	if got := grid.At(1, 1); got.Kind != models.KindText || got.Text != "Header1" {
		t.Errorf("Expected text 'Header1', got %#v", got)
	}
	if got := grid.At(2, 1); got.Kind != models.KindNumber || got.Number != 100 {
		t.Errorf("Expected number 100, got %#v", got)
	}
	if got := grid.At(2, 2); got.Kind != models.KindNumber || got.Number != 200.5 {
		t.Errorf("Expected number 200.5, got %#v", got)
	}
	if got := grid.At(3, 2); !got.IsEmpty() {
		t.Errorf("Expected empty B3, got %#v", got)
	}
	if got := grid.At(4, 3); got.Kind != models.KindBool || !got.Bool {
		t.Errorf("Expected bool true, got %#v", got)
	}
	got := grid.At(5, 4)
	if got.Kind != models.KindDateTime {
		t.Fatalf("Expected datetime, got %#v", got)
	}
	if got.Time.Year() != 2024 || got.Time.Month() != time.March || got.Time.Day() != 15 {
		t.Errorf("Expected 2024-03-15, got %v", got.Time)
	}
}

func TestExtractGridMergedCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "Merged Header")
	if err := f.MergeCell("Sheet1", "A1", "B1"); err != nil {
		t.Fatalf("MergeCell failed: %v", err)
	}
	f.SetCellValue("Sheet1", "A2", "Data1")
	f.SetCellValue("Sheet1", "B2", "Data2")

	grid, err := NewExcelWorkbook(f).Grid("Sheet1")
	if err != nil {
		t.Fatalf("Grid failed: %v", err)
	}
	if len(grid) < 2 {
		t.Fatalf("Expected at least 2 rows, got %d", len(grid))
	}
	if grid.At(1, 1).Text != "Merged Header" {
		t.Errorf("Expected merged value in top-left cell, got %#v", grid.At(1, 1))
	}
	if !grid.At(1, 2).IsEmpty() {
		t.Errorf("Expected merged continuation cell to be empty, got %#v", grid.At(1, 2))
	}
}

func TestExcelGridSheetNotFound(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	_, err := NewExcelWorkbook(f).Grid("Missing")
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("Expected ErrSheetNotFound, got %v", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) || extErr.SheetName != "Missing" {
		t.Errorf("Expected ExtractionError for sheet 'Missing', got %v", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Cell
	}{
		{"123", models.Number(123)},
		{"123.45", models.Number(123.45)},
		{"-100", models.Number(-100)},
		{"hello", models.Text("hello")},
		{" 42 ", models.Text(" 42 ")},
		{"NaN", models.Text("NaN")},
		{"1e400", models.Text("1e400")},
		{"1e999999999", models.Text("1e999999999")},
		{"", models.Empty()},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %#v, expected %#v", tt.input, result, tt.expected)
		}
	}
}

func TestCellValue(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		cellType excelize.CellType
		isDate   bool
		kind     models.CellKind
	}{
		{"shared string stays text", "123", excelize.CellTypeSharedString, false, models.KindText},
		{"bool", "1", excelize.CellTypeBool, false, models.KindBool},
		{"number", "12.5", excelize.CellTypeNumber, false, models.KindNumber},
		{"unset numeric", "7", excelize.CellTypeUnset, false, models.KindNumber},
		{"date styled serial", "45366", excelize.CellTypeUnset, true, models.KindDateTime},
		{"iso date cell", "2024-03-15T00:00:00Z", excelize.CellTypeDate, true, models.KindDateTime},
		{"error", "#DIV/0!", excelize.CellTypeError, false, models.KindText},
		{"formula string", "Total", excelize.CellTypeFormula, false, models.KindText},
	}

	for _, tt := range tests {
		got := cellValue(tt.raw, tt.cellType, tt.isDate, false)
		if got.Kind != tt.kind {
			t.Errorf("%s: cellValue(%q) kind = %v, expected %v", tt.name, tt.raw, got.Kind, tt.kind)
		}
	}
}

func TestIsDateNumFmt(t *testing.T) {
	tests := []struct {
		numFmt   int
		custom   string
		expected bool
	}{
		{14, "", true},
		{22, "", true},
		{0, "", false},
		{2, "", false},
		{164, "yyyy/mm/dd", true},
		{164, `"Due "d-mmm`, true},
		{164, "[Red]#,##0.00", false},
		{164, "0.00", false},
		{164, "h:mm", true},
	}

	for _, tt := range tests {
		result := isDateNumFmt(tt.numFmt, tt.custom)
		if result != tt.expected {
			t.Errorf("isDateNumFmt(%d, %q) = %v, expected %v", tt.numFmt, tt.custom, result, tt.expected)
		}
	}
}
