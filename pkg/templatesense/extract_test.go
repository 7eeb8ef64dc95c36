package templatesense

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/parser"
	"github.com/xuri/excelize/v2"
)

func invoiceRows() [][]any {
	return [][]any{
		{"Invoice Number: 12345", "Date: 2024-01-01"},
		{"Company: ABC Corp", "Address: 123 Main St"},
		{nil, nil},
		{"Item", "Quantity", "Price"},
		{"Widget A", 10, 25.5, 255.0},
		{"Widget B", 5, 12.0, 60.0},
		{"Gadget", 2, 100.0, 200.0},
		{"Bolt", 100, 0.25, 25.0},
		{"Nut", 200, 0.1, 20.0},
		{"Washer", 50, 0.05, 2.5},
	}
}

func invoiceGrid() models.Grid {
	var grid models.Grid
	for _, row := range invoiceRows() {
		grid = append(grid, models.TextRow(row...))
	}
	return grid
}

func TestBuildSheetSummary(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Invoice", invoiceGrid())

	summary, err := BuildSheetSummary(wb, "Invoice", DefaultOptions())
	if err != nil {
		t.Fatalf("BuildSheetSummary failed: %v", err)
	}

	if summary.SheetName != "Invoice" {
		t.Errorf("SheetName = %q", summary.SheetName)
	}
	if summary.RowCount != 10 || summary.ColCount != 4 {
		t.Errorf("size = %dx%d, expected 10x4", summary.RowCount, summary.ColCount)
	}
	if len(summary.HeaderBlocks) == 0 || summary.HeaderBlocks[0].RowStart > 2 {
		t.Errorf("unexpected header blocks %+v", summary.HeaderBlocks)
	}
	if len(summary.TableBlocks) != 1 {
		t.Fatalf("expected 1 table block, got %d", len(summary.TableBlocks))
	}
	table := summary.TableBlocks[0]
	if table.RowStart != 4 || table.RowEnd != 10 || table.DetectedPattern != "high_numeric_density" {
		t.Errorf("unexpected table block rows %d-%d pattern %q", table.RowStart, table.RowEnd, table.DetectedPattern)
	}
	if table.HeaderRow == nil || table.HeaderRow.RowIndex != 4 {
		t.Errorf("expected header row 4, got %+v", table.HeaderRow)
	}
}

func TestBuildSheetSummaryWithoutTableHeaders(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Invoice", invoiceGrid())
	include := false
	opts := DefaultOptions()
	opts.IncludeTableHeaders = &include

	summary, err := BuildSheetSummary(wb, "Invoice", opts)
	if err != nil {
		t.Fatalf("BuildSheetSummary failed: %v", err)
	}
	for _, b := range summary.TableBlocks {
		if b.HeaderRow != nil {
			t.Errorf("expected no header row, got %+v", b.HeaderRow)
		}
	}
}

func TestBuildSheetSummaryEmptySheet(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Blank", nil)

	summary, err := BuildSheetSummary(wb, "Blank", DefaultOptions())
	if err != nil {
		t.Fatalf("BuildSheetSummary failed: %v", err)
	}
	if summary.RowCount != 0 || summary.ColCount != 0 {
		t.Errorf("size = %dx%d, expected 0x0", summary.RowCount, summary.ColCount)
	}
	if summary.HeaderBlocks == nil || summary.TableBlocks == nil {
		t.Error("expected empty, non-nil block lists")
	}
	if len(summary.HeaderBlocks) != 0 || len(summary.TableBlocks) != 0 {
		t.Errorf("expected no blocks, got %+v", summary)
	}
}

func TestBuildSheetSummaryMissingSheet(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Invoice", invoiceGrid())

	_, err := BuildSheetSummary(wb, "Missing", DefaultOptions())
	if !errors.Is(err, ErrSheetNotFound) {
		t.Fatalf("expected ErrSheetNotFound, got %v", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) || extErr.SheetName != "Missing" {
		t.Errorf("expected ExtractionError for 'Missing', got %v", err)
	}
}

func TestBuildSheetSummaryInvalidOptions(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Invoice", invoiceGrid())

	tests := []func(*Options){
		func(o *Options) { o.Header.MinScore = 1.5 },
		func(o *Options) { o.Table.MinScore = -0.1 },
		func(o *Options) { o.Table.MinConsecutive = 0 },
		func(o *Options) { o.Header.MaxGap = -1 },
		func(o *Options) { o.Workers = -1 },
	}
	for i, mutate := range tests {
		opts := DefaultOptions()
		mutate(&opts)
		if _, err := BuildSheetSummary(wb, "Invoice", opts); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("case %d: expected ErrInvalidParameter, got %v", i, err)
		}
	}

	// Parameters are checked before the sheet is looked up.
	opts := DefaultOptions()
	opts.Header.MinScore = 2
	if _, err := BuildSheetSummary(wb, "Missing", opts); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter before sheet lookup, got %v", err)
	}
}

func TestSummarizeWorkbook(t *testing.T) {
	wb := parser.NewMemoryWorkbook().
		AddSheet("Invoice", invoiceGrid()).
		AddSheet("Blank", nil).
		AddSheet("Copy", invoiceGrid())

	opts := DefaultOptions()
	opts.Workers = 2
	summary, err := SummarizeWorkbook(context.Background(), wb, opts)
	if err != nil {
		t.Fatalf("SummarizeWorkbook failed: %v", err)
	}

	if summary.RunID == "" {
		t.Error("expected a run id")
	}
	var names []string
	for _, s := range summary.Sheets {
		names = append(names, s.SheetName)
	}
	if len(names) != 3 || names[0] != "Invoice" || names[1] != "Blank" || names[2] != "Copy" {
		t.Errorf("sheet order = %v", names)
	}
	if s, ok := summary.Sheet("Copy"); !ok || len(s.TableBlocks) != 1 {
		t.Errorf("Copy summary = %+v, %v", s, ok)
	}

	opts.Sheets = []string{"Copy"}
	only, err := SummarizeWorkbook(context.Background(), wb, opts)
	if err != nil || len(only.Sheets) != 1 || only.Sheets[0].SheetName != "Copy" {
		t.Errorf("filtered summary = %+v, %v", only, err)
	}

	opts.Sheets = []string{"Nope"}
	if _, err := SummarizeWorkbook(context.Background(), wb, opts); !errors.Is(err, ErrSheetNotFound) {
		t.Errorf("expected ErrSheetNotFound, got %v", err)
	}
}

func TestSummarizeWorkbookCanceled(t *testing.T) {
	wb := parser.NewMemoryWorkbook().AddSheet("Invoice", invoiceGrid())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := SummarizeWorkbook(ctx, wb, DefaultOptions()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSummarizeFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range invoiceRows() {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "invoice.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	summary, err := Summarize(context.Background(), path, DefaultOptions())
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.BookName != "invoice.xlsx" {
		t.Errorf("BookName = %q", summary.BookName)
	}
	sheet, ok := summary.Sheet("Sheet1")
	if !ok {
		t.Fatal("expected Sheet1 summary")
	}
	if len(sheet.HeaderBlocks) == 0 {
		t.Error("expected header blocks")
	}
	if len(sheet.TableBlocks) != 1 || sheet.TableBlocks[0].RowStart != 4 || sheet.TableBlocks[0].RowEnd != 10 {
		t.Errorf("unexpected table blocks %+v", sheet.TableBlocks)
	}
}

func TestSummarizeFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Summarize(context.Background(), filepath.Join(dir, "missing.xlsx"), DefaultOptions()); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("expected ErrFileNotFound, got %v", err)
	}
}

func TestBuildSheetSummaryPrintAreaOnly(t *testing.T) {
	grid := append(invoiceGrid(),
		models.TextRow(nil),
		models.TextRow("Memo: internal use", "Checked by: QA"),
	)
	wb := parser.NewMemoryWorkbook().
		AddSheet("Invoice", grid).
		SetPrintArea("Invoice", models.CellRange{RowStart: 1, RowEnd: 10, ColStart: 1, ColEnd: 4})

	opts := DefaultOptions()
	full, err := BuildSheetSummary(wb, "Invoice", opts)
	if err != nil {
		t.Fatalf("BuildSheetSummary failed: %v", err)
	}
	if last := full.HeaderBlocks[len(full.HeaderBlocks)-1]; last.RowStart != 12 {
		t.Errorf("expected a header block at row 12 without clipping, got %+v", full.HeaderBlocks)
	}

	opts.PrintAreaOnly = true
	clipped, err := BuildSheetSummary(wb, "Invoice", opts)
	if err != nil {
		t.Fatalf("BuildSheetSummary failed: %v", err)
	}
	for _, b := range clipped.HeaderBlocks {
		if b.RowEnd > 10 {
			t.Errorf("header block outside print area: %+v", b)
		}
	}
	if len(clipped.TableBlocks) != 1 || clipped.TableBlocks[0].RowEnd != 10 {
		t.Errorf("unexpected table blocks %+v", clipped.TableBlocks)
	}
}
