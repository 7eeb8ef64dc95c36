package parser

import (
	"fmt"

	"github.com/shakinm/xlsReader/xls"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

// XLSWorkbook reads legacy .xls (BIFF8) workbooks.
// The whole file is parsed on open, so Close has nothing to release.
type XLSWorkbook struct {
	book   xls.Workbook
	names  []string
	sheets map[string]int
}

// OpenXLS opens a legacy .xls file.
func OpenXLS(path string) (*XLSWorkbook, error) {
	book, err := xls.OpenFile(path)
	if err != nil {
		return nil, NewExtractionError("", "workbook", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}

	w := &XLSWorkbook{book: book, sheets: make(map[string]int)}
	for i := 0; i < book.GetNumberSheets(); i++ {
		sheet, err := book.GetSheet(i)
		if err != nil || sheet == nil {
			continue
		}
		name := sheet.GetName()
		w.names = append(w.names, name)
		w.sheets[name] = i
	}
	return w, nil
}

// SheetNames returns sheet names in workbook order.
func (w *XLSWorkbook) SheetNames() []string {
	names := make([]string, len(w.names))
	copy(names, w.names)
	return names
}

// Grid extracts a sheet as a rectangular grid. Cells are typed from their
// displayed string, so numbers survive but dates arrive as text.
func (w *XLSWorkbook) Grid(sheetName string) (models.Grid, error) {
	idx, ok := w.sheets[sheetName]
	if !ok {
		return nil, sheetNotFound(sheetName)
	}
	sheet, err := w.book.GetSheet(idx)
	if err != nil || sheet == nil {
		return nil, NewExtractionError(sheetName, "grid", fmt.Errorf("failed to read sheet: %v", err))
	}

	var rows [][]string
	width := 0
	for _, xlsRow := range sheet.GetRows() {
		if xlsRow == nil {
			rows = append(rows, nil)
			continue
		}
		var values []string
		for _, col := range xlsRow.GetCols() {
			values = append(values, col.GetString())
		}
		if len(values) > width {
			width = len(values)
		}
		rows = append(rows, values)
	}

	// Match excelize, which stops at the last non-empty row.
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}

	grid := make(models.Grid, len(rows))
	for i, values := range rows {
		out := make(models.Row, width)
		for j, v := range values {
			out[j] = parseValue(v)
		}
		grid[i] = out
	}
	return grid, nil
}

// Close is a no-op; the workbook is fully loaded in memory.
func (w *XLSWorkbook) Close() error {
	return nil
}

func isBlank(values []string) bool {
	for _, v := range values {
		if v != "" {
			return false
		}
	}
	return true
}
