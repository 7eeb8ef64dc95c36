package parser

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/xuri/excelize/v2"
)

// ExcelWorkbook reads .xlsx/.xlsm workbooks through excelize.
type ExcelWorkbook struct {
	f          *excelize.File
	date1904   bool
	printAreas map[string][]models.CellRange
}

// OpenExcel opens an .xlsx or .xlsm file.
func OpenExcel(path string) (*ExcelWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewExtractionError("", "workbook", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	return NewExcelWorkbook(f), nil
}

// NewExcelWorkbook wraps an already opened excelize file.
func NewExcelWorkbook(f *excelize.File) *ExcelWorkbook {
	w := &ExcelWorkbook{f: f}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		w.date1904 = *props.Date1904
	}
	return w
}

// SheetNames returns sheet names in workbook order.
func (w *ExcelWorkbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Grid extracts the full typed grid of a sheet.
func (w *ExcelWorkbook) Grid(sheetName string) (models.Grid, error) {
	if !slices.Contains(w.f.GetSheetList(), sheetName) {
		return nil, sheetNotFound(sheetName)
	}
	grid, err := ExtractGrid(w.f, sheetName, w.date1904)
	if err != nil {
		return nil, NewExtractionError(sheetName, "grid", err)
	}
	return grid, nil
}

// Close closes the underlying file.
func (w *ExcelWorkbook) Close() error {
	return w.f.Close()
}

// ExtractGrid extracts a sheet as a rectangular grid of typed cells.
// Rows are padded to the sheet width; merged ranges keep their value in the
// top-left cell only.
func ExtractGrid(f *excelize.File, sheetName string, date1904 bool) (models.Grid, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	dateStyles := make(map[int]bool)
	grid := make(models.Grid, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		out := make(models.Row, width)

		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				cellType = excelize.CellTypeUnset
			}
			isDate := cellType == excelize.CellTypeDate
			if !isDate && cellType != excelize.CellTypeSharedString && cellType != excelize.CellTypeInlineString {
				isDate = hasDateStyle(f, sheetName, cellName, dateStyles)
			}
			out[colIdx] = cellValue(raw, cellType, isDate, date1904)
		}
		grid[rowIdx] = out
	}

	return grid, nil
}

// cellValue converts a raw excelize value into a typed cell.
func cellValue(raw string, cellType excelize.CellType, isDate, date1904 bool) models.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return models.Text(raw)
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "true"))
	}

	if n, ok := models.ParseNumber(raw); ok {
		if isDate {
			if t, err := excelize.ExcelDateToTime(n, date1904); err == nil {
				return models.DateTime(t)
			}
		}
		return models.Number(n)
	}
	if cellType == excelize.CellTypeDate {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return models.DateTime(t.UTC())
		}
	}
	return models.Text(raw)
}

// parseValue types a plain string value: numbers become numeric cells,
// anything else stays text.
func parseValue(s string) models.Cell {
	if s == "" {
		return models.Empty()
	}
	if n, ok := models.ParseNumber(s); ok && strings.TrimSpace(s) == s {
		return models.Number(n)
	}
	return models.Text(s)
}

// hasDateStyle reports whether the cell's number format renders a date or time.
func hasDateStyle(f *excelize.File, sheetName, cellName string, cache map[int]bool) bool {
	styleID, err := f.GetCellStyle(sheetName, cellName)
	if err != nil || styleID == 0 {
		return false
	}
	if v, ok := cache[styleID]; ok {
		return v
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		cache[styleID] = false
		return false
	}
	custom := ""
	if style.CustomNumFmt != nil {
		custom = *style.CustomNumFmt
	}
	v := isDateNumFmt(style.NumFmt, custom)
	cache[styleID] = v
	return v
}

// isDateNumFmt classifies built-in and custom number formats.
func isDateNumFmt(numFmt int, custom string) bool {
	switch {
	case numFmt >= 14 && numFmt <= 22,
		numFmt >= 27 && numFmt <= 36,
		numFmt >= 45 && numFmt <= 47,
		numFmt >= 50 && numFmt <= 58:
		return true
	}
	if custom == "" {
		return false
	}

	// Drop quoted literals and bracketed sections ([Red], [$-409]) before looking for tokens.
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, r := range strings.ToLower(custom) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case inQuote:
		case r == '[':
			inBracket = true
		case r == ']':
			inBracket = false
		case inBracket:
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.ContainsAny(cleaned, "0#?") && !strings.ContainsAny(cleaned, "ydhs") {
		return false
	}
	return strings.ContainsAny(cleaned, "yd") || strings.Contains(cleaned, "h:") || strings.Contains(cleaned, "mm:ss")
}
