package parser

import (
	"strings"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/xuri/excelize/v2"
)

// PrintAreaProvider is implemented by workbooks that know their print areas.
type PrintAreaProvider interface {
	// PrintAreas returns the print areas defined for a sheet, if any.
	PrintAreas(sheetName string) []models.CellRange
}

// ExtractPrintAreas reads the _xlnm.Print_Area defined names of a workbook.
// Returns a map of sheet name to print areas.
func ExtractPrintAreas(f *excelize.File) map[string][]models.CellRange {
	result := make(map[string][]models.CellRange)
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheetName, areas := parsePrintAreaReference(dn.RefersTo)
		if sheetName == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheetName = dn.Scope
		}
		if sheetName != "" && len(areas) > 0 {
			result[sheetName] = append(result[sheetName], areas...)
		}
	}
	return result
}

// parsePrintAreaReference parses 'Sheet Name'!$A$1:$D$10 or a comma
// separated list of such references.
func parsePrintAreaReference(ref string) (string, []models.CellRange) {
	var areas []models.CellRange
	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rangeStr := part
		if idx := strings.LastIndex(part, "!"); idx >= 0 {
			sheet := strings.Trim(part[:idx], "'")
			if sheetName == "" {
				sheetName = strings.ReplaceAll(sheet, "''", "'")
			}
			rangeStr = part[idx+1:]
		}
		if area, ok := parseRange(rangeStr); ok {
			areas = append(areas, area)
		}
	}
	return sheetName, areas
}

// parseRange parses $A$1:$D$10. A single cell reference is a 1x1 range.
func parseRange(rangeStr string) (models.CellRange, bool) {
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")
	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.CellRange{}, false
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.CellRange{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.CellRange{}, false
	}

	return models.CellRange{
		RowStart: min(startRow, endRow),
		RowEnd:   max(startRow, endRow),
		ColStart: min(startCol, endCol),
		ColEnd:   max(startCol, endCol),
	}, true
}

// PrintAreas returns the print areas defined for a sheet.
func (w *ExcelWorkbook) PrintAreas(sheetName string) []models.CellRange {
	if w.printAreas == nil {
		w.printAreas = ExtractPrintAreas(w.f)
	}
	return w.printAreas[sheetName]
}

// SetPrintArea records print areas for a sheet of an in-memory workbook.
func (w *MemoryWorkbook) SetPrintArea(sheetName string, areas ...models.CellRange) *MemoryWorkbook {
	if w.printAreas == nil {
		w.printAreas = make(map[string][]models.CellRange)
	}
	w.printAreas[sheetName] = areas
	return w
}

// PrintAreas returns the print areas recorded with SetPrintArea.
func (w *MemoryWorkbook) PrintAreas(sheetName string) []models.CellRange {
	return w.printAreas[sheetName]
}
