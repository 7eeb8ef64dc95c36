// Package parser provides spreadsheet loading utilities.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

// SupportedExtensions lists the file extensions Open accepts.
var SupportedExtensions = []string{".xlsx", ".xlsm", ".xls"}

// Workbook is a source of sheet grids. Implementations own their file handle.
type Workbook interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// Grid returns the full grid of a sheet. A missing sheet yields an
	// *ExtractionError wrapping ErrSheetNotFound.
	Grid(sheetName string) (models.Grid, error)
	// Close releases the underlying file.
	Close() error
}

// Open opens a spreadsheet file, choosing the reader by extension.
func Open(path string) (Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, NewExtractionError("", "workbook", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return nil, NewExtractionError("", "workbook", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return OpenExcel(path)
	case ".xls":
		return OpenXLS(path)
	default:
		return nil, NewExtractionError("", "workbook",
			fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(SupportedExtensions, ", ")))
	}
}

// IsSupported reports whether the path has a supported extension.
func IsSupported(path string) bool {
	return slices.Contains(SupportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// MemoryWorkbook is a Workbook backed by in-memory grids.
type MemoryWorkbook struct {
	names      []string
	sheets     map[string]models.Grid
	printAreas map[string][]models.CellRange
}

// NewMemoryWorkbook creates an empty in-memory workbook.
func NewMemoryWorkbook() *MemoryWorkbook {
	return &MemoryWorkbook{sheets: make(map[string]models.Grid)}
}

// AddSheet adds or replaces a sheet. New sheets are appended to the sheet order.
func (w *MemoryWorkbook) AddSheet(name string, grid models.Grid) *MemoryWorkbook {
	if _, ok := w.sheets[name]; !ok {
		w.names = append(w.names, name)
	}
	w.sheets[name] = grid
	return w
}

// SheetNames returns sheet names in insertion order.
func (w *MemoryWorkbook) SheetNames() []string {
	return slices.Clone(w.names)
}

// Grid returns the grid stored for the sheet.
func (w *MemoryWorkbook) Grid(sheetName string) (models.Grid, error) {
	g, ok := w.sheets[sheetName]
	if !ok {
		return nil, sheetNotFound(sheetName)
	}
	return g, nil
}

// Close is a no-op.
func (w *MemoryWorkbook) Close() error {
	return nil
}
