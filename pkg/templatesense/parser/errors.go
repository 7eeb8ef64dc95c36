package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the file extension is not a supported spreadsheet format.
var ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")

// ErrInvalidFormat indicates the file could not be parsed as a spreadsheet.
var ErrInvalidFormat = errors.New("invalid spreadsheet file")

// ErrSheetNotFound indicates the requested sheet does not exist.
var ErrSheetNotFound = errors.New("sheet does not exist")

// ExtractionError represents an error while reading a workbook.
type ExtractionError struct {
	SheetName string
	Component string // "workbook", "sheet", "grid"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}

func sheetNotFound(sheetName string) error {
	return NewExtractionError(sheetName, "sheet", ErrSheetNotFound)
}
