package templatesense

import (
	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = parser.ErrFileNotFound

// ErrUnsupportedFormat indicates the file is not .xlsx, .xlsm or .xls.
var ErrUnsupportedFormat = parser.ErrUnsupportedFormat

// ErrInvalidFormat indicates the input file could not be parsed.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrSheetNotFound indicates a requested sheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrInvalidParameter indicates an out-of-range detection parameter.
var ErrInvalidParameter = detect.ErrInvalidParameter

// ExtractionError represents an error while reading a workbook.
type ExtractionError = parser.ExtractionError

// ValidationError reports a rejected detection parameter.
type ValidationError = detect.ValidationError

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return parser.NewExtractionError(sheetName, component, err)
}
