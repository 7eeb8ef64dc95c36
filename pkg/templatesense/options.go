// Package templatesense detects header and table candidate blocks in
// spreadsheet invoice templates and summarizes them per sheet.
package templatesense

import (
	"fmt"
	"runtime"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
)

// Options configures sheet summarization.
type Options struct {
	// Header holds header block detection parameters.
	Header detect.HeaderParams
	// Table holds table block detection parameters.
	Table detect.TableParams
	// Sheets restricts summarization to the named sheets, in the given order.
	// Empty means every sheet in workbook order.
	Sheets []string
	// Workers is the number of sheets summarized concurrently.
	// Zero uses GOMAXPROCS.
	Workers int
	// IncludeTableHeaders specifies whether table blocks carry a detected
	// column-header row. If nil, defaults to true.
	IncludeTableHeaders *bool
	// PrintAreaOnly ignores cells outside a sheet's print areas. Sheets
	// without a print area, or workbooks that do not report them, are used whole.
	PrintAreaOnly bool
}

// DefaultOptions returns default summarization options.
func DefaultOptions() Options {
	return Options{
		Header: detect.DefaultHeaderParams(),
		Table:  detect.DefaultTableParams(),
	}
}

// ShouldIncludeTableHeaders returns whether to detect table header rows.
func (o Options) ShouldIncludeTableHeaders() bool {
	if o.IncludeTableHeaders != nil {
		return *o.IncludeTableHeaders
	}
	return true
}

// WorkerCount returns the effective number of concurrent sheet workers.
func (o Options) WorkerCount() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// Validate checks every parameter before any sheet is read.
func (o Options) Validate() error {
	if err := o.Header.Validate(); err != nil {
		return fmt.Errorf("header options: %w", err)
	}
	if err := o.Table.Validate(); err != nil {
		return fmt.Errorf("table options: %w", err)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers: %w", &detect.ValidationError{Param: "workers", Value: o.Workers, Reason: ">= 0"})
	}
	return nil
}
