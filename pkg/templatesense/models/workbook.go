package models

// WorkbookSummary holds sheet summaries for every sheet of a workbook.
type WorkbookSummary struct {
	// RunID identifies the summarization run.
	RunID string `json:"run_id"`
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets are the sheet summaries in workbook order.
	Sheets []SheetSummary `json:"sheets"`
}

// Sheet returns the summary for the named sheet.
func (w *WorkbookSummary) Sheet(name string) (SheetSummary, bool) {
	for _, s := range w.Sheets {
		if s.SheetName == name {
			return s, true
		}
	}
	return SheetSummary{}, false
}
