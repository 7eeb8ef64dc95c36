package models

// SheetSummary is the detection result for a single sheet.
// Its JSON keys are consumed by AI payload construction and must stay stable.
type SheetSummary struct {
	// SheetName is the sheet name.
	SheetName string `json:"sheet_name"`
	// RowCount is the number of grid rows.
	RowCount int `json:"row_count"`
	// ColCount is the width of the widest grid row.
	ColCount int `json:"col_count"`
	// HeaderBlocks are header candidate blocks ordered by row.
	HeaderBlocks []HeaderCandidateBlock `json:"header_blocks"`
	// TableBlocks are table candidate blocks ordered by row.
	TableBlocks []TableCandidateBlock `json:"table_blocks"`
}
