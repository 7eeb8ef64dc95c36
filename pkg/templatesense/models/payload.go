package models

// AIHeaderCandidate is a single header field sent for semantic classification.
type AIHeaderCandidate struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Label string  `json:"label"`
	Value Cell    `json:"value"`
	Score float64 `json:"score"`
}

// AITableHeaderCell is one column label of a table header row.
type AITableHeaderCell struct {
	// Col is the absolute column (1-based).
	Col   int     `json:"col"`
	Value Cell    `json:"value"`
	Score float64 `json:"score"`
}

// AITableHeaderInfo describes a detected table header row.
type AITableHeaderInfo struct {
	RowIndex        int                 `json:"row_index"`
	Cells           []AITableHeaderCell `json:"cells"`
	DetectedPattern string              `json:"detected_pattern"`
}

// AITableCandidate is a table with its header and a sample of data rows.
type AITableCandidate struct {
	StartRow  int                `json:"start_row"`
	EndRow    int                `json:"end_row"`
	StartCol  int                `json:"start_col"`
	EndCol    int                `json:"end_col"`
	HeaderRow *AITableHeaderInfo `json:"header_row"`
	// SampleDataRows are the first data rows as a dense array, header excluded.
	SampleDataRows [][]Cell `json:"sample_data_rows"`
	// TotalDataRows counts every data row of the table.
	TotalDataRows   int     `json:"total_data_rows"`
	Score           float64 `json:"score"`
	DetectedPattern string  `json:"detected_pattern"`
}

// AIPayload is the provider-agnostic request body for template classification.
type AIPayload struct {
	SheetName        string              `json:"sheet_name"`
	HeaderCandidates []AIHeaderCandidate `json:"header_candidates"`
	TableCandidates  []AITableCandidate  `json:"table_candidates"`
	FieldDictionary  map[string][]string `json:"field_dictionary"`
}
