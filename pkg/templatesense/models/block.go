package models

import (
	"encoding/json"
	"fmt"
)

// ScoredRow is a row that passed a row scorer.
type ScoredRow struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Score is the row score in [0, 1].
	Score float64 `json:"score"`
}

// ContentCell is a non-empty cell inside a block. It encodes as [row, col, value].
type ContentCell struct {
	// Row is the row index (1-based).
	Row int
	// Col is the column index (1-based).
	Col int
	// Value is the cell value.
	Value Cell
}

// MarshalJSON encodes the cell as a [row, col, value] triple.
func (c ContentCell) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Row, c.Col, c.Value})
}

// UnmarshalJSON decodes a [row, col, value] triple.
func (c *ContentCell) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 3 {
		return fmt.Errorf("content cell: expected 3 elements, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &c.Row); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[1], &c.Col); err != nil {
		return err
	}
	return json.Unmarshal(raw[2], &c.Value)
}

// LabelValuePair is a label and its value found inside a header block.
type LabelValuePair struct {
	// Label is the label text with separators trimmed.
	Label string `json:"label"`
	// Value is the associated value.
	Value Cell `json:"value"`
	// Row is the row of the label cell (1-based).
	Row int `json:"row"`
	// Col is the column of the label cell (1-based).
	Col int `json:"col"`
}

// HeaderCandidateBlock is a rectangular region likely holding label:value metadata.
type HeaderCandidateBlock struct {
	// RowStart is the first row (1-based).
	RowStart int `json:"row_start"`
	// RowEnd is the last row (1-based, inclusive).
	RowEnd int `json:"row_end"`
	// ColStart is the first column (1-based).
	ColStart int `json:"col_start"`
	// ColEnd is the last column (1-based, inclusive).
	ColEnd int `json:"col_end"`
	// Content holds every non-empty cell inside the block rows.
	Content []ContentCell `json:"content"`
	// Score is the mean score of the rows that formed the block.
	Score float64 `json:"score"`
	// DetectedPattern names the dominant signal.
	DetectedPattern string `json:"detected_pattern"`
	// LabelValuePairs are the pairs parsed from Content.
	LabelValuePairs []LabelValuePair `json:"label_value_pairs"`
}

// TableHeaderRow is the column-header row detected for a table block.
type TableHeaderRow struct {
	// RowIndex is the header row (1-based).
	RowIndex int `json:"row_index"`
	// ColStart is the first column of Values (1-based).
	ColStart int `json:"col_start"`
	// ColEnd is the last column of Values (1-based, inclusive).
	ColEnd int `json:"col_end"`
	// Values are the header cells from ColStart to ColEnd, empty cells included.
	Values []Cell `json:"values"`
	// Score is the header row score in [0, 1].
	Score float64 `json:"score"`
	// DetectedPattern names how the header row was found.
	DetectedPattern string `json:"detected_pattern"`
}

// TableCandidateBlock is a rectangular region likely holding line-item data.
type TableCandidateBlock struct {
	// RowStart is the first data row (1-based).
	RowStart int `json:"row_start"`
	// RowEnd is the last data row (1-based, inclusive).
	RowEnd int `json:"row_end"`
	// ColStart is the first column (1-based).
	ColStart int `json:"col_start"`
	// ColEnd is the last column (1-based, inclusive).
	ColEnd int `json:"col_end"`
	// Content holds every non-empty cell inside the block rows.
	Content []ContentCell `json:"content"`
	// Score is the mean score of the rows that formed the block.
	Score float64 `json:"score"`
	// DetectedPattern names the dominant column layout.
	DetectedPattern string `json:"detected_pattern"`
	// HeaderRow is the column-header row above the block, nil when none scored high enough.
	HeaderRow *TableHeaderRow `json:"header_row"`
}
