// Package payload converts sheet summaries into the provider-agnostic
// request body used for semantic field classification.
package payload

import (
	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/internal/schema"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/detect"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/dictionary"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

// DefaultMaxSampleRows is the number of data rows sampled per table.
const DefaultMaxSampleRows = 5

// Build converts a sheet summary and field dictionary into an AI payload.
// Header candidates are the label/value pairs of every header block, scored
// with their block's score. Each table carries its header cells and up to
// maxSampleRows dense data rows, header row excluded.
func Build(summary models.SheetSummary, dict dictionary.Dictionary, maxSampleRows int) (*models.AIPayload, error) {
	if maxSampleRows < 1 {
		return nil, &detect.ValidationError{Param: "max_sample_rows", Value: maxSampleRows, Reason: ">= 1"}
	}

	log := logger.For("payload")
	log.Info("building payload", "sheet", summary.SheetName, "max_sample_rows", maxSampleRows)

	headers := headerCandidates(summary.HeaderBlocks)
	tables := make([]models.AITableCandidate, 0, len(summary.TableBlocks))
	for _, block := range summary.TableBlocks {
		tables = append(tables, tableCandidate(block, maxSampleRows))
	}

	fields := make(map[string][]string, len(dict))
	for k, v := range dict {
		fields[k] = append([]string(nil), v...)
	}

	log.Info("payload built", "sheet", summary.SheetName, "header_candidates", len(headers), "table_candidates", len(tables))

	return &models.AIPayload{
		SheetName:        summary.SheetName,
		HeaderCandidates: headers,
		TableCandidates:  tables,
		FieldDictionary:  fields,
	}, nil
}

func headerCandidates(blocks []models.HeaderCandidateBlock) []models.AIHeaderCandidate {
	candidates := []models.AIHeaderCandidate{}
	for _, block := range blocks {
		for _, pair := range block.LabelValuePairs {
			candidates = append(candidates, models.AIHeaderCandidate{
				Row:   pair.Row,
				Col:   pair.Col,
				Label: pair.Label,
				Value: pair.Value,
				Score: block.Score,
			})
		}
	}
	logger.For("payload").Debug("converted header blocks", "blocks", len(blocks), "candidates", len(candidates))
	return candidates
}

func headerInfo(h *models.TableHeaderRow) *models.AITableHeaderInfo {
	if h == nil {
		return nil
	}
	cells := make([]models.AITableHeaderCell, len(h.Values))
	for i, v := range h.Values {
		cells[i] = models.AITableHeaderCell{Col: h.ColStart + i, Value: v, Score: h.Score}
	}
	return &models.AITableHeaderInfo{
		RowIndex:        h.RowIndex,
		Cells:           cells,
		DetectedPattern: h.DetectedPattern,
	}
}

func tableCandidate(block models.TableCandidateBlock, maxSampleRows int) models.AITableCandidate {
	header := headerInfo(block.HeaderRow)
	headerRow := 0
	if header != nil {
		headerRow = header.RowIndex
	}
	samples, total := sampleRows(block, headerRow, maxSampleRows)

	return models.AITableCandidate{
		StartRow:        block.RowStart,
		EndRow:          block.RowEnd,
		StartCol:        block.ColStart,
		EndCol:          block.ColEnd,
		HeaderRow:       header,
		SampleDataRows:  samples,
		TotalDataRows:   total,
		Score:           block.Score,
		DetectedPattern: block.DetectedPattern,
	}
}

type cellKey struct{ row, col int }

// sampleRows densifies the first maxRows data rows of a table block.
// headerRow is skipped when it lies inside the block; 0 means no header.
func sampleRows(block models.TableCandidateBlock, headerRow, maxRows int) ([][]models.Cell, int) {
	sparse := make(map[cellKey]models.Cell, len(block.Content))
	for _, c := range block.Content {
		sparse[cellKey{c.Row, c.Col}] = c.Value
	}

	var dataRows []int
	for r := block.RowStart; r <= block.RowEnd; r++ {
		if r == headerRow {
			continue
		}
		dataRows = append(dataRows, r)
	}

	n := min(len(dataRows), maxRows)
	samples := make([][]models.Cell, 0, n)
	for _, r := range dataRows[:n] {
		row := make([]models.Cell, 0, block.ColEnd-block.ColStart+1)
		for c := block.ColStart; c <= block.ColEnd; c++ {
			row = append(row, sparse[cellKey{r, c}])
		}
		samples = append(samples, row)
	}

	logger.For("payload").Debug("sampled table rows",
		"row_start", block.RowStart,
		"row_end", block.RowEnd,
		"samples", len(samples),
		"total_data_rows", len(dataRows),
	)
	return samples, len(dataRows)
}

// Schema returns the JSON Schema of a serialized AIPayload.
func Schema() map[string]any {
	value := map[string]any{"type": []string{"string", "number", "boolean", "null"}}
	score := map[string]any{"type": "number", "minimum": 0.0, "maximum": 1.0}
	index := map[string]any{"type": "integer", "minimum": 1}

	headerCandidate := map[string]any{
		"type":     "object",
		"required": []string{"row", "col", "label", "value", "score"},
		"properties": map[string]any{
			"row":   index,
			"col":   index,
			"label": map[string]any{"type": "string", "minLength": 1},
			"value": value,
			"score": score,
		},
	}
	headerInfo := map[string]any{
		"type":     []string{"object", "null"},
		"required": []string{"row_index", "cells", "detected_pattern"},
		"properties": map[string]any{
			"row_index": index,
			"cells": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"col", "value", "score"},
					"properties": map[string]any{
						"col":   index,
						"value": value,
						"score": score,
					},
				},
			},
			"detected_pattern": map[string]any{"type": "string"},
		},
	}
	tableCandidate := map[string]any{
		"type": "object",
		"required": []string{
			"start_row", "end_row", "start_col", "end_col", "header_row",
			"sample_data_rows", "total_data_rows", "score", "detected_pattern",
		},
		"properties": map[string]any{
			"start_row":  index,
			"end_row":    index,
			"start_col":  index,
			"end_col":    index,
			"header_row": headerInfo,
			"sample_data_rows": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "array", "items": value},
			},
			"total_data_rows":  map[string]any{"type": "integer", "minimum": 0},
			"score":            score,
			"detected_pattern": map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":     "object",
		"required": []string{"sheet_name", "header_candidates", "table_candidates", "field_dictionary"},
		"properties": map[string]any{
			"sheet_name":        map[string]any{"type": "string"},
			"header_candidates": map[string]any{"type": "array", "items": headerCandidate},
			"table_candidates":  map[string]any{"type": "array", "items": tableCandidate},
			"field_dictionary":  dictionary.Schema(),
		},
	}
}

// Validate checks the JSON form of p against Schema.
func Validate(p *models.AIPayload) error {
	return schema.ValidateValue(Schema(), p)
}
