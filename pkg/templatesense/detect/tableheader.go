package detect

import "github.com/ukaji3/templatesense-go/pkg/templatesense/models"

// Table header row patterns.
const (
	PatternFirstRowTextDense     = "first_row_text_dense"
	PatternPrecedingRowTextDense = "preceding_row_text_dense"
)

// DetectTableHeaderRow looks for the column-header row of a table block:
// first the block's own first row, then the row directly above it.
// It returns nil when neither scores at least minScore.
func DetectTableHeaderRow(grid models.Grid, block models.TableCandidateBlock, minScore float64) *models.TableHeaderRow {
	candidates := []struct {
		row     int
		pattern string
	}{
		{block.RowStart, PatternFirstRowTextDense},
		{block.RowStart - 1, PatternPrecedingRowTextDense},
	}

	for _, c := range candidates {
		if c.row < 1 || c.row > len(grid) {
			continue
		}
		values := rowSlice(grid, c.row, block.ColStart, block.ColEnd)
		next := rowSlice(grid, c.row+1, block.ColStart, block.ColEnd)
		score := scoreTableHeaderRow(values, next)
		componentLogger().Debug("scored table header row", "row", c.row, "score", score, "pattern", c.pattern)
		if score >= minScore {
			return &models.TableHeaderRow{
				RowIndex:        c.row,
				ColStart:        block.ColStart,
				ColEnd:          block.ColEnd,
				Values:          values,
				Score:           score,
				DetectedPattern: c.pattern,
			}
		}
	}
	return nil
}

// scoreTableHeaderRow favours rows of short text labels spanning most of the
// table width and followed by a more numeric row.
func scoreTableHeaderRow(values, next []models.Cell) float64 {
	header := measureRow(values)
	if header.nonEmpty == 0 {
		return 0
	}

	score := 0.0
	textRatio := float64(header.text) / float64(header.nonEmpty)
	switch {
	case textRatio >= 0.8:
		score += 0.4
	case textRatio >= 0.5:
		score += 0.2
	}

	switch coverage := header.cellDensity(); {
	case coverage >= 0.7:
		score += 0.3
	case coverage >= 0.4:
		score += 0.1
	}

	if header.keyValue == 0 {
		score += 0.1
	}

	below := measureRow(next)
	if below.nonEmpty > 0 && below.numericDensity() > header.numericDensity() {
		score += 0.2
	}

	return clamp01(score)
}

// rowSlice returns the cells of row between colStart and colEnd inclusive,
// padding with empty cells past the end of a ragged row.
func rowSlice(grid models.Grid, row, colStart, colEnd int) []models.Cell {
	if colEnd < colStart {
		return nil
	}
	out := make([]models.Cell, 0, colEnd-colStart+1)
	for col := colStart; col <= colEnd; col++ {
		out = append(out, grid.At(row, col))
	}
	return out
}
