package parser

import (
	"fmt"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/xuri/excelize/v2"
)

// UsedRange is the bounding box of non-empty cells (1-based, inclusive).
type UsedRange struct {
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
}

// Ref returns the range in A1 notation (e.g. "B2:D10").
func (r UsedRange) Ref() string {
	start, _ := excelize.CoordinatesToCellName(r.MinCol, r.MinRow)
	end, _ := excelize.CoordinatesToCellName(r.MaxCol, r.MaxRow)
	return fmt.Sprintf("%s:%s", start, end)
}

// GetUsedRange finds the bounding box of non-empty cells in a grid.
// An empty grid reports the single cell A1.
func GetUsedRange(grid models.Grid) UsedRange {
	minRow, maxRow, minCol, maxCol := findDataBounds(grid)
	if minRow < 0 {
		return UsedRange{MinRow: 1, MaxRow: 1, MinCol: 1, MaxCol: 1}
	}
	return UsedRange{MinRow: minRow + 1, MaxRow: maxRow + 1, MinCol: minCol + 1, MaxCol: maxCol + 1}
}

// findDataBounds finds the 0-based bounding box of non-empty cells.
func findDataBounds(grid models.Grid) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range grid {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// CountNonEmptyCells counts non-empty cells within a used range.
func CountNonEmptyCells(grid models.Grid, r UsedRange) int {
	count := 0
	for row := r.MinRow; row <= r.MaxRow && row <= len(grid); row++ {
		for col := r.MinCol; col <= r.MaxCol; col++ {
			if !grid.At(row, col).IsEmpty() {
				count++
			}
		}
	}
	return count
}

// NonEmptyRows returns the rows that contain at least one non-empty cell.
func NonEmptyRows(grid models.Grid) models.Grid {
	var out models.Grid
	for _, row := range grid {
		if !row.IsEmpty() {
			out = append(out, row)
		}
	}
	return out
}

// NonEmptyColumns drops columns that are empty in every row. Ragged rows are
// padded with empty cells first, so every returned row has the same width.
func NonEmptyColumns(grid models.Grid) models.Grid {
	if len(grid) == 0 {
		return nil
	}
	width := grid.ColCount()

	var keep []int
	for col := 1; col <= width; col++ {
		for row := 1; row <= len(grid); row++ {
			if !grid.At(row, col).IsEmpty() {
				keep = append(keep, col)
				break
			}
		}
	}
	if len(keep) == 0 {
		return nil
	}

	out := make(models.Grid, len(grid))
	for i := range grid {
		r := make(models.Row, len(keep))
		for j, col := range keep {
			r[j] = grid.At(i+1, col)
		}
		out[i] = r
	}
	return out
}
