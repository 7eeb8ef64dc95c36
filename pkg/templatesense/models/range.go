package models

// CellRange is a rectangle of cells (1-based, inclusive).
type CellRange struct {
	RowStart int `json:"row_start"`
	RowEnd   int `json:"row_end"`
	ColStart int `json:"col_start"`
	ColEnd   int `json:"col_end"`
}

// Contains reports whether (row, col) lies inside the range.
func (r CellRange) Contains(row, col int) bool {
	return row >= r.RowStart && row <= r.RowEnd && col >= r.ColStart && col <= r.ColEnd
}

// Clip returns a copy of the grid in which every cell outside all of the
// given ranges is empty. Coordinates are unchanged, so blocks found in the
// clipped grid still point at the original sheet. Trailing rows past the last
// range are dropped. With no ranges the grid is returned as is.
func (g Grid) Clip(ranges ...CellRange) Grid {
	if len(ranges) == 0 {
		return g
	}
	lastRow := 0
	for _, r := range ranges {
		lastRow = max(lastRow, r.RowEnd)
	}
	rows := min(len(g), lastRow)

	out := make(Grid, rows)
	for i := 0; i < rows; i++ {
		src := g[i]
		row := make(Row, len(src))
		for j, c := range src {
			for _, r := range ranges {
				if r.Contains(i+1, j+1) {
					row[j] = c
					break
				}
			}
		}
		out[i] = row
	}
	return out
}
