package models

import "time"

// Row is one spreadsheet row.
type Row []Cell

// Grid is a row-major sheet. Grid[i] is spreadsheet row i+1; rows may be ragged.
type Grid []Row

// RowCount returns the number of rows.
func (g Grid) RowCount() int {
	return len(g)
}

// ColCount returns the length of the longest row.
func (g Grid) ColCount() int {
	cols := 0
	for _, row := range g {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// At returns the cell at 1-based (row, col), or an empty cell when out of range.
func (g Grid) At(row, col int) Cell {
	if row < 1 || row > len(g) {
		return Empty()
	}
	r := g[row-1]
	if col < 1 || col > len(r) {
		return Empty()
	}
	return r[col-1]
}

// NonEmpty returns the non-empty cells of the row.
func (r Row) NonEmpty() []Cell {
	var cells []Cell
	for _, c := range r {
		if !c.IsEmpty() {
			cells = append(cells, c)
		}
	}
	return cells
}

// IsEmpty reports whether every cell in the row is empty.
func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// TextRow builds a row from plain Go values. Strings become text, numeric
// types become numbers, bools become booleans and nil becomes empty.
// It is intended for fixtures and in-memory grids.
func TextRow(values ...any) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = CellOf(v)
	}
	return row
}

// CellOf converts a plain Go value into a Cell.
func CellOf(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Empty()
	case Cell:
		return x
	case string:
		return Text(x)
	case bool:
		return Bool(x)
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	case time.Time:
		return DateTime(x)
	default:
		return Empty()
	}
}
