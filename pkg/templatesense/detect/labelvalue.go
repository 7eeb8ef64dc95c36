package detect

import (
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

type cellPos struct{ row, col int }

// ExtractLabelValuePairs parses a header block's content into label/value
// pairs, row-major. Cells shaped like "Label: value" are split in place.
// A bare text label takes its value from the next non-empty cell to the
// right, or from the cell directly below, when the label ends with a colon
// or is followed by a colon-only cell, the neighbour is a number or date,
// or only the label carries a metadata keyword. A cell used as a value is
// never read as a label, and colon-only cells are never labels.
func ExtractLabelValuePairs(grid models.Grid, block models.HeaderCandidateBlock) []models.LabelValuePair {
	pairs := make([]models.LabelValuePair, 0)
	consumed := make(map[cellPos]bool)

	for _, cc := range block.Content {
		pos := cellPos{cc.Row, cc.Col}
		if consumed[pos] || !isPlainText(cc.Value) || isSeparator(cc.Value) {
			continue
		}

		if isKeyValueCell(cc.Value) {
			if label, value, ok := SplitKeyValue(cc.Value.Text); ok {
				pairs = append(pairs, models.LabelValuePair{
					Label: label,
					Value: models.Text(value),
					Row:   cc.Row,
					Col:   cc.Col,
				})
			}
			continue
		}

		label := strings.TrimSpace(cc.Value.Text)
		if trimLabel(label) == "" {
			continue
		}
		for _, n := range neighbours(grid, block, cc.Row, cc.Col) {
			if consumed[n.cellPos] {
				continue
			}
			value := grid.At(n.row, n.col)
			if !pairsWith(label, value, n.afterSeparator) {
				continue
			}
			consumed[n.cellPos] = true
			pairs = append(pairs, models.LabelValuePair{
				Label: trimLabel(label),
				Value: value,
				Row:   cc.Row,
				Col:   cc.Col,
			})
			break
		}
	}
	return pairs
}

// SplitKeyValue splits "Label: value" at the first colon that follows a
// non-space character, or "Label  value" at the first run of two or more
// spaces. Both sides are trimmed and must be non-empty.
func SplitKeyValue(s string) (label, value string, ok bool) {
	if loc := keyValueColon.FindStringIndex(s); loc != nil {
		match := s[loc[0]:loc[1]]
		_, first := utf8.DecodeRuneInString(match)
		i := strings.IndexAny(match[first:], ":：") + first
		_, size := utf8.DecodeRuneInString(match[i:])
		label, value = s[:loc[0]+i], s[loc[0]+i+size:]
	} else if loc := keyValueSpaces.FindStringIndex(s); loc != nil {
		_, size := utf8.DecodeRuneInString(s[loc[0]:])
		label, value = s[:loc[0]+size], s[loc[0]+size:]
	} else {
		return "", "", false
	}

	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	if label == "" || value == "" {
		return "", "", false
	}
	return label, value, true
}

// neighbour is a candidate value cell. afterSeparator is set when a
// separator-only cell sits between the label and the value.
type neighbour struct {
	cellPos
	afterSeparator bool
}

// neighbours returns the candidate value positions for a bare label: the
// next non-empty cell to the right inside the block, skipping separator
// cells as in "Invoice No | : | 12345", then the cell below.
func neighbours(grid models.Grid, block models.HeaderCandidateBlock, row, col int) []neighbour {
	var out []neighbour
	separated := false
	for c := col + 1; c <= block.ColEnd; c++ {
		v := grid.At(row, c)
		if v.IsEmpty() {
			continue
		}
		if isSeparator(v) {
			separated = true
			continue
		}
		out = append(out, neighbour{cellPos{row, c}, separated})
		break
	}
	if row+1 <= block.RowEnd && !grid.At(row+1, col).IsEmpty() {
		out = append(out, neighbour{cellPos: cellPos{row + 1, col}})
	}
	return out
}

func pairsWith(label string, value models.Cell, afterSeparator bool) bool {
	if value.IsEmpty() || isKeyValueCell(value) || isSeparator(value) {
		return false
	}
	if value.IsText() && hasTrailingColon(strings.TrimSpace(value.Text)) {
		return false
	}
	if afterSeparator || hasTrailingColon(label) {
		return true
	}
	if !isPlainText(value) {
		return true
	}
	return ContainsMetadataKeyword(label) && !hasKeyword(value)
}

// isSeparator reports whether a cell holds nothing but colons.
func isSeparator(c models.Cell) bool {
	if !c.IsText() {
		return false
	}
	t := strings.TrimSpace(c.Text)
	return t != "" && strings.Trim(t, ":：") == ""
}

func hasTrailingColon(s string) bool {
	return strings.HasSuffix(s, ":") || strings.HasSuffix(s, "：")
}

func trimLabel(s string) string {
	s = strings.TrimSuffix(s, ":")
	s = strings.TrimSuffix(s, "：")
	return strings.TrimSpace(s)
}
