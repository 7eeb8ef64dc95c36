// Package models defines data structures for template structure extraction.
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	// KindEmpty is a blank or null cell.
	KindEmpty CellKind = iota
	// KindText is a string cell.
	KindText
	// KindNumber is a numeric cell.
	KindNumber
	// KindBool is a boolean cell.
	KindBool
	// KindDateTime is a date or date-time cell.
	KindDateTime
)

// String returns the kind name.
func (k CellKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDateTime:
		return "datetime"
	default:
		return "empty"
	}
}

// dateTimeLayout is used for datetime cells in JSON and in String().
const dateTimeLayout = "2006-01-02T15:04:05"

// Cell is a single spreadsheet value. Only the field matching Kind is meaningful.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// Empty returns an empty cell.
func Empty() Cell { return Cell{} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Kind: KindText, Text: s} }

// Number returns a numeric cell.
func Number(f float64) Cell { return Cell{Kind: KindNumber, Number: f} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// DateTime returns a date-time cell.
func DateTime(t time.Time) Cell { return Cell{Kind: KindDateTime, Time: t} }

// IsEmpty reports whether the cell is blank. Text "" counts as blank;
// whitespace-only text does not.
func (c Cell) IsEmpty() bool {
	return c.Kind == KindEmpty || (c.Kind == KindText && c.Text == "")
}

// IsText reports whether the cell is non-empty text.
func (c Cell) IsText() bool {
	return c.Kind == KindText && c.Text != ""
}

// IsNumeric reports whether the cell is a number or text that parses as one.
// Booleans and dates are never numeric.
func (c Cell) IsNumeric() bool {
	switch c.Kind {
	case KindNumber:
		return true
	case KindText:
		_, ok := ParseNumber(c.Text)
		return ok
	default:
		return false
	}
}

// String returns the textual form used by length and pattern heuristics.
func (c Cell) String() string {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindDateTime:
		return formatTime(c.Time)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value (string, float64, bool, time.Time or nil).
func (c Cell) Value() any {
	switch c.Kind {
	case KindText:
		return c.Text
	case KindNumber:
		return c.Number
	case KindBool:
		return c.Bool
	case KindDateTime:
		return c.Time
	default:
		return nil
	}
}

// MarshalJSON encodes the cell as its primitive value.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case KindText:
		return json.Marshal(c.Text)
	case KindNumber:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(c.Number)
	case KindBool:
		return json.Marshal(c.Bool)
	case KindDateTime:
		return json.Marshal(formatTime(c.Time))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a primitive JSON value. Strings always become text
// cells; date detection is the loader's job.
func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Empty()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Text(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*c = Bool(b)
	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*c = Number(f)
	}
	return nil
}

// Decimal magnitudes (exponent plus coefficient digits) outside this window
// overflow or underflow a float64.
const (
	maxFloatMagnitude = 309
	minFloatMagnitude = -324
)

// ParseNumber parses a trimmed numeric string. NaN and Inf spellings are
// rejected, and so are values too large for a float64. Values too small
// for a float64 parse as 0. The exponent is range-checked before conversion,
// so "1e999999999" costs as much as any other short string.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	if d.IsZero() {
		return 0, true
	}

	magnitude := int64(d.Exponent()) + int64(d.NumDigits())
	switch {
	case magnitude > maxFloatMagnitude:
		return 0, false
	case magnitude < minFloatMagnitude:
		return 0, true
	}

	f, _ := d.Float64()
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func formatTime(t time.Time) string {
	if t.Location() == time.UTC || t.Location() == nil {
		return t.Format(dateTimeLayout)
	}
	return t.Format(time.RFC3339)
}
