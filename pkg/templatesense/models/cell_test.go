package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func TestCellIsNumeric(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected bool
	}{
		{Number(42), true},
		{Text("123.45"), true},
		{Text(" -7 "), true},
		{Text("1e3"), true},
		{Text("12,345"), false},
		{Text("NaN"), false},
		{Text("Inf"), false},
		{Text("abc"), false},
		{Text(""), false},
		{Bool(true), false},
		{DateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), false},
		{Empty(), false},
	}

	for _, tt := range tests {
		if got := tt.cell.IsNumeric(); got != tt.expected {
			t.Errorf("IsNumeric(%#v) = %v, expected %v", tt.cell, got, tt.expected)
		}
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected string
	}{
		{Text("Invoice"), "Invoice"},
		{Number(100), "100"},
		{Number(200.5), "200.5"},
		{Bool(false), "false"},
		{DateTime(time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)), "2024-03-15T09:30:00"},
		{Empty(), ""},
	}

	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.expected {
			t.Errorf("String(%#v) = %q, expected %q", tt.cell, got, tt.expected)
		}
	}
}

func TestCellIsEmpty(t *testing.T) {
	if !Empty().IsEmpty() || !Text("").IsEmpty() {
		t.Error("Expected empty kinds to be empty")
	}
	if Text(" ").IsEmpty() {
		t.Error("Whitespace text should not be empty")
	}
	if Number(0).IsEmpty() || Bool(false).IsEmpty() {
		t.Error("Zero values of typed cells should not be empty")
	}
}

func TestCellJSON(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected string
	}{
		{Text("ABC"), `"ABC"`},
		{Number(12.5), `12.5`},
		{Number(math.NaN()), `null`},
		{Bool(true), `true`},
		{DateTime(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), `"2024-01-01T00:00:00"`},
		{Empty(), `null`},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.cell)
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		if string(data) != tt.expected {
			t.Errorf("Marshal(%#v) = %s, expected %s", tt.cell, data, tt.expected)
		}
	}

	var decoded []Cell
	if err := json.Unmarshal([]byte(`["x", 3, false, null]`), &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	expected := []Cell{Text("x"), Number(3), Bool(false), Empty()}
	for i := range expected {
		if decoded[i] != expected[i] {
			t.Errorf("decoded[%d] = %#v, expected %#v", i, decoded[i], expected[i])
		}
	}
}

func TestContentCellJSON(t *testing.T) {
	data, err := json.Marshal(ContentCell{Row: 2, Col: 3, Value: Text("Date: 2024-01-01")})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `[2,3,"Date: 2024-01-01"]` {
		t.Errorf("got %s", data)
	}

	var c ContentCell
	if err := json.Unmarshal([]byte(`[4,1,99]`), &c); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.Row != 4 || c.Col != 1 || c.Value != Number(99) {
		t.Errorf("got %#v", c)
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &c); err == nil {
		t.Error("Expected error for short triple")
	}
}

func TestGridAt(t *testing.T) {
	g := Grid{
		TextRow("A", "B", "C"),
		TextRow(1),
	}

	if g.RowCount() != 2 || g.ColCount() != 3 {
		t.Errorf("got %dx%d, expected 2x3", g.RowCount(), g.ColCount())
	}
	if got := g.At(1, 3); got != Text("C") {
		t.Errorf("At(1,3) = %#v", got)
	}
	if got := g.At(2, 3); !got.IsEmpty() {
		t.Errorf("Expected ragged cell to be empty, got %#v", got)
	}
	if got := g.At(0, 1); !got.IsEmpty() {
		t.Errorf("Expected out-of-range cell to be empty, got %#v", got)
	}
	if got := g.At(3, 1); !got.IsEmpty() {
		t.Errorf("Expected out-of-range cell to be empty, got %#v", got)
	}
}

func TestParseNumberExtremeExponents(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"1e400", 0, false},
		{"-1e400", 0, false},
		{"9e308", 0, false},
		{"1e10000000", 0, false},
		{"1e999999999", 0, false},
		{"1.5e308", 1.5e308, true},
		{"1e-10000000", 0, true},
		{"0e10000000", 0, true},
		{"2.5e-3", 0.0025, true},
	}

	start := time.Now()
	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		if ok != tt.ok || got != tt.expected {
			t.Errorf("ParseNumber(%q) = (%v, %v), expected (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("parsing huge exponents took %v", elapsed)
	}

	// Overflowing text stays text and keeps its value.
	c := Text("1e400")
	if c.IsNumeric() {
		t.Error("1e400 should not be numeric")
	}
	data, err := json.Marshal(c)
	if err != nil || string(data) != `"1e400"` {
		t.Errorf("Marshal = %s, %v", data, err)
	}
}
