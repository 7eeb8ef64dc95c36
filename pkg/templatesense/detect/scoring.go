// Package detect finds header and table candidate blocks in a sheet grid
// using field-agnostic structural heuristics.
package detect

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Key/value shapes: "Label: value" (ASCII or full-width colon) or
// "Label  value" separated by two or more spaces. \p{Zs} covers the
// ideographic space used in Japanese templates.
var (
	keyValueColon  = regexp.MustCompile(`[^\s\p{Zs}][\s\p{Zs}]*[:：][\s\p{Zs}]*[^\s\p{Zs}]`)
	keyValueSpaces = regexp.MustCompile(`[^\s\p{Zs}][\s\p{Zs}]{2,}[^\s\p{Zs}]`)
)

// metadataKeywords are invoice metadata terms. Line-item words such as
// item, quantity, price and amount are deliberately absent.
var metadataKeywords = normalizeAll([]string{
	// English
	"invoice", "date", "company", "address", "shipper", "consignee",
	"contact", "phone", "tel", "fax", "email", "e-mail", "number",
	"bill to", "ship to", "reference", "order no", "due",
	// Japanese
	"請求書", "日付", "会社", "住所", "番号", "荷送人", "荷受人",
	"電話", "発行日", "支払", "宛先", "御中",
	// Chinese
	"发票", "日期", "公司", "地址", "电话",
	// Spanish, French, German
	"factura", "fecha", "empresa", "dirección", "facture", "adresse",
	"société", "rechnung", "datum", "firma",
})

func componentLogger() *slog.Logger {
	return logger.For("detect")
}

// normalizeText applies NFKC and Unicode case folding. A new Caser is used
// per call because cases.Caser is not safe for concurrent use.
func normalizeText(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

func normalizeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = normalizeText(w)
	}
	return out
}

// IsKeyValueText reports whether s has a "label separator value" shape.
func IsKeyValueText(s string) bool {
	return keyValueColon.MatchString(s) || keyValueSpaces.MatchString(s)
}

// isKeyValueCell only considers text cells; a datetime rendered as
// "2024-01-01T09:30:00" is not a label.
func isKeyValueCell(c models.Cell) bool {
	return c.IsText() && IsKeyValueText(c.Text)
}

// ContainsMetadataKeyword reports whether s contains a metadata keyword.
func ContainsMetadataKeyword(s string) bool {
	n := normalizeText(s)
	for _, kw := range metadataKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}

func hasKeyword(c models.Cell) bool {
	return c.IsText() && ContainsMetadataKeyword(c.Text)
}

// isPlainText is a text cell that does not parse as a number.
func isPlainText(c models.Cell) bool {
	return c.IsText() && !c.IsNumeric()
}

// isValueLike is a numeric or date cell.
func isValueLike(c models.Cell) bool {
	return c.IsNumeric() || c.Kind == models.KindDateTime
}

// rowStats are the per-row measurements shared by both row scorers.
type rowStats struct {
	total      int
	nonEmpty   int
	numeric    int
	text       int
	dateTime   int
	keyValue   int
	keywords   int
	totalRunes int
	// labelledValues counts keyword labels whose next non-empty cell is a
	// number or date, as in "Invoice Number | 12345".
	labelledValues int
}

func measureRow(row models.Row) rowStats {
	s := rowStats{total: len(row)}
	var prev models.Cell
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		if isValueLike(c) && isPlainText(prev) && hasKeyword(prev) {
			s.labelledValues++
		}
		prev = c
		s.nonEmpty++
		s.totalRunes += utf8.RuneCountInString(c.String())
		switch {
		case c.IsNumeric():
			s.numeric++
		case c.Kind == models.KindDateTime:
			s.dateTime++
		case c.IsText():
			s.text++
		}
		if isKeyValueCell(c) {
			s.keyValue++
		}
		if hasKeyword(c) {
			s.keywords++
		}
	}
	return s
}

func (s rowStats) cellDensity() float64 {
	if s.total == 0 {
		return 0
	}
	return float64(s.nonEmpty) / float64(s.total)
}

func (s rowStats) numericDensity() float64 {
	if s.nonEmpty == 0 {
		return 0
	}
	return float64(s.numeric) / float64(s.nonEmpty)
}

func (s rowStats) keyValueRatio() float64 {
	if s.nonEmpty == 0 {
		return 0
	}
	return float64(s.keyValue) / float64(s.nonEmpty)
}

func (s rowStats) avgCellLength() float64 {
	if s.nonEmpty == 0 {
		return 0
	}
	return float64(s.totalRunes) / float64(s.nonEmpty)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// collectContent returns every non-empty cell in rows rowStart..rowEnd and
// the column range they span. An all-empty range reports columns 1..1.
func collectContent(grid models.Grid, rowStart, rowEnd int) (content []models.ContentCell, colStart, colEnd int) {
	colStart, colEnd = -1, -1
	content = make([]models.ContentCell, 0)
	for r := rowStart; r <= rowEnd && r <= len(grid); r++ {
		for i, c := range grid[r-1] {
			if c.IsEmpty() {
				continue
			}
			col := i + 1
			content = append(content, models.ContentCell{Row: r, Col: col, Value: c})
			if colStart < 0 || col < colStart {
				colStart = col
			}
			if col > colEnd {
				colEnd = col
			}
		}
	}
	if colStart < 0 {
		return content, 1, 1
	}
	return content, colStart, colEnd
}

func meanScore(rows []models.ScoredRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rows {
		sum += r.Score
	}
	return sum / float64(len(rows))
}
