package detect

import (
	"fmt"
	"slices"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

// Header detection patterns.
const (
	PatternKeyValueWithKeywords = "key_value_with_keywords"
	PatternKeyValue             = "key_value_patterns"
	PatternMetadataKeywords     = "metadata_keywords"
	PatternMixedTextNumeric     = "mixed_text_numeric"
	PatternTextCluster          = "text_cluster"
)

// HeaderParams holds parameters for header block detection.
type HeaderParams struct {
	// MinScore is the minimum row score for a header candidate row.
	MinScore float64
	// MaxGap is the number of non-candidate rows allowed between two
	// candidate rows of the same block.
	MaxGap int
}

// DefaultHeaderParams returns default header detection parameters.
func DefaultHeaderParams() HeaderParams {
	return HeaderParams{
		MinScore: 0.5,
		MaxGap:   2,
	}
}

// Validate rejects out-of-range parameters.
func (p HeaderParams) Validate() error {
	if err := validateMinScore("min_score", p.MinScore); err != nil {
		return err
	}
	if p.MaxGap < 0 {
		return &ValidationError{Param: "max_gap", Value: p.MaxGap, Reason: ">= 0"}
	}
	return nil
}

// ScoreHeaderRow scores a row's likelihood of belonging to a label/value
// metadata block. The result is in [0, 1]; empty rows score 0.
func ScoreHeaderRow(row models.Row, rowIndex int) float64 {
	s := measureRow(row)
	if s.nonEmpty == 0 {
		return 0
	}

	score := 0.0
	var signals []string

	kvRatio := s.keyValueRatio()
	switch {
	case kvRatio >= 0.5:
		score += 0.5
		signals = append(signals, "key_value")
	case kvRatio > 0:
		score += 0.3
		signals = append(signals, "some_key_value")
	}

	switch {
	case s.keywords >= 2:
		score += 0.3
		signals = append(signals, "keywords")
	case s.keywords == 1:
		score += 0.2
		signals = append(signals, "keyword")
	}

	switch {
	case s.labelledValues > 0:
		score += 0.3
		signals = append(signals, "labelled_value")
	case s.text > 0 && s.numeric+s.dateTime > 0:
		score += 0.1
		signals = append(signals, "mixed_types")
	}

	density := s.cellDensity()
	if density > 0.8 && s.keyValue == 0 && s.keywords == 0 {
		score -= 0.3
		signals = append(signals, "dense_unlabeled")
	}

	score = clamp01(score)
	componentLogger().Debug("scored header row",
		"row", rowIndex,
		"score", score,
		"signals", signals,
		"density", density,
		"key_value_ratio", kvRatio,
		"keywords", s.keywords,
	)
	return score
}

// ClusterHeaderBlocks groups scored rows into header blocks. Two consecutive
// scored rows a < b share a block when b-a-1 <= maxGap, so rows between them
// that did not score (blank separators, address lines) still belong to it.
// A single isolated row is a valid block.
func ClusterHeaderBlocks(grid models.Grid, scored []models.ScoredRow, maxGap int) []models.HeaderCandidateBlock {
	if len(scored) == 0 {
		return nil
	}

	sorted := slices.Clone(scored)
	slices.SortStableFunc(sorted, func(a, b models.ScoredRow) int { return a.Row - b.Row })

	var blocks []models.HeaderCandidateBlock
	cluster := []models.ScoredRow{sorted[0]}
	for _, r := range sorted[1:] {
		last := cluster[len(cluster)-1].Row
		if r.Row-last-1 <= maxGap {
			cluster = append(cluster, r)
			continue
		}
		blocks = append(blocks, newHeaderBlock(grid, cluster))
		cluster = []models.ScoredRow{r}
	}
	blocks = append(blocks, newHeaderBlock(grid, cluster))

	componentLogger().Info("clustered header blocks", "rows", len(scored), "blocks", len(blocks), "max_gap", maxGap)
	return blocks
}

func newHeaderBlock(grid models.Grid, cluster []models.ScoredRow) models.HeaderCandidateBlock {
	rowStart := cluster[0].Row
	rowEnd := cluster[len(cluster)-1].Row
	content, colStart, colEnd := collectContent(grid, rowStart, rowEnd)

	block := models.HeaderCandidateBlock{
		RowStart:        rowStart,
		RowEnd:          rowEnd,
		ColStart:        colStart,
		ColEnd:          colEnd,
		Content:         content,
		Score:           meanScore(cluster),
		DetectedPattern: headerPattern(content),
	}
	block.LabelValuePairs = ExtractLabelValuePairs(grid, block)
	return block
}

func headerPattern(content []models.ContentCell) string {
	var keyValue, keywords int
	hasText, hasValue := false, false
	for _, c := range content {
		if isKeyValueCell(c.Value) {
			keyValue++
		}
		if hasKeyword(c.Value) {
			keywords++
		}
		if isPlainText(c.Value) {
			hasText = true
		}
		if isValueLike(c.Value) {
			hasValue = true
		}
	}

	switch {
	case keyValue > 0 && keywords > 0:
		return PatternKeyValueWithKeywords
	case keyValue > 0:
		return PatternKeyValue
	case keywords > 0:
		return PatternMetadataKeywords
	case hasText && hasValue:
		return PatternMixedTextNumeric
	default:
		return PatternTextCluster
	}
}

// DetectHeaderBlocks scans the whole grid for header candidate blocks.
// Parameters are validated before any row is scored.
func DetectHeaderBlocks(grid models.Grid, params HeaderParams) ([]models.HeaderCandidateBlock, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("header detection: %w", err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	scored := FindHeaderRows(grid, params.MinScore)
	if len(scored) == 0 {
		return nil, nil
	}
	return ClusterHeaderBlocks(grid, scored, params.MaxGap), nil
}
