package detect

import (
	"fmt"
	"slices"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
)

// Table detection patterns.
const (
	PatternHighNumericDensity     = "high_numeric_density"
	PatternModerateNumericDensity = "moderate_numeric_density"
	PatternHighDensityConsistent  = "high_density_consistent"
	PatternColumnConsistency      = "column_consistency"
)

// TableParams holds parameters for table block detection.
type TableParams struct {
	// MinScore is the minimum row score for a table candidate row.
	MinScore float64
	// MinConsecutive is the shortest run of consecutive rows kept as a table.
	MinConsecutive int
	// HeaderMinScore is the minimum score for a column-header row.
	HeaderMinScore float64
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableParams {
	return TableParams{
		MinScore:       0.5,
		MinConsecutive: 3,
		HeaderMinScore: 0.6,
	}
}

// Validate rejects out-of-range parameters.
func (p TableParams) Validate() error {
	if err := validateMinScore("min_score", p.MinScore); err != nil {
		return err
	}
	if p.MinConsecutive < 1 {
		return &ValidationError{Param: "min_consecutive", Value: p.MinConsecutive, Reason: ">= 1"}
	}
	return validateMinScore("header_min_score", p.HeaderMinScore)
}

// ScoreTableRow scores a row's likelihood of being line-item data.
// Dense, numeric, terse rows without label punctuation score high.
func ScoreTableRow(row models.Row, rowIndex int) float64 {
	s := measureRow(row)
	if s.nonEmpty == 0 {
		return 0
	}

	score := 0.0
	var signals []string

	density := s.cellDensity()
	switch {
	case density > 0.7:
		score += 0.4
		signals = append(signals, "high_density")
	case density >= 0.3:
		score += 0.2
		signals = append(signals, "moderate_density")
	default:
		score -= 0.3
		signals = append(signals, "sparse_row")
	}

	numeric := s.numericDensity()
	switch {
	case numeric > 0.6:
		score += 0.5
		signals = append(signals, "high_numeric")
	case numeric > 0.4:
		score += 0.3
		signals = append(signals, "moderate_numeric")
	}

	avgLen := s.avgCellLength()
	if avgLen < 30 {
		score += 0.2
		signals = append(signals, "short_cells")
	}

	if s.keyValue == 0 {
		score += 0.2
		signals = append(signals, "no_key_value")
	} else {
		score -= 0.4
		signals = append(signals, "has_key_value")
	}

	score = clamp01(score)
	componentLogger().Debug("scored table row",
		"row", rowIndex,
		"score", score,
		"signals", signals,
		"density", density,
		"numeric", numeric,
		"avg_len", avgLen,
		"cells", s.nonEmpty,
	)
	return score
}

// ClusterTableBlocks groups strictly consecutive scored rows into table
// blocks. Runs shorter than minConsecutive are discarded.
func ClusterTableBlocks(grid models.Grid, scored []models.ScoredRow, minConsecutive int) []models.TableCandidateBlock {
	if len(scored) == 0 {
		return nil
	}

	sorted := slices.Clone(scored)
	slices.SortStableFunc(sorted, func(a, b models.ScoredRow) int { return a.Row - b.Row })

	var blocks []models.TableCandidateBlock
	flush := func(cluster []models.ScoredRow) {
		if len(cluster) < minConsecutive {
			componentLogger().Debug("discarding short table run",
				"row_start", cluster[0].Row, "rows", len(cluster), "min_consecutive", minConsecutive)
			return
		}
		blocks = append(blocks, newTableBlock(grid, cluster))
	}

	cluster := []models.ScoredRow{sorted[0]}
	for _, r := range sorted[1:] {
		if r.Row == cluster[len(cluster)-1].Row+1 {
			cluster = append(cluster, r)
			continue
		}
		flush(cluster)
		cluster = []models.ScoredRow{r}
	}
	flush(cluster)

	componentLogger().Info("clustered table blocks", "rows", len(scored), "blocks", len(blocks), "min_consecutive", minConsecutive)
	return blocks
}

func newTableBlock(grid models.Grid, cluster []models.ScoredRow) models.TableCandidateBlock {
	rowStart := cluster[0].Row
	rowEnd := cluster[len(cluster)-1].Row
	content, colStart, colEnd := collectContent(grid, rowStart, rowEnd)
	score := meanScore(cluster)

	return models.TableCandidateBlock{
		RowStart:        rowStart,
		RowEnd:          rowEnd,
		ColStart:        colStart,
		ColEnd:          colEnd,
		Content:         content,
		Score:           score,
		DetectedPattern: tablePattern(content, score),
	}
}

func tablePattern(content []models.ContentCell, avgScore float64) string {
	numeric := 0
	for _, c := range content {
		if c.Value.IsNumeric() {
			numeric++
		}
	}
	ratio := 0.0
	if len(content) > 0 {
		ratio = float64(numeric) / float64(len(content))
	}

	switch {
	case ratio > 0.6:
		return PatternHighNumericDensity
	case ratio > 0.4:
		return PatternModerateNumericDensity
	case avgScore > 0.7:
		return PatternHighDensityConsistent
	default:
		return PatternColumnConsistency
	}
}

// DetectTableBlocks scans the whole grid for table candidate blocks and
// attaches a column-header row to each block when one is found.
// Parameters are validated before any row is scored.
func DetectTableBlocks(grid models.Grid, params TableParams) ([]models.TableCandidateBlock, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("table detection: %w", err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	scored := FindTableRows(grid, params.MinScore)
	if len(scored) == 0 {
		return nil, nil
	}

	blocks := ClusterTableBlocks(grid, scored, params.MinConsecutive)
	for i := range blocks {
		blocks[i].HeaderRow = DetectTableHeaderRow(grid, blocks[i], params.HeaderMinScore)
	}
	return blocks, nil
}
