package detect

import "github.com/ukaji3/templatesense-go/pkg/templatesense/models"

// Scorer scores a single row. rowIndex is 1-based and only used for logging.
type Scorer func(row models.Row, rowIndex int) float64

// FindCandidateRows scores every row of the grid and returns, in row order,
// the rows whose score is at least minScore.
func FindCandidateRows(grid models.Grid, scorer Scorer, minScore float64) []models.ScoredRow {
	var rows []models.ScoredRow
	for i, row := range grid {
		rowIndex := i + 1
		score := scorer(row, rowIndex)
		if score >= minScore {
			rows = append(rows, models.ScoredRow{Row: rowIndex, Score: score})
		}
	}
	return rows
}

// FindHeaderRows returns the rows scoring at least minScore as header candidates.
func FindHeaderRows(grid models.Grid, minScore float64) []models.ScoredRow {
	rows := FindCandidateRows(grid, ScoreHeaderRow, minScore)
	componentLogger().Info("found header candidate rows", "candidates", len(rows), "rows", len(grid), "min_score", minScore)
	return rows
}

// FindTableRows returns the rows scoring at least minScore as table candidates.
func FindTableRows(grid models.Grid, minScore float64) []models.ScoredRow {
	rows := FindCandidateRows(grid, ScoreTableRow, minScore)
	componentLogger().Info("found table candidate rows", "candidates", len(rows), "rows", len(grid), "min_score", minScore)
	return rows
}
