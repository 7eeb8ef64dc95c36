package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/parser"
)

// sheetInfo describes one sheet for the sheets command.
type sheetInfo struct {
	Name          string             `json:"name"`
	RowCount      int                `json:"row_count"`
	ColCount      int                `json:"col_count"`
	UsedRange     string             `json:"used_range"`
	NonEmptyCells int                `json:"non_empty_cells"`
	NonEmptyRows  int                `json:"non_empty_rows"`
	PrintAreas    []models.CellRange `json:"print_areas,omitempty"`
}

var sheetsCmd = &cobra.Command{
	Use:   "sheets FILE",
	Short: "List sheets with their size and used range",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := parser.Open(args[0])
		if err != nil {
			return err
		}
		defer wb.Close()

		infos := make([]sheetInfo, 0, len(wb.SheetNames()))
		for _, name := range wb.SheetNames() {
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			grid, err := wb.Grid(name)
			if err != nil {
				return fmt.Errorf("sheet %q: %w", name, err)
			}
			used := parser.GetUsedRange(grid)
			info := sheetInfo{
				Name:          name,
				RowCount:      grid.RowCount(),
				ColCount:      grid.ColCount(),
				UsedRange:     used.Ref(),
				NonEmptyCells: parser.CountNonEmptyCells(grid, used),
				NonEmptyRows:  len(parser.NonEmptyRows(grid)),
			}
			if p, ok := wb.(parser.PrintAreaProvider); ok {
				info.PrintAreas = p.PrintAreas(name)
			}
			infos = append(infos, info)
		}
		return writeResult(cmd, infos)
	},
}
