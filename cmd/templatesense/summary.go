package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/templatesense-go/pkg/templatesense"
)

var (
	summarySheets         []string
	summaryNoTableHeaders bool
	summaryPrintAreaOnly  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary FILE",
	Short: "Detect header and table candidate blocks in every sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := templatesense.Summarize(cmd.Context(), args[0], summaryOptions())
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}
		return writeResult(cmd, summary)
	},
}

func init() {
	summaryCmd.Flags().StringSliceVar(&summarySheets, "sheet", nil, "sheet to summarize (repeatable; default: all sheets)")
	summaryCmd.Flags().BoolVar(&summaryNoTableHeaders, "no-table-headers", false, "skip table header row detection")
	summaryCmd.Flags().BoolVar(&summaryPrintAreaOnly, "print-area-only", false, "ignore cells outside each sheet's print area")
}

func summaryOptions() templatesense.Options {
	opts := cfg.Options()
	opts.Sheets = summarySheets
	opts.PrintAreaOnly = summaryPrintAreaOnly
	if summaryNoTableHeaders {
		include := false
		opts.IncludeTableHeaders = &include
	}
	return opts
}
