package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/templatesense-go/pkg/templatesense"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/models"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/payload"
)

var (
	payloadDictionary string
	payloadSampleRows int
)

var payloadCmd = &cobra.Command{
	Use:   "payload FILE",
	Short: "Build the field classification payload for each sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := loadDictionary(payloadDictionary)
		if err != nil {
			return err
		}

		maxRows := cfg.MaxSampleRows
		if cmd.Flags().Changed("max-sample-rows") {
			maxRows = payloadSampleRows
		}

		summary, err := templatesense.Summarize(cmd.Context(), args[0], summaryOptions())
		if err != nil {
			return fmt.Errorf("summary failed: %w", err)
		}

		payloads := make([]*models.AIPayload, 0, len(summary.Sheets))
		for _, sheet := range summary.Sheets {
			p, err := payload.Build(sheet, dict, maxRows)
			if err != nil {
				return err
			}
			if err := payload.Validate(p); err != nil {
				return fmt.Errorf("sheet %q: %w", sheet.SheetName, err)
			}
			payloads = append(payloads, p)
		}
		return writeResult(cmd, payloads)
	},
}

func init() {
	payloadCmd.Flags().StringVarP(&payloadDictionary, "dictionary", "d", "", "field dictionary file (YAML or JSON)")
	payloadCmd.Flags().IntVar(&payloadSampleRows, "max-sample-rows", payload.DefaultMaxSampleRows, "data rows sampled per table")
	payloadCmd.Flags().StringSliceVar(&summarySheets, "sheet", nil, "sheet to include (repeatable; default: all sheets)")
	payloadCmd.Flags().BoolVar(&summaryPrintAreaOnly, "print-area-only", false, "ignore cells outside each sheet's print area")
}
