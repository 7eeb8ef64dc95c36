package main

import (
	"github.com/spf13/cobra"

	"github.com/ukaji3/templatesense-go/pkg/templatesense/mapping"
)

var (
	matchDictionary string
	matchThreshold  float64
)

var matchCmd = &cobra.Command{
	Use:   "match LABEL...",
	Short: "Fuzzy-match labels to canonical field keys",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dict, err := loadDictionary(matchDictionary)
		if err != nil {
			return err
		}

		threshold := cfg.AutoMappingThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = matchThreshold
		}

		results, err := mapping.MatchFields(args, dict, threshold)
		if err != nil {
			return err
		}
		return writeResult(cmd, results)
	},
}

func init() {
	matchCmd.Flags().StringVarP(&matchDictionary, "dictionary", "d", "", "field dictionary file (YAML or JSON)")
	matchCmd.Flags().Float64Var(&matchThreshold, "threshold", mapping.DefaultThreshold, "minimum score (0-100) for a match")
}
