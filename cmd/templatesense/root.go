package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/templatesense-go/internal/config"
	"github.com/ukaji3/templatesense-go/internal/logger"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/dictionary"
	"github.com/ukaji3/templatesense-go/pkg/templatesense/output"
)

var (
	cfgFile      string
	outputFormat string
	outputPath   string
	pretty       bool
	logLevel     string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "templatesense",
	Short: "Detect header and table regions in invoice templates",
	Long: `templatesense scans spreadsheet invoice templates (.xlsx, .xlsm, .xls) and
reports where the metadata header blocks and line-item tables are.

It can also build the classification payload for a sheet and fuzzy-match
labels against a field dictionary.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if _, err := logger.Install(os.Stderr, loaded.LogLevel, loaded.LogFormat); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./templatesense.yaml or ~/.templatesense/templatesense.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "format", "f", "json", "output format: json or yaml",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputPath, "output", "o", "", "output file path (default: stdout)",
	)
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", false, "pretty-print JSON output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(summaryCmd, payloadCmd, sheetsCmd, matchCmd, configCmd)
}

// writeResult serializes v to --output or stdout in the selected format.
func writeResult(cmd *cobra.Command, v any) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	if outputPath == "" {
		return output.Write(cmd.OutOrStdout(), v, format, pretty)
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	err = output.Write(f, v, format, pretty)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("failed to write output: %w", cerr)
	}
	return err
}

// loadDictionary loads the --dictionary file, falling back to the configured one.
func loadDictionary(path string) (dictionary.Dictionary, error) {
	if path == "" {
		path = cfg.Dictionary
	}
	if path == "" {
		return nil, fmt.Errorf("a field dictionary is required (--dictionary or the dictionary config key)")
	}
	return dictionary.Load(path)
}
