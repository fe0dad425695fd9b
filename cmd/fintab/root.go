package main

import (
	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/api"
	"github.com/fintab/fintab/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "fintab",
	Short: "Financial table extraction from PDF documents",
	Long: `Fintab extracts financial tables from PDF documents using an
LLM with schema-constrained output and renders them as HTML and Excel.

The pipeline includes:
  - PDF upload validation
  - Schema-constrained table extraction via the OpenAI Responses API
  - Column alignment reconciliation with misaligned-table rejection
  - HTML fragment and XLSX workbook rendering`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ~/.fintab/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "fintab home directory (default: ~/.fintab)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
