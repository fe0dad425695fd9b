package main

import (
	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running Fintab server via HTTP.

These commands require a running server (fintab serve).
Use --server to specify a custom server URL.

Examples:
  fintab api health                  # Check server health
  fintab api extract report.pdf      # Extract tables from a PDF
  fintab api extractions list        # List extraction history
  fintab api extractions get <id>    # Get a specific extraction`,
}

var extractionsCmd = &cobra.Command{
	Use:   "extractions",
	Short: "Extraction history commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8000", "Server URL",
	)

	// Health and status endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.StatusEndpoint{}).Command(getServerURL))

	// Extraction upload at top level
	apiCmd.AddCommand((&endpoints.ExtractEndpoint{}).Command(getServerURL))

	// History as subcommand group
	extractionsCmd.AddCommand((&endpoints.ListExtractionsEndpoint{}).Command(getServerURL))
	extractionsCmd.AddCommand((&endpoints.GetExtractionEndpoint{}).Command(getServerURL))

	// Swagger spec export
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	apiCmd.AddCommand(extractionsCmd)
	rootCmd.AddCommand(apiCmd)
}
