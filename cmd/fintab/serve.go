package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fintab/fintab/internal/config"
	"github.com/fintab/fintab/internal/home"
	"github.com/fintab/fintab/internal/server"

	_ "github.com/fintab/fintab/docs" // swagger spec registration
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Fintab server",
	Long: `Start the Fintab HTTP server.

The server provides:
  - /                 - Upload UI
  - /api/extract      - PDF table extraction
  - /api/extractions  - Extraction history
  - /public/          - Generated spreadsheets
  - /health           - Basic server health check

A default config file is written to the home directory on first run.
Settings under "extractor" are re-read when the config file changes.

Examples:
  fintab serve                    # Start on default port 8000
  fintab serve --port 3000        # Start on custom port
  fintab serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		// Locate the config file, seeding a default on first run
		configPath := cfgFile
		if configPath == "" {
			configPath = h.ConfigPath()
			if !h.ConfigExists() {
				if err := config.WriteDefault(configPath); err != nil {
					return err
				}
				logger.Info("config.created", "path", configPath)
			}
		}

		mgr, err := config.NewManager(configPath)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		// Create server
		srv, err := server.New(server.Config{
			Host:          serveHost,
			Port:          servePort,
			ConfigManager: mgr,
			Home:          h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
