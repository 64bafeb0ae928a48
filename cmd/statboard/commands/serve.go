package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/statboard/statboard/internal/api"
	"github.com/statboard/statboard/internal/api/handlers"
	"github.com/statboard/statboard/internal/api/live"
	"github.com/statboard/statboard/internal/dataset"
	"github.com/statboard/statboard/internal/schema"
	"github.com/statboard/statboard/pkg/config"
	"github.com/statboard/statboard/pkg/logger"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the statboard web server",
	Long: `Starts the HTTP server hosting the dashboard page and upload API.

Endpoints:
  GET  /                    - Dashboard page
  GET  /health              - Health check
  POST /api/datasets        - Upload a CSV dataset
  GET  /api/datasets/latest - Latest upload result
  GET  /api/live            - WebSocket feed of new results

Example:
  statboard serve
  statboard serve --port 9000`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if servePort != "" {
		cfg.Port = servePort
	}
	if schemaFile != "" {
		cfg.SchemaFile = schemaFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Load schema config
	schemaCfg, err := schema.Load(cfg.SchemaFile)
	if err != nil {
		return fmt.Errorf("load schema config: %w", err)
	}

	// 4. Wire the upload pipeline
	store := dataset.NewStore()
	hub := live.NewHub(log)
	datasetHandler := handlers.NewDatasetHandler(store, hub, schemaCfg, cfg, log)

	// 5. Create router and server
	router := api.NewRouter(datasetHandler, hub, log)
	server := api.New(cfg, log, router)

	// 6. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Infof("Dashboard available on http://localhost:%s", cfg.Port)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
