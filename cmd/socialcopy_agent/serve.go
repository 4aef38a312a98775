package main

import (
	"fmt"

	"github.com/jonathan/socialcopy/internal/config"
	"github.com/jonathan/socialcopy/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for copy generation, image rendering, article ingestion, and draft storage.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT env var)")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	var cfg config.Config
	if serveConfigPath != "" {
		loaded, err := config.Load(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}
	cfg.ApplyEnvFallbacks()
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// A missing API key is tolerated at startup: requests can carry their
	// own key, and requests without one fail per-call.
	srv, err := server.New(server.Config{
		Port:            cfg.EffectivePort(),
		APIKey:          cfg.APIKey,
		DatabaseURL:     cfg.DatabaseURL,
		MaxContentChars: cfg.EffectiveMaxContentChars(),
		MaxAttempts:     cfg.EffectiveMaxAttempts(),
		RetryBaseDelay:  cfg.EffectiveRetryBaseDelay(),
		GeminiBaseURL:   cfg.GeminiBaseURL,
		GeminiModel:     cfg.GeminiModel,
		ImagenModel:     cfg.ImagenModel,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
