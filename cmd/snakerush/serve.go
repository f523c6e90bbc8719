package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tushaaaaaarr/SnakeRush/internal/server"
)

var flagHTTPAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server for remote snake clients.

The server exposes game sessions, score submission and leaderboard queries
over JSON, plus a WebSocket endpoint for live play. All sessions share the
same leaderboard document.

Examples:
  snakerush serve                        # Listen on :8080
  snakerush serve --http :9000           # Listen on port 9000
  snakerush serve --board ./scores.json  # Use a specific leaderboard file`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (host:port, overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagHTTPAddr != "" {
		cfg.Server.Address = flagHTTPAddr
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(cfg, store)

	fmt.Printf("Starting SnakeRush API server on %s\n", cfg.Server.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := srv.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
