// snakerush is a grid-snake game with a persistent leaderboard.
//
// Usage:
//
//	snakerush play              - Play in the current terminal
//	snakerush serve             - Start the HTTP API server
//	snakerush ssh               - Start the SSH play server
//	snakerush scores            - Show the leaderboard
//
// Global flags:
//
//	--config <path>  - Path to a config YAML (default: built-in search order)
//	--board <path>   - Override the leaderboard document path
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tushaaaaaarr/SnakeRush/internal/config"
	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

var (
	// Global flags
	flagConfig string
	flagBoard  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakerush",
	Short: "SnakeRush - grid snake with a persistent leaderboard",
	Long: `SnakeRush is a snake game engine with score persistence. Play locally,
serve the game over SSH, or run the HTTP API for remote clients.

Available commands:
  play     - Play in the current terminal
  serve    - Start the HTTP API server
  ssh      - Start the SSH play server
  scores   - Show the leaderboard

Examples:
  snakerush play --name alice
  snakerush serve
  snakerush ssh --ssh :2222
  snakerush scores --limit 20`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagBoard, "board", "", "Path to the leaderboard document")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sshCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagBoard != "" {
		cfg.Leaderboard.Path = flagBoard
	}
	return cfg, nil
}

// openStore opens the leaderboard document named by the config.
func openStore(cfg config.Config) (*leaderboard.Store, error) {
	return leaderboard.Open(cfg.Leaderboard.Path)
}
