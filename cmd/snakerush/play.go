package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tushaaaaaarr/SnakeRush/internal/tui"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in the current terminal",
	Long: `Start a game in the current terminal.

Controls:
  Arrows/wasd/hjkl - Steer
  P/Esc            - Pause
  R                - Restart (after game over)
  T                - Top scores (paused or game over)
  Q/Ctrl+C         - Quit

Eat food to score. Every 50 points raises the difficulty tier: the snake
speeds up, and from tier 3 obstacles appear on the board.

Examples:
  snakerush play
  snakerush play --name alice
  snakerush play --board ./scores.json`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (prompted if not specified)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Each grid cell renders two terminal columns wide, plus the border.
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < cfg.Game.Width*2+4 || h < cfg.Game.Height+6 {
			fmt.Fprintf(os.Stderr, "Warning: terminal %dx%d is small for a %dx%d board\n",
				w, h, cfg.Game.Width, cfg.Game.Height)
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(store, cfg.Game, flagName); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
