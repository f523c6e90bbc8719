package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores from the leaderboard.

Examples:
  snakerush scores
  snakerush scores --limit 25`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := openStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	entries, err := store.Top(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("SnakeRush - Top Scores")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snakerush play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %-8s  %-8s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-20s  %-8s  %-8s  %s\n", "----", "------", "-----", "----", "----")

	for i, entry := range entries {
		dateStr := entry.Date.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-20s  %-8d  %-8s  %s\n",
			i+1, entry.Name, entry.BestScore, formatDuration(entry.TimeTaken), dateStr)
	}
}

// formatDuration renders a play time in seconds as m:ss.
func formatDuration(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
