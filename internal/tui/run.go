package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tushaaaaaarr/SnakeRush/internal/config"
	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

// Run starts a local game in the current terminal and blocks until the
// player quits.
func Run(store *leaderboard.Store, gameCfg config.GameConfig, playerName string) error {
	p := tea.NewProgram(NewModel(store, gameCfg, playerName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
