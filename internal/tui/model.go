// Package tui provides the Bubble Tea frontend: name entry, the live game
// view and the leaderboard overlay. The same model serves local play and
// SSH sessions.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tushaaaaaarr/SnakeRush/internal/config"
	"github.com/tushaaaaaarr/SnakeRush/internal/engine"
	"github.com/tushaaaaaarr/SnakeRush/internal/geom"
	"github.com/tushaaaaaarr/SnakeRush/internal/leaderboard"
)

// TickMsg triggers one game simulation step.
type TickMsg time.Time

// tickCmd schedules the next tick from the engine's current speed (ticks
// per second).
func tickCmd(speed float64) tea.Cmd {
	if speed <= 0 {
		speed = engine.BaseSpeed
	}
	interval := time.Duration(float64(time.Second) / speed)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type phase int

const (
	phaseNameEntry phase = iota
	phasePlaying
	phaseScores
)

// Model drives one snake game in the terminal.
type Model struct {
	store   *leaderboard.Store
	gameCfg config.GameConfig

	phase      phase
	playerName string
	game       *engine.Game
	startedAt  time.Time
	submitted  bool

	keys      keyMap
	helpView  help.Model
	nameInput textinput.Model
	scores    table.Model

	quitting bool
}

// NewModel creates the frontend model. A non-empty playerName (an SSH
// username or a --name flag) skips the name entry screen.
func NewModel(store *leaderboard.Store, gameCfg config.GameConfig, playerName string) Model {
	input := textinput.New()
	input.Placeholder = "Player name"
	input.CharLimit = 50
	input.Width = 24
	input.Focus()

	m := Model{
		store:     store,
		gameCfg:   gameCfg,
		keys:      defaultKeyMap(),
		helpView:  help.New(),
		nameInput: input,
	}

	if playerName != "" {
		m.startGame(playerName)
	}
	return m
}

// startGame creates a fresh engine for the named player.
func (m *Model) startGame(playerName string) {
	m.playerName = playerName
	m.game = engine.New(m.gameCfg.Width, m.gameCfg.Height, playerName, 0)
	m.startedAt = time.Now()
	m.submitted = false
	m.phase = phasePlaying
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.phase == phasePlaying {
		return tickCmd(m.game.Speed())
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.phase != phaseNameEntry {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.phase {
		case phaseNameEntry:
			return m.updateNameEntry(msg)
		case phasePlaying:
			return m.updatePlaying(msg)
		case phaseScores:
			return m.updateScores(msg)
		}

	case TickMsg:
		if m.phase != phasePlaying && m.phase != phaseScores {
			return m, nil
		}
		m.game.Tick()
		if m.game.GameOver() && !m.submitted {
			m.submitScore()
		}
		return m, tickCmd(m.game.Speed())
	}

	if m.phase == phaseNameEntry {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateNameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		name := m.nameInput.Value()
		if name == "" {
			name = "Player"
		}
		m.startGame(name)
		return m, tickCmd(m.game.Speed())
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m Model) updatePlaying(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.game.SetDirection(geom.Up)
	case key.Matches(msg, m.keys.Down):
		m.game.SetDirection(geom.Down)
	case key.Matches(msg, m.keys.Left):
		m.game.SetDirection(geom.Left)
	case key.Matches(msg, m.keys.Right):
		m.game.SetDirection(geom.Right)
	case key.Matches(msg, m.keys.Pause):
		m.game.TogglePause()
	case key.Matches(msg, m.keys.Restart):
		if m.game.GameOver() {
			m.game.Restart("")
			m.startedAt = time.Now()
			m.submitted = false
		}
	case key.Matches(msg, m.keys.Scores):
		if m.game.GameOver() || m.game.Paused() {
			m.scores = m.buildScoresTable()
			m.phase = phaseScores
		}
	}
	return m, nil
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Scores) || msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		m.phase = phasePlaying
		return m, nil
	}

	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	return m, cmd
}

// submitScore pushes the final score to the leaderboard exactly once per
// run. Zero scores are not worth a leaderboard entry.
func (m *Model) submitScore() {
	m.submitted = true
	if m.game.Score() == 0 || m.store == nil {
		return
	}
	elapsed := int(time.Since(m.startedAt).Seconds())
	//nolint:errcheck // Best-effort save; the game over screen still shows
	m.store.Submit(m.playerName, m.game.Score(), elapsed)
}

// buildScoresTable loads the top 10 into a bubbles table.
func (m Model) buildScoresTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Player", Width: 20},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 8},
	}

	var rows []table.Row
	if m.store != nil {
		if entries, err := m.store.Top(10); err == nil {
			for i, e := range entries {
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", i+1),
					e.Name,
					fmt.Sprintf("%d", e.BestScore),
					fmt.Sprintf("%ds", e.TimeTaken),
				})
			}
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(12),
		table.WithFocused(true),
	)
	return t
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case phaseNameEntry:
		return renderNameEntry(m.nameInput)
	case phaseScores:
		return renderScores(m.scores)
	default:
		return renderGame(m.game.Snapshot(), m.helpView.View(m.keys))
	}
}
