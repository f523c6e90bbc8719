package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/tushaaaaaarr/SnakeRush/internal/engine"
	"github.com/tushaaaaaarr/SnakeRush/internal/geom"
)

var (
	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	headStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	bodyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foodStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	obstacleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	overlayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

const (
	headGlyph     = "O"
	bodyGlyph     = "o"
	foodGlyph     = "*"
	obstacleGlyph = "#"
	emptyGlyph    = "·"
)

// renderGame draws the HUD, the bordered board and the help footer.
func renderGame(snap engine.Snapshot, helpFooter string) string {
	var b strings.Builder

	hud := fmt.Sprintf("%s — Score: %d  Tier: %d  Speed: %.1f",
		snap.PlayerName, snap.Score, snap.DifficultyLevel, snap.Speed)
	b.WriteString(hudStyle.Render(hud))
	b.WriteString("\n")

	b.WriteString(boardStyle.Render(renderBoard(snap)))
	b.WriteString("\n")

	switch {
	case snap.GameOver:
		b.WriteString(overlayStyle.Render(fmt.Sprintf("Game Over — final score %d. Press r to restart, t for top scores.", snap.Score)))
		b.WriteString("\n")
	case snap.Paused:
		b.WriteString(overlayStyle.Render("Paused — press p to continue."))
		b.WriteString("\n")
	}

	b.WriteString(helpFooter)
	return b.String()
}

// renderBoard draws the grid row by row. Cells are spaced with a blank so
// the board is roughly square in terminal cells.
func renderBoard(snap engine.Snapshot) string {
	occupied := make(map[geom.Point]string, len(snap.Snake)+len(snap.Obstacles)+1)
	for i, seg := range snap.Snake {
		if i == 0 {
			occupied[seg] = headStyle.Render(headGlyph)
		} else {
			occupied[seg] = bodyStyle.Render(bodyGlyph)
		}
	}
	for _, p := range snap.Obstacles {
		occupied[p] = obstacleStyle.Render(obstacleGlyph)
	}
	if snap.Food.InBounds(snap.Width, snap.Height) {
		occupied[snap.Food] = foodStyle.Render(foodGlyph)
	}

	var b strings.Builder
	for y := 0; y < snap.Height; y++ {
		if y > 0 {
			b.WriteString("\n")
		}
		for x := 0; x < snap.Width; x++ {
			if x > 0 {
				b.WriteString(" ")
			}
			if glyph, ok := occupied[geom.Point{X: x, Y: y}]; ok {
				b.WriteString(glyph)
			} else {
				b.WriteString(emptyGlyph)
			}
		}
	}
	return b.String()
}

// renderNameEntry draws the player name prompt.
func renderNameEntry(input textinput.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("SnakeRush"))
	b.WriteString("\n\n")
	b.WriteString("Who's playing?\n\n")
	b.WriteString(input.View())
	b.WriteString("\n\n")
	b.WriteString(hudStyle.Render("enter to start · ctrl+c to quit"))
	return b.String()
}

// renderScores draws the leaderboard table overlay.
func renderScores(scores table.Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Top Scores"))
	b.WriteString("\n\n")
	b.WriteString(scores.View())
	b.WriteString("\n\n")
	b.WriteString(hudStyle.Render("t/esc to go back"))
	return b.String()
}
