package engine

import (
	"sort"

	"github.com/tushaaaaaarr/SnakeRush/internal/geom"
)

// Snapshot is the game state as exposed to callers and transport layers.
type Snapshot struct {
	PlayerName      string       `json:"player_name"`
	Score           int          `json:"score"`
	DifficultyLevel int          `json:"difficulty_level"`
	Snake           []geom.Point `json:"snake"`
	Food            geom.Point   `json:"food"`
	Obstacles       []geom.Point `json:"obstacles"`
	GameOver        bool         `json:"game_over"`
	Paused          bool         `json:"paused"`
	Speed           float64      `json:"speed"`
	Width           int          `json:"width"`
	Height          int          `json:"height"`
	Ticks           int          `json:"ticks"`
}

// Snapshot returns a copy of the current game state. The snake is ordered
// head first; obstacles are sorted row-major for stable output.
func (g *Game) Snapshot() Snapshot {
	snake := make([]geom.Point, len(g.snake))
	copy(snake, g.snake)

	obstacles := make([]geom.Point, 0, len(g.obstacles))
	for p := range g.obstacles {
		obstacles = append(obstacles, p)
	}
	sort.Slice(obstacles, func(i, j int) bool {
		if obstacles[i].Y != obstacles[j].Y {
			return obstacles[i].Y < obstacles[j].Y
		}
		return obstacles[i].X < obstacles[j].X
	})

	return Snapshot{
		PlayerName:      g.playerName,
		Score:           g.score,
		DifficultyLevel: g.level,
		Snake:           snake,
		Food:            g.food,
		Obstacles:       obstacles,
		GameOver:        g.gameOver,
		Paused:          g.paused,
		Speed:           g.speed,
		Width:           g.width,
		Height:          g.height,
		Ticks:           g.ticks,
	}
}
