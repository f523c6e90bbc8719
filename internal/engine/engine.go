// Package engine implements the single-player snake game state machine:
// buffered direction changes, per-tick movement, collision detection, food
// placement and score-driven difficulty scaling. A Game is owned by exactly
// one caller; it has no internal locking.
package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/tushaaaaaarr/SnakeRush/internal/geom"
)

const (
	// BaseSpeed is the starting speed in ticks per second.
	BaseSpeed = 4.0
	// MaxSpeed caps the speed reached through difficulty scaling.
	MaxSpeed = 12.0
	// FoodPoints is the score awarded per food eaten.
	FoodPoints = 10
	// PointsPerTier is the score span of one difficulty tier.
	PointsPerTier = 50
	// ObstacleTier is the first tier at which obstacles appear.
	ObstacleTier = 3
	// MaxObstacles caps the obstacle count at high tiers.
	MaxObstacles = 10

	// Obstacle placement gives up after this many sampling attempts and
	// accepts whatever subset was found.
	obstacleAttempts = 100
	// Obstacles are never placed within this Chebyshev distance of the head.
	headClearance = 3
)

// Game holds the mutable state of one snake game.
type Game struct {
	width      int
	height     int
	playerName string
	rng        *rand.Rand

	snake     []geom.Point // Head at index 0
	direction geom.Direction
	nextDir   geom.Direction // Buffered direction, committed on the next tick
	food      geom.Point
	obstacles map[geom.Point]bool

	score    int
	level    int
	speed    float64
	gameOver bool
	paused   bool
	ticks    int
}

// New creates a game on a width x height grid for the named player.
// A seed of 0 seeds the RNG from the current time.
func New(width, height int, playerName string, seed int64) *Game {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		width:      width,
		height:     height,
		playerName: playerName,
		rng:        rand.New(rand.NewSource(seed)),
	}
	g.reset()
	return g
}

// reset puts all mutable state back to construction defaults.
func (g *Game) reset() {
	g.snake = []geom.Point{{X: g.width / 2, Y: g.height / 2}}
	g.direction = geom.Right
	g.nextDir = geom.Right
	g.obstacles = make(map[geom.Point]bool)
	g.score = 0
	g.level = 1
	g.speed = BaseSpeed
	g.gameOver = false
	g.paused = false
	g.ticks = 0
	g.spawnFood()
}

// Restart resets the game to its initial state. A non-empty playerName
// renames the player.
func (g *Game) Restart(playerName string) {
	if playerName != "" {
		g.playerName = playerName
	}
	g.reset()
}

// SetDirection buffers a direction change for the next tick. A change that
// would reverse the snake into itself is silently ignored. The snake itself
// is never mutated here, so rapid repeated changes between ticks cannot
// cause a reversal through the neck.
func (g *Game) SetDirection(d geom.Direction) {
	if d.IsOpposite(g.direction) {
		return
	}
	g.nextDir = d
}

// TogglePause flips the paused flag and nothing else.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

// Tick advances the game by one step and reports whether the game continues.
// Ticking a finished game returns false; ticking a paused game is a no-op
// that returns true.
func (g *Game) Tick() bool {
	if g.gameOver {
		return false
	}
	if g.paused {
		return true
	}

	g.direction = g.nextDir

	dx, dy := g.direction.Delta()
	newHead := g.snake[0].Add(dx, dy)

	if !newHead.InBounds(g.width, g.height) || g.isSnakeAt(newHead) || g.obstacles[newHead] {
		g.gameOver = true
		return false
	}

	g.snake = append([]geom.Point{newHead}, g.snake...)

	if newHead == g.food {
		g.score += FoodPoints
		g.spawnFood()
		g.updateDifficulty()
	} else {
		g.snake = g.snake[:len(g.snake)-1]
	}

	g.ticks++
	return true
}

// spawnFood places food on a uniformly random free cell. When the grid is
// saturated the food is parked off-grid at (-1,-1), which no head can ever
// reach, and play continues without food.
func (g *Game) spawnFood() {
	var free []geom.Point
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			p := geom.Point{X: x, Y: y}
			if !g.isSnakeAt(p) && !g.obstacles[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.food = geom.Point{X: -1, Y: -1}
		return
	}

	g.food = free[g.rng.Intn(len(free))]
}

// updateDifficulty recomputes the tier from the score. Only runs after
// scoring. On a tier change the speed scales up (capped) and, from
// ObstacleTier on, the obstacle set is fully regenerated.
func (g *Game) updateDifficulty() {
	level := 1 + g.score/PointsPerTier
	if level == g.level {
		return
	}
	g.level = level

	g.speed = math.Min(BaseSpeed+float64(level-1)*1.5, MaxSpeed)

	if level >= ObstacleTier {
		count := 2 + (level-ObstacleTier)*2
		if count > MaxObstacles {
			count = MaxObstacles
		}
		g.obstacles = g.generateObstacles(count)
	}
}

// generateObstacles rejection-samples up to count cells that avoid the
// snake, the food, each other and the head's clearance zone. Sampling is
// bounded; falling short is accepted rather than treated as a failure.
func (g *Game) generateObstacles(count int) map[geom.Point]bool {
	obstacles := make(map[geom.Point]bool, count)
	head := g.snake[0]

	for attempts := 0; len(obstacles) < count && attempts < obstacleAttempts; attempts++ {
		p := geom.Point{X: g.rng.Intn(g.width), Y: g.rng.Intn(g.height)}
		if g.isSnakeAt(p) || p == g.food || obstacles[p] {
			continue
		}
		if geom.Chebyshev(p, head) <= headClearance {
			continue
		}
		obstacles[p] = true
	}

	return obstacles
}

// isSnakeAt checks whether the snake occupies the given point.
func (g *Game) isSnakeAt(p geom.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// PlayerName returns the current player name.
func (g *Game) PlayerName() string { return g.playerName }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Speed returns the current speed in ticks per second.
func (g *Game) Speed() float64 { return g.speed }

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool { return g.gameOver }

// Paused reports whether the game is paused.
func (g *Game) Paused() bool { return g.paused }
