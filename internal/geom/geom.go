// Package geom provides grid coordinates and movement directions for the
// snake engine. It contains no external dependencies to keep game logic
// pure and testable.
package geom

// Point is a cell on the grid, 0-indexed from the top-left corner.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the point shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether the point lies within [0,width) x [0,height).
func (p Point) InBounds(width, height int) bool {
	return p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height
}

// Chebyshev returns the Chebyshev (chessboard) distance between two points.
func Chebyshev(a, b Point) int {
	dx := Abs(a.X - b.X)
	dy := Abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Direction is one of the four movement directions.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the unit delta vector for the direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// IsOpposite reports whether o is the exact reverse of d, i.e. their
// delta vectors sum to zero.
func (d Direction) IsOpposite(o Direction) bool {
	dx1, dy1 := d.Delta()
	dx2, dy2 := o.Delta()
	return dx1+dx2 == 0 && dy1+dy2 == 0
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction name to its Direction.
// Used by transport layers that receive directions as strings.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return Up, true
	case "down":
		return Down, true
	case "left":
		return Left, true
	case "right":
		return Right, true
	default:
		return 0, false
	}
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
