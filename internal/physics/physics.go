// Package physics provides integer grid coordinates, directions and
// the stepping rules shared by every entity kind.
package physics

import "fmt"

// Position is a cell coordinate. X grows to the right, Y grows downward.
type Position struct {
	X, Y int
}

// Pos is a convenience constructor for Position.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by (dx, dy). The result is not bounds-checked.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns p moved one cell in direction d. The result is not bounds-checked.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Direction is a movement heading. The four cardinal headings are shared by
// asteroids and blasters; the diagonals are only used by blasters.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
	UpLeft
	UpRight
	DownLeft
	DownRight
)

// Cardinal lists the headings an asteroid may be created with, None included.
var Cardinal = [...]Direction{Up, Down, Left, Right, None}

// Compass lists the eight volley headings in blaster slot order.
var Compass = [...]Direction{Left, Right, Down, Up, UpRight, UpLeft, DownRight, DownLeft}

var directionNames = [...]string{
	None:      "none",
	Up:        "up",
	Down:      "down",
	Left:      "left",
	Right:     "right",
	UpLeft:    "up-left",
	UpRight:   "up-right",
	DownLeft:  "down-left",
	DownRight: "down-right",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// Delta returns the unit offset for the direction.
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
	case UpLeft:
		return -1, -1
	case UpRight:
		return 1, -1
	case DownLeft:
		return -1, 1
	case DownRight:
		return 1, 1
	default:
		return 0, 0
	}
}

// Opposite returns the heading pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	case UpLeft:
		return DownRight
	case UpRight:
		return DownLeft
	case DownLeft:
		return UpRight
	case DownRight:
		return UpLeft
	default:
		return None
	}
}
