package object

import (
	"fmt"

	"github.com/tomz197/spacegame/internal/physics"
)

// Ship is the hull-bearing part shared by the player and aliens.
// Hull is kept within [0, MaxHull] on every change.
type Ship struct {
	Pos     physics.Position
	hull    int
	maxHull int
}

func newShip(maxHull int, pos physics.Position) Ship {
	if maxHull < 1 {
		panic(fmt.Sprintf("object: ship max hull %d must be positive", maxHull))
	}
	return Ship{Pos: pos, hull: maxHull, maxHull: maxHull}
}

// Position returns the ship's cell.
func (s *Ship) Position() physics.Position {
	return s.Pos
}

// Hull returns the current hull strength.
func (s *Ship) Hull() int {
	return s.hull
}

// MaxHull returns the hull ceiling.
func (s *Ship) MaxHull() int {
	return s.maxHull
}

// Damage lowers the hull by amount, stopping at zero, and returns the
// damage actually absorbed.
func (s *Ship) Damage(amount int) int {
	if amount < 0 {
		panic(fmt.Sprintf("object: negative damage %d", amount))
	}
	if amount > s.hull {
		amount = s.hull
	}
	s.hull -= amount
	return amount
}

// Repair raises the hull by amount, stopping at MaxHull, and returns the
// hull actually restored.
func (s *Ship) Repair(amount int) int {
	if amount < 0 {
		panic(fmt.Sprintf("object: negative repair %d", amount))
	}
	if room := s.maxHull - s.hull; amount > room {
		amount = room
	}
	s.hull += amount
	return amount
}

// Destroyed reports whether the hull is gone.
func (s *Ship) Destroyed() bool {
	return s.hull == 0
}

// Player is the ship steered by intents. It persists across levels.
type Player struct {
	Ship
}

// NewPlayer creates a player at pos with a full hull.
func NewPlayer(maxHull int, pos physics.Position) *Player {
	return &Player{Ship: newShip(maxHull, pos)}
}

// Alien is a hostile ship that drifts along its row and fires lasers.
type Alien struct {
	Ship
}

// NewAlien creates an alien at pos with a full hull.
func NewAlien(maxHull int, pos physics.Position) *Alien {
	return &Alien{Ship: newShip(maxHull, pos)}
}
