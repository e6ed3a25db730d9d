package object

import (
	"math/rand"

	"github.com/tomz197/spacegame/internal/physics"
)

// Asteroid is a collectible rock that drifts along a fixed heading.
type Asteroid struct {
	Pos       physics.Position
	Direction physics.Direction // Up, Down, Left, Right or None
}

// NewAsteroid creates an asteroid at pos with heading d.
func NewAsteroid(pos physics.Position, d physics.Direction) *Asteroid {
	return &Asteroid{Pos: pos, Direction: d}
}

// NewAsteroidRandom creates an asteroid at pos with a heading drawn
// uniformly from the four cardinals and None.
func NewAsteroidRandom(pos physics.Position, rng *rand.Rand) *Asteroid {
	return NewAsteroid(pos, physics.Cardinal[rng.Intn(len(physics.Cardinal))])
}

// Position returns the asteroid's cell.
func (a *Asteroid) Position() physics.Position {
	return a.Pos
}
