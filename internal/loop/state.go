package loop

import (
	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

// Outcome is the state of a session after a turn.
type Outcome int

const (
	OutcomeRunning  Outcome = iota // Turns are still accepted
	OutcomeGameOver                // Player hull dropped below 1
	OutcomeVictory                 // Level cap reached
	OutcomeFailed                  // A level could not be generated
)

var outcomeNames = [...]string{
	OutcomeRunning:  "running",
	OutcomeGameOver: "game-over",
	OutcomeVictory:  "victory",
	OutcomeFailed:   "failed",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Terminal reports whether the session has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomeRunning
}

// WorldState holds everything that is created by level generation and
// replaced as a whole when a level is cleared. The player is not part of it.
type WorldState struct {
	Tiles     *level.TileMap
	Aliens    *object.Slots[object.Alien]    // One slot per row
	Asteroids *object.Slots[object.Asteroid] // Sized to the vacancy pool at level start
	Blasters  *object.Slots[object.Blaster]  // Slot i heads physics.Compass[i]
	Lasers    []object.Laser                 // Rebuilt on even turns, emptied on odd turns
}

// volleyState tracks the lifetime of the blasters currently in flight.
type volleyState struct {
	age      int // Turns advanced with at least one blaster alive
	launched int // Turn on which the volley was fired, 0 if none
}

// bounds returns the grid dimensions of the current level.
func (w *WorldState) bounds() physics.Bounds {
	return w.Tiles.Bounds
}

// asteroidsAt calls fn for every asteroid slot whose asteroid sits on p.
func (w *WorldState) asteroidsAt(p physics.Position, fn func(i int, a *object.Asteroid)) {
	w.Asteroids.Each(func(i int, a *object.Asteroid) {
		if a.Pos == p {
			fn(i, a)
		}
	})
}

// alienAt returns the slot index of the alien on p, or -1.
func (w *WorldState) alienAt(p physics.Position) int {
	return object.FindAt(w.Aliens, p)
}

// vacancies returns a fresh pool of Space cells. It is recomputed on every
// call because tiles and positions change within a turn.
func (w *WorldState) vacancies() *object.Pool {
	return object.NewPool(w.Tiles.SpawnPool())
}
