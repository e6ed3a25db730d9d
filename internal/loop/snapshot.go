package loop

import (
	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/object"
)

// Snapshot is a read-only copy of the session after a turn. Nothing in it
// aliases engine state, so adapters may keep it across turns. Nil entries in
// the slot slices are empty slots.
type Snapshot struct {
	Turn    int // Turn that produced this snapshot, 0 before the first turn
	Cleared int
	Points  int
	Outcome Outcome

	PointsPerLevel int
	LevelCap       int

	Tiles     *level.TileMap
	Player    object.Player
	Aliens    []*object.Alien
	Asteroids []*object.Asteroid
	Blasters  []*object.Blaster
	Lasers    []object.Laser
}

// Presenter receives a snapshot after construction and after every turn.
type Presenter interface {
	Present(Snapshot)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Snapshot)

// Present calls f(s).
func (f PresenterFunc) Present(s Snapshot) {
	f(s)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	lasers := make([]object.Laser, len(e.world.Lasers))
	copy(lasers, e.world.Lasers)

	return Snapshot{
		Turn:           e.played,
		Cleared:        e.cleared,
		Points:         e.points,
		Outcome:        e.outcome,
		PointsPerLevel: e.settings.PointsPerLevel,
		LevelCap:       e.settings.LevelCap,
		Tiles:          e.world.Tiles.Clone(),
		Player:         *e.player,
		Aliens:         e.world.Aliens.Views(),
		Asteroids:      e.world.Asteroids.Views(),
		Blasters:       e.world.Blasters.Views(),
		Lasers:         lasers,
	}
}

func (e *Engine) publish() {
	if e.presenter != nil {
		e.presenter.Present(e.Snapshot())
	}
}
