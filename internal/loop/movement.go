package loop

import (
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

// Intent is a single player command.
type Intent int

const (
	IntentNone Intent = iota
	IntentUp
	IntentDown
	IntentLeft
	IntentRight
	IntentFire
)

var intentNames = [...]string{
	IntentNone:  "none",
	IntentUp:    "up",
	IntentDown:  "down",
	IntentLeft:  "left",
	IntentRight: "right",
	IntentFire:  "fire",
}

func (i Intent) String() string {
	if i < 0 || int(i) >= len(intentNames) {
		return "unknown"
	}
	return intentNames[i]
}

// Do dispatches an intent. IntentNone does nothing.
func (e *Engine) Do(i Intent) {
	switch i {
	case IntentUp:
		e.MoveUp()
	case IntentDown:
		e.MoveDown()
	case IntentLeft:
		e.MoveLeft()
	case IntentRight:
		e.MoveRight()
	case IntentFire:
		e.Fire()
	}
}

// MoveUp moves the player one cell up, wrapping at the top edge.
func (e *Engine) MoveUp() { e.movePlayer(physics.Up) }

// MoveDown moves the player one cell down, wrapping at the bottom edge.
func (e *Engine) MoveDown() { e.movePlayer(physics.Down) }

// MoveLeft moves the player one cell left, wrapping at the left edge.
func (e *Engine) MoveLeft() { e.movePlayer(physics.Left) }

// MoveRight moves the player one cell right, wrapping at the right edge.
func (e *Engine) MoveRight() { e.movePlayer(physics.Right) }

// movePlayer steps the player on the torus. A black hole blocks the step
// and costs a point. Whether or not the player moved, the cell it ends on
// is then resolved against asteroids and aliens.
func (e *Engine) movePlayer(d physics.Direction) {
	if e.outcome.Terminal() {
		return
	}

	target := e.world.bounds().Wrap(e.player.Pos.Step(d))
	if e.world.Tiles.IsBlackHole(target) {
		e.penalize(e.settings.BumpPenalty)
		e.log.Debug("bumped black hole", "turn", e.turn, "at", target, "points", e.points)
	} else {
		e.player.Pos = target
	}

	e.resolvePlayerCell()
}

// penalize removes up to n points, never going below zero.
func (e *Engine) penalize(n int) {
	e.points -= min(n, e.points)
}

// moveAsteroids drifts every asteroid one cell along its heading. An
// asteroid that would leave the grid, or lands on a hazard, is teleported to
// a random vacant cell and keeps its heading.
func (e *Engine) moveAsteroids() {
	bounds := e.world.bounds()
	e.world.Asteroids.Each(func(i int, a *object.Asteroid) {
		if a.Direction == physics.None {
			return
		}
		next := a.Pos.Step(a.Direction)
		if bounds.InBounds(next) && !e.world.Tiles.At(next).IsHazard() {
			a.Pos = next
			return
		}
		e.relocateAsteroid(i, nil)
	})
}

// relocateAsteroid moves asteroid i to a vacant cell accepted by the filter
// (nil accepts every Space cell). The asteroid is removed if no cell is left.
func (e *Engine) relocateAsteroid(i int, accept func(physics.Position) bool) {
	pos, ok := e.world.vacancies().Draw(e.rng, accept)
	if !ok {
		e.world.Asteroids.Clear(i)
		e.log.Debug("asteroid dropped, no vacant cell", "turn", e.turn, "slot", i)
		return
	}
	e.world.Asteroids.Get(i).Pos = pos
}

// moveAliens shifts each alien one cell along its row. A coin flip picks
// the side; if that cell is off the grid or a hazard the other side is
// tried. An alien never steps onto the player and just waits instead.
// An alien that ends on an asteroid pushes it to a vacant cell away from the
// player and repairs itself.
func (e *Engine) moveAliens() {
	bounds := e.world.bounds()
	e.world.Aliens.Each(func(_ int, a *object.Alien) {
		d := physics.Left
		if e.rng.Intn(2) == 0 {
			d = physics.Right
		}

		for _, dir := range [...]physics.Direction{d, d.Opposite()} {
			next := a.Pos.Step(dir)
			if !bounds.InBounds(next) || e.world.Tiles.At(next).IsHazard() {
				continue
			}
			if next != e.player.Pos {
				a.Pos = next
			}
			break
		}

		player, alien := e.player.Pos, a.Pos
		e.world.asteroidsAt(alien, func(i int, _ *object.Asteroid) {
			e.relocateAsteroid(i, func(p physics.Position) bool {
				return p != player && p != alien
			})
			a.Repair(e.settings.AlienHeal)
		})
	})
}
