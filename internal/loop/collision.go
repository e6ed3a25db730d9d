package loop

import (
	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

// resolvePlayerCell collects every asteroid on the player's cell and applies
// a melee hit for an alien sharing it.
func (e *Engine) resolvePlayerCell() {
	pos := e.player.Pos
	e.world.asteroidsAt(pos, func(i int, _ *object.Asteroid) {
		e.world.Asteroids.Clear(i)
		e.award(1)
	})
	if e.world.alienAt(pos) >= 0 {
		e.player.Damage(e.settings.MeleeDamage)
		e.log.Debug("rammed alien", "turn", e.turn, "at", pos, "hull", e.player.Hull())
	}
}

// sweepLasers appends one laser cell for every cell to the right of each
// alien, up to the grid edge or the first black hole, and returns dst.
func (e *Engine) sweepLasers(dst []object.Laser) []object.Laser {
	bounds := e.world.bounds()
	e.world.Aliens.Each(func(_ int, a *object.Alien) {
		bounds.Ray(a.Pos, physics.Right, func(q physics.Position) bool {
			if e.world.Tiles.IsBlackHole(q) {
				return true
			}
			dst = append(dst, object.Laser{Pos: q})
			return false
		})
	})
	return dst
}

// fireLasers rebuilds the laser cells and damages the player once for every
// beam crossing its cell.
func (e *Engine) fireLasers() {
	e.world.Lasers = e.sweepLasers(e.world.Lasers[:0])
	for _, l := range e.world.Lasers {
		if l.Pos == e.player.Pos {
			e.player.Damage(e.settings.LaserDamage)
			e.log.Debug("laser hit", "turn", e.turn, "at", l.Pos, "hull", e.player.Hull())
		}
	}
}

// pulsarDamage damages the player once for every active pulsar in the 3x3
// box around it. The box is clipped at the grid edge.
func (e *Engine) pulsarDamage() {
	e.world.bounds().Neighborhood(e.player.Pos, func(q physics.Position) bool {
		if e.world.Tiles.At(q) == level.PulsarActive {
			e.player.Damage(e.settings.PulsarDamage)
		}
		return false
	})
}

// hitBlaster resolves blaster slot i against its cell: asteroids there are
// destroyed for a point each, and an alien there takes a hit that also
// consumes the blaster.
func (e *Engine) hitBlaster(i int, b *object.Blaster) {
	e.world.asteroidsAt(b.Pos, func(j int, _ *object.Asteroid) {
		e.world.Asteroids.Clear(j)
		e.award(1)
	})

	j := e.world.alienAt(b.Pos)
	if j < 0 {
		return
	}
	a := e.world.Aliens.Get(j)
	a.Damage(e.settings.BlasterDamage)
	if a.Destroyed() {
		e.world.Aliens.Clear(j)
		e.log.Debug("alien destroyed", "turn", e.turn, "at", b.Pos)
	}
	e.world.Blasters.Clear(i)
}
