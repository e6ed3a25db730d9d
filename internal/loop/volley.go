package loop

import (
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

// Fire launches a volley of up to eight blasters around the player. It does
// nothing while any blaster of the previous volley is still in flight.
func (e *Engine) Fire() {
	if e.outcome.Terminal() {
		return
	}
	if !e.CanFire() {
		e.log.Debug("volley still in flight", "turn", e.turn, "blasters", e.world.Blasters.Len())
		return
	}
	e.launchVolley()
}

// CanFire reports whether a new volley may be launched.
func (e *Engine) CanFire() bool {
	return e.world.Blasters.Len() == 0
}

// launchVolley places one blaster on each neighbouring cell that is on the
// grid and not a black hole, then resolves hits on those cells. The volley
// is not advanced during the turn it was launched in.
func (e *Engine) launchVolley() {
	bounds := e.world.bounds()
	e.world.Blasters.Reset()
	for i, d := range physics.Compass {
		p := e.player.Pos.Step(d)
		if !bounds.InBounds(p) || e.world.Tiles.IsBlackHole(p) {
			continue
		}
		e.world.Blasters.Put(i, object.NewBlaster(p, d))
	}
	e.world.Blasters.Each(func(i int, b *object.Blaster) {
		e.hitBlaster(i, b)
	})
	e.volley = volleyState{launched: e.turn}
	e.log.Debug("volley fired", "turn", e.turn, "blasters", e.world.Blasters.Len())
}

// advanceVolley runs the volley phase of a turn: an empty volley may be
// replaced by auto-fire, an expired one is cleared and a live one moves.
func (e *Engine) advanceVolley() {
	if e.world.Blasters.Len() == 0 {
		e.volley = volleyState{}
		if e.settings.AutoFire {
			e.launchVolley()
		}
		return
	}
	if e.volley.age >= e.settings.VolleyLifetime {
		e.world.Blasters.Reset()
		e.volley = volleyState{}
		e.log.Debug("volley expired", "turn", e.turn)
		return
	}
	if e.volley.launched == e.turn {
		return
	}

	e.moveBlasters()
	if e.world.Blasters.Len() > 0 {
		e.volley.age++
	}
}

// moveBlasters steps every blaster once. Blasters never wrap: one whose
// step would leave the grid or enter a black hole is retired.
func (e *Engine) moveBlasters() {
	bounds := e.world.bounds()
	e.world.Blasters.Each(func(i int, b *object.Blaster) {
		next := b.Pos.Step(b.Direction)
		if !bounds.InBounds(next) || e.world.Tiles.IsBlackHole(next) {
			e.world.Blasters.Clear(i)
			return
		}
		b.Pos = next
		e.hitBlaster(i, b)
	})
}
