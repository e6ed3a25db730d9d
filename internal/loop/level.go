package loop

import (
	"fmt"

	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

// generate builds the tiles and populations for a level after cleared
// levels and returns them with the player's starting cell. Placement order
// is player, asteroids, aliens, each drawing from what the previous left.
func (e *Engine) generate(cleared int) (WorldState, physics.Position, error) {
	s := e.settings
	blackHole, pulsar := s.Chances(cleared)

	tiles, err := level.Generate(level.Params{
		Width:           s.Width,
		Height:          s.Height,
		BlackHoleChance: blackHole,
		PulsarChance:    pulsar,
		MaxDensity:      s.MaxHazardDensity,
	}, e.rng)
	if err != nil {
		return WorldState{}, physics.Position{}, err
	}

	pool := object.NewPool(tiles.SpawnPool())
	start, err := object.PlacePlayer(pool, e.rng)
	if err != nil {
		return WorldState{}, physics.Position{}, err
	}
	asteroids, err := object.PlaceAsteroids(pool, e.rng, pool.Total()/s.AsteroidDivisor)
	if err != nil {
		return WorldState{}, physics.Position{}, err
	}
	aliens, err := object.PlaceAliens(pool, e.rng, s.Aliens(cleared), tiles.Height, s.AlienHull)
	if err != nil {
		return WorldState{}, physics.Position{}, err
	}

	return WorldState{
		Tiles:     tiles,
		Aliens:    aliens,
		Asteroids: asteroids,
		Blasters:  object.NewBlasterSlots(),
		Lasers:    make([]object.Laser, 0, tiles.Cells()),
	}, start, nil
}

// nextLevel records a cleared level. At the level cap the session is won;
// otherwise a fresh world replaces the old one and the player keeps its
// hull but moves to a new starting cell.
func (e *Engine) nextLevel() {
	e.cleared++
	if e.cleared >= e.settings.LevelCap {
		e.finish(OutcomeVictory)
		return
	}

	world, start, err := e.generate(e.cleared)
	if err != nil {
		e.fail(fmt.Errorf("level %d: %w", e.cleared+1, err))
		return
	}
	e.world = world
	e.player.Pos = start
	e.points = 0
	e.volley = volleyState{}

	blackHole, pulsar := e.Chances()
	e.log.Info("level cleared", "turn", e.turn, "level", e.cleared, "hull", e.player.Hull(),
		"aliens", e.world.Aliens.Len(), "black_hole_chance", blackHole, "pulsar_chance", pulsar)
}
