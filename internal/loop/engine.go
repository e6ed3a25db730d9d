// Package loop provides the turn-driven game engine: intents, the per-turn
// update cycle, collision resolution and level progression.
//
// An Engine is not safe for concurrent use. Callers issue at most one intent
// followed by one AdvanceTurn, and read state through snapshots.
package loop

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacegame/internal/loop/config"
	"github.com/tomz197/spacegame/internal/object"
)

// Engine owns the simulation state of one single-player session.
type Engine struct {
	settings  config.Settings
	rng       *rand.Rand
	log       *log.Logger
	presenter Presenter

	world   WorldState
	player  *object.Player
	volley  volleyState
	turn    int // Starts at 1, incremented at the end of every AdvanceTurn
	played  int // Last turn completed, 0 before the first
	cleared int // Levels cleared this session
	points  int // Points collected on the current level

	outcome Outcome
	err     error // Set together with OutcomeFailed
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source. Every draw the engine makes goes
// through it, so a seeded source makes a session reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithSeed is WithRand for a fresh source seeded with seed.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithPresenter registers the adapter that receives a snapshot after
// construction and after every turn.
func WithPresenter(p Presenter) Option {
	return func(e *Engine) {
		e.presenter = p
	}
}

// WithLogger sets the logger used for turn and level events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New validates settings, generates the first level and publishes the
// initial snapshot.
func New(settings config.Settings, opts ...Option) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		settings: settings,
		turn:     1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}

	world, start, err := e.generate(0)
	if err != nil {
		return nil, fmt.Errorf("first level: %w", err)
	}
	e.world = world
	e.player = object.NewPlayer(settings.PlayerHull, start)

	// The first sweep is only drawn; damage is dealt from turn 2 on.
	e.world.Lasers = e.sweepLasers(e.world.Lasers)

	e.log.Info("game started", "player", start, "aliens", e.world.Aliens.Len(), "asteroids", e.world.Asteroids.Len())
	e.publish()
	return e, nil
}

// Settings returns the settings the engine was created with.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// Outcome returns the current session outcome.
func (e *Engine) Outcome() Outcome {
	return e.outcome
}

// Err returns the error that moved the engine to OutcomeFailed, if any.
func (e *Engine) Err() error {
	return e.err
}

// Turn returns the number of the next turn to be played.
func (e *Engine) Turn() int {
	return e.turn
}

// Cleared returns the number of levels cleared so far.
func (e *Engine) Cleared() int {
	return e.cleared
}

// Points returns the points collected on the current level.
func (e *Engine) Points() int {
	return e.points
}

// Chances returns the hazard chances the current level was generated with.
func (e *Engine) Chances() (blackHole, pulsar float64) {
	return e.settings.Chances(e.cleared)
}

// AdvanceTurn runs one turn of the simulation and returns the resulting
// outcome. Once the outcome is terminal the engine no longer changes and
// every call returns the same outcome (and, for OutcomeFailed, its error).
func (e *Engine) AdvanceTurn() (Outcome, error) {
	if e.outcome.Terminal() {
		return e.outcome, e.err
	}
	s := e.settings
	t := e.turn

	// ===== HAZARDS =====
	switch t % s.PulsarPeriod {
	case s.PulsarOnPhase:
		if n := e.world.Tiles.ActivatePulsars(); n > 0 {
			e.log.Debug("pulsars on", "turn", t, "cells", n)
		}
	case s.PulsarOffPhase:
		if n := e.world.Tiles.DeactivatePulsars(); n > 0 {
			e.log.Debug("pulsars off", "turn", t, "cells", n)
		}
	}

	// ===== ENTITIES =====
	if t%s.AsteroidPeriod == s.AsteroidPhase {
		e.moveAsteroids()
	}
	e.moveAliens()
	if t%2 == 0 {
		e.fireLasers()
	} else {
		e.world.Lasers = e.world.Lasers[:0]
	}
	e.advanceVolley()

	// ===== DAMAGE & PROGRESSION =====
	e.pulsarDamage()

	switch {
	case e.player.Hull() < 1:
		e.finish(OutcomeGameOver)
	case e.points >= s.PointsPerLevel && e.cleared < s.LevelCap:
		e.nextLevel()
	}

	e.checkInvariants()
	e.played = t
	e.publish()
	e.turn++
	return e.outcome, e.err
}

// finish moves the engine to a terminal outcome.
func (e *Engine) finish(o Outcome) {
	e.outcome = o
	e.log.Info("game finished", "outcome", o, "turn", e.turn, "level", e.cleared, "points", e.points, "hull", e.player.Hull())
}

// fail moves the engine to OutcomeFailed with err.
func (e *Engine) fail(err error) {
	e.err = err
	e.outcome = OutcomeFailed
	e.log.Error("game failed", "turn", e.turn, "level", e.cleared, "err", err)
}

// award adds n points to the current level.
func (e *Engine) award(n int) {
	e.points += n
}

func (e *Engine) checkInvariants() {
	hull := e.player.Hull()
	mustf(hull >= 0 && hull <= e.player.MaxHull(), "player hull %d outside [0,%d]", hull, e.player.MaxHull())
	e.world.Aliens.Each(func(i int, a *object.Alien) {
		mustf(!a.Destroyed(), "alien slot %d holds a destroyed ship", i)
		mustf(a.Hull() <= a.MaxHull(), "alien slot %d hull %d above %d", i, a.Hull(), a.MaxHull())
	})
	mustf(e.points >= 0, "negative points %d", e.points)
	bounds := e.world.bounds()
	mustf(bounds.InBounds(e.player.Pos), "player at %s outside the grid", e.player.Pos)
	mustf(!e.world.Tiles.IsBlackHole(e.player.Pos), "player inside a black hole at %s", e.player.Pos)
}

// mustf panics with a formatted message when cond is false. It guards
// internal invariants that no input can break.
func mustf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("loop: "+format, args...))
	}
}
