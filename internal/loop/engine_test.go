package loop

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/loop/config"
	"github.com/tomz197/spacegame/internal/object"
	"github.com/tomz197/spacegame/internal/physics"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(2024))
}

// newTestEngine returns an engine on a 25x18 all-space grid with no aliens,
// asteroids or lasers and the player at (5,5).
func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	s := config.Default()
	s.BlackHoleChance, s.PulsarChance = 0, 0

	e, err := New(s, append([]Option{WithRand(testRNG())}, opts...)...)
	require.NoError(t, err)

	e.world.Aliens.Reset()
	e.world.Asteroids.Reset()
	e.world.Lasers = e.world.Lasers[:0]
	e.player.Pos = physics.Pos(5, 5)
	return e
}

func addAlien(e *Engine, p physics.Position) *object.Alien {
	a := object.NewAlien(e.settings.AlienHull, p)
	e.world.Aliens.Add(a)
	return a
}

func addAsteroid(e *Engine, p physics.Position, d physics.Direction) *object.Asteroid {
	a := object.NewAsteroid(p, d)
	e.world.Asteroids.Add(a)
	return a
}

func advance(t *testing.T, e *Engine) Outcome {
	t.Helper()
	o, err := e.AdvanceTurn()
	require.NoError(t, err)
	return o
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := config.Default()
	s.LevelCap = 0
	_, err := New(s)
	assert.ErrorIs(t, err, config.ErrInvalidSettings)
}

func TestNewPopulatesFirstLevel(t *testing.T) {
	s := config.Default()
	e, err := New(s, WithRand(testRNG()))
	require.NoError(t, err)

	bh, p := level.Params{Width: s.Width, Height: s.Height, BlackHoleChance: s.BlackHoleChance, PulsarChance: s.PulsarChance}.Quotas()
	tiles := e.world.Tiles
	assert.Equal(t, bh, tiles.Count(level.BlackHole))
	assert.Equal(t, p, tiles.Count(level.PulsarActive)+tiles.Count(level.PulsarInactive))

	assert.Equal(t, 2, e.world.Aliens.Len())
	assert.Equal(t, s.Height, e.world.Aliens.Cap())
	assert.Equal(t, object.VolleySize, e.world.Blasters.Cap())
	assert.Zero(t, e.world.Blasters.Len())
	assert.Equal(t, level.Space, tiles.At(e.player.Pos))
	assert.Equal(t, 100, e.player.Hull())
	assert.Equal(t, 1, e.Turn())

	// The opening sweep is visible but has not hurt anyone.
	assert.Equal(t, e.sweepLasers(make([]object.Laser, 0)), e.world.Lasers)
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Snapshot {
		e, err := New(config.Default(), WithSeed(99))
		require.NoError(t, err)
		for _, i := range []Intent{IntentRight, IntentFire, IntentDown, IntentNone, IntentLeft, IntentUp} {
			e.Do(i)
			_, err := e.AdvanceTurn()
			require.NoError(t, err)
		}
		return e.Snapshot()
	}
	assert.Equal(t, play(), play())
}

func TestToroidalMoves(t *testing.T) {
	e := newTestEngine(t)

	e.player.Pos = physics.Pos(0, 5)
	e.MoveLeft()
	assert.Equal(t, physics.Pos(24, 5), e.player.Pos)
	e.MoveRight()
	assert.Equal(t, physics.Pos(0, 5), e.player.Pos)

	e.player.Pos = physics.Pos(3, 0)
	e.MoveUp()
	assert.Equal(t, physics.Pos(3, 17), e.player.Pos)
	e.MoveDown()
	assert.Equal(t, physics.Pos(3, 0), e.player.Pos)
}

func TestBlackHoleBlocksMoveWithPenalty(t *testing.T) {
	e := newTestEngine(t)
	e.player.Pos = physics.Pos(0, 5)
	e.world.Tiles.Set(physics.Pos(24, 5), level.BlackHole)

	e.points = 2
	e.MoveLeft()
	assert.Equal(t, physics.Pos(0, 5), e.player.Pos)
	assert.Equal(t, 1, e.points)

	e.points = 0
	e.MoveLeft()
	assert.Equal(t, physics.Pos(0, 5), e.player.Pos)
	assert.Zero(t, e.points, "points never go negative")
}

func TestMoveCollectsAsteroids(t *testing.T) {
	e := newTestEngine(t)
	addAsteroid(e, physics.Pos(6, 5), physics.None)
	addAsteroid(e, physics.Pos(6, 5), physics.Up)

	e.MoveRight()
	assert.Equal(t, 2, e.points)
	assert.Zero(t, e.world.Asteroids.Len())

	// A blocked move still collects what drifted onto the player.
	e.world.Tiles.Set(physics.Pos(7, 5), level.BlackHole)
	addAsteroid(e, physics.Pos(6, 5), physics.None)
	e.MoveRight()
	assert.Equal(t, physics.Pos(6, 5), e.player.Pos)
	assert.Equal(t, 2, e.points, "one point lost to the bump, one gained")
	assert.Zero(t, e.world.Asteroids.Len())
}

func TestHullScenario(t *testing.T) {
	e := newTestEngine(t)
	addAlien(e, physics.Pos(6, 5))

	e.MoveRight()
	assert.Equal(t, 70, e.player.Hull(), "melee hit")

	e.world.Tiles.Set(physics.Pos(5, 4), level.PulsarActive)
	e.pulsarDamage()
	assert.Equal(t, 60, e.player.Hull(), "pulsar hit")

	e.player.Damage(50)
	e.MoveLeft()
	e.MoveRight()
	assert.Equal(t, 0, e.player.Hull(), "a 30 hit on 10 hull stops at zero")
}

func TestPulsarDamageCoversFullBox(t *testing.T) {
	e := newTestEngine(t)
	e.world.Tiles.Set(physics.Pos(4, 4), level.PulsarActive)
	e.world.Tiles.Set(physics.Pos(6, 6), level.PulsarActive)
	e.world.Tiles.Set(physics.Pos(6, 4), level.PulsarActive)
	e.world.Tiles.Set(physics.Pos(4, 6), level.PulsarInactive)
	e.world.Tiles.Set(physics.Pos(7, 5), level.PulsarActive)

	e.pulsarDamage()
	assert.Equal(t, 70, e.player.Hull())
}

func TestPulsarDamageDoesNotWrap(t *testing.T) {
	e := newTestEngine(t)
	e.player.Pos = physics.Pos(0, 0)
	e.world.Tiles.Set(physics.Pos(24, 17), level.PulsarActive)
	e.world.Tiles.Set(physics.Pos(24, 0), level.PulsarActive)
	e.world.Tiles.Set(physics.Pos(0, 17), level.PulsarActive)

	e.pulsarDamage()
	assert.Equal(t, 100, e.player.Hull())

	e.world.Tiles.Set(physics.Pos(1, 1), level.PulsarActive)
	e.pulsarDamage()
	assert.Equal(t, 90, e.player.Hull())
}

func TestPulsarSchedule(t *testing.T) {
	e := newTestEngine(t)
	p := physics.Pos(15, 12)
	e.world.Tiles.Set(p, level.PulsarInactive)

	e.turn = 20
	advance(t, e)
	assert.Equal(t, level.PulsarActive, e.world.Tiles.At(p))

	e.turn = 25
	advance(t, e)
	assert.Equal(t, level.PulsarInactive, e.world.Tiles.At(p))
	assert.Equal(t, 100, e.player.Hull())
}

func TestLasersOnEvenTurns(t *testing.T) {
	e := newTestEngine(t)
	// The alien is boxed in by pulsars so it cannot drift.
	addAlien(e, physics.Pos(2, 3))
	e.world.Tiles.Set(physics.Pos(1, 3), level.PulsarInactive)
	e.world.Tiles.Set(physics.Pos(3, 3), level.PulsarInactive)
	e.world.Tiles.Set(physics.Pos(8, 3), level.BlackHole)
	e.player.Pos = physics.Pos(5, 3)

	e.turn = 2
	advance(t, e)
	want := []object.Laser{
		{Pos: physics.Pos(3, 3)},
		{Pos: physics.Pos(4, 3)},
		{Pos: physics.Pos(5, 3)},
		{Pos: physics.Pos(6, 3)},
		{Pos: physics.Pos(7, 3)},
	}
	assert.Equal(t, want, e.world.Lasers)
	assert.Equal(t, 80, e.player.Hull())

	advance(t, e)
	assert.Empty(t, e.world.Lasers)
	assert.Equal(t, 80, e.player.Hull())
}

func TestLaserRunsToEdge(t *testing.T) {
	e := newTestEngine(t)
	addAlien(e, physics.Pos(20, 0))

	lasers := e.sweepLasers(nil)
	require.Len(t, lasers, 4)
	assert.Equal(t, physics.Pos(24, 0), lasers[3].Pos)

	addAlien(e, physics.Pos(24, 1))
	assert.Len(t, e.sweepLasers(nil), 4, "an alien on the last column fires nothing")
}

func TestAlienHealsOnAsteroid(t *testing.T) {
	e := newTestEngine(t)
	a := addAlien(e, physics.Pos(2, 3))
	e.world.Tiles.Set(physics.Pos(1, 3), level.PulsarInactive)
	e.world.Tiles.Set(physics.Pos(3, 3), level.PulsarInactive)
	a.Damage(30)
	rock := addAsteroid(e, physics.Pos(2, 3), physics.None)

	e.moveAliens()
	assert.Equal(t, physics.Pos(2, 3), a.Pos)
	assert.Equal(t, 30, a.Hull())
	assert.Equal(t, 1, e.world.Asteroids.Len())
	assert.NotEqual(t, a.Pos, rock.Pos)
	assert.NotEqual(t, e.player.Pos, rock.Pos)
	assert.Equal(t, level.Space, e.world.Tiles.At(rock.Pos))
}

func TestAlienHealIsClamped(t *testing.T) {
	e := newTestEngine(t)
	a := addAlien(e, physics.Pos(2, 3))
	e.world.Tiles.Set(physics.Pos(1, 3), level.BlackHole)
	e.world.Tiles.Set(physics.Pos(3, 3), level.BlackHole)
	addAsteroid(e, physics.Pos(2, 3), physics.None)

	e.moveAliens()
	assert.Equal(t, 50, a.Hull())
}

func TestAlienDropsAsteroidWithNoVacantCell(t *testing.T) {
	e := newTestEngine(t)
	a := addAlien(e, physics.Pos(2, 3))
	tiles := e.world.Tiles
	for y := 0; y < tiles.Height; y++ {
		for x := 0; x < tiles.Width; x++ {
			if p := physics.Pos(x, y); p != a.Pos && p != e.player.Pos {
				tiles.Set(p, level.PulsarInactive)
			}
		}
	}
	a.Damage(20)
	addAsteroid(e, physics.Pos(2, 3), physics.None)

	e.moveAliens()
	assert.Equal(t, physics.Pos(2, 3), a.Pos)
	assert.Zero(t, e.world.Asteroids.Len())
	assert.Equal(t, 40, a.Hull())
}

func TestAlienDoesNotStepOntoPlayer(t *testing.T) {
	e := newTestEngine(t)
	a := addAlien(e, physics.Pos(2, 3))
	e.world.Tiles.Set(physics.Pos(1, 3), level.PulsarInactive)
	e.player.Pos = physics.Pos(3, 3)

	for i := 0; i < 20; i++ {
		e.moveAliens()
		assert.Equal(t, physics.Pos(2, 3), a.Pos)
	}
	assert.Equal(t, 100, e.player.Hull())
}

func TestAlienDriftsAlongRow(t *testing.T) {
	e := newTestEngine(t)
	a := addAlien(e, physics.Pos(10, 8))
	e.world.Tiles.Set(physics.Pos(14, 8), level.BlackHole)
	e.world.Tiles.Set(physics.Pos(6, 8), level.PulsarActive)

	prev := a.Pos
	for i := 0; i < 100; i++ {
		e.moveAliens()
		assert.Equal(t, 8, a.Pos.Y)
		assert.LessOrEqual(t, abs(a.Pos.X-prev.X), 1)
		assert.Equal(t, level.Space, e.world.Tiles.At(a.Pos))
		prev = a.Pos
	}
}

func TestAsteroidDrift(t *testing.T) {
	e := newTestEngine(t)
	e.world.Tiles.Set(physics.Pos(7, 10), level.PulsarActive)

	plain := addAsteroid(e, physics.Pos(3, 3), physics.Right)
	edge := addAsteroid(e, physics.Pos(24, 7), physics.Right)
	hazard := addAsteroid(e, physics.Pos(7, 9), physics.Down)
	still := addAsteroid(e, physics.Pos(12, 12), physics.None)

	e.moveAsteroids()

	assert.Equal(t, physics.Pos(4, 3), plain.Pos)
	assert.Equal(t, physics.Pos(12, 12), still.Pos)

	assert.True(t, e.world.bounds().InBounds(edge.Pos))
	assert.Equal(t, level.Space, e.world.Tiles.At(edge.Pos))
	assert.Equal(t, physics.Right, edge.Direction)

	assert.NotEqual(t, physics.Pos(7, 10), hazard.Pos)
	assert.Equal(t, level.Space, e.world.Tiles.At(hazard.Pos))
	assert.Equal(t, physics.Down, hazard.Direction)
	assert.Equal(t, 4, e.world.Asteroids.Len())
}

func TestAsteroidDriftSchedule(t *testing.T) {
	e := newTestEngine(t)
	rock := addAsteroid(e, physics.Pos(3, 3), physics.Down)

	e.turn = 4
	advance(t, e)
	assert.Equal(t, physics.Pos(3, 3), rock.Pos)
	advance(t, e)
	assert.Equal(t, physics.Pos(3, 4), rock.Pos)
	advance(t, e)
	assert.Equal(t, physics.Pos(3, 4), rock.Pos)
}

func TestFireScenario(t *testing.T) {
	e := newTestEngine(t)
	e.Fire()

	require.Equal(t, 8, e.world.Blasters.Len())
	for i, d := range physics.Compass {
		b := e.world.Blasters.Get(i)
		require.NotNil(t, b, "slot %d", i)
		assert.Equal(t, physics.Pos(5, 5).Step(d), b.Pos)
		assert.Equal(t, d, b.Direction)
	}
}

func TestFireSkipsOffGridAndBlackHoles(t *testing.T) {
	e := newTestEngine(t)
	e.player.Pos = physics.Pos(0, 0)
	e.world.Tiles.Set(physics.Pos(1, 1), level.BlackHole)

	e.Fire()
	// Only Right and Down remain: the other cells are off the grid or the black hole.
	assert.Equal(t, 2, e.world.Blasters.Len())
	assert.NotNil(t, e.world.Blasters.Get(1))
	assert.NotNil(t, e.world.Blasters.Get(2))
}

func TestFireBlockedWhileVolleyAlive(t *testing.T) {
	e := newTestEngine(t)
	e.Fire()
	first := e.world.Blasters.Get(0)
	require.False(t, e.CanFire())

	e.MoveRight()
	e.Fire()
	assert.Same(t, first, e.world.Blasters.Get(0))
	assert.Equal(t, physics.Pos(4, 5), first.Pos)
}

func TestVolleyLifecycle(t *testing.T) {
	e := newTestEngine(t)
	e.player.Pos = physics.Pos(12, 9)

	e.Fire()
	advance(t, e)
	right := e.world.Blasters.Get(1)
	require.NotNil(t, right)
	assert.Equal(t, physics.Pos(13, 9), right.Pos, "not advanced on the firing turn")

	for k := 1; k <= 5; k++ {
		advance(t, e)
		assert.Equal(t, physics.Pos(13+k, 9), right.Pos)
		assert.Equal(t, k, e.volley.age)
	}

	advance(t, e)
	assert.Zero(t, e.world.Blasters.Len(), "volley cleared after its lifetime")
	assert.True(t, e.CanFire())

	e.Fire()
	assert.Equal(t, 8, e.world.Blasters.Len())
}

func TestBlastersDoNotWrap(t *testing.T) {
	e := newTestEngine(t)
	e.world.Tiles.Set(physics.Pos(2, 3), level.BlackHole)
	e.world.Blasters.Put(0, object.NewBlaster(physics.Pos(3, 3), physics.Left))
	e.world.Blasters.Put(1, object.NewBlaster(physics.Pos(24, 3), physics.Right))
	e.world.Blasters.Put(3, object.NewBlaster(physics.Pos(8, 0), physics.Up))
	e.world.Blasters.Put(6, object.NewBlaster(physics.Pos(10, 10), physics.DownRight))

	e.moveBlasters()
	assert.Nil(t, e.world.Blasters.Get(0), "black hole")
	assert.Nil(t, e.world.Blasters.Get(1), "right edge")
	assert.Nil(t, e.world.Blasters.Get(3), "top edge")
	require.NotNil(t, e.world.Blasters.Get(6))
	assert.Equal(t, physics.Pos(11, 11), e.world.Blasters.Get(6).Pos)
}

func TestBlasterHits(t *testing.T) {
	e := newTestEngine(t)
	addAsteroid(e, physics.Pos(6, 5), physics.None)
	alien := addAlien(e, physics.Pos(5, 7))

	e.Fire()
	assert.Equal(t, 1, e.points, "asteroid on a spawn cell is hit at once")
	assert.Zero(t, e.world.Asteroids.Len())
	assert.NotNil(t, e.world.Blasters.Get(1), "blaster passes through asteroids")

	e.moveBlasters()
	assert.Equal(t, 20, alien.Hull())
	assert.Nil(t, e.world.Blasters.Get(2), "blaster consumed by the alien")

	e.world.Blasters.Put(2, object.NewBlaster(physics.Pos(5, 6), physics.Down))
	e.moveBlasters()
	assert.Zero(t, e.world.Aliens.Len(), "destroyed alien leaves its slot")
}

func TestAutoFire(t *testing.T) {
	e := newTestEngine(t)
	e.settings.AutoFire = true

	advance(t, e)
	assert.Equal(t, 8, e.world.Blasters.Len())
	assert.Equal(t, physics.Pos(6, 5), e.world.Blasters.Get(1).Pos)
}

func TestLevelClear(t *testing.T) {
	e := newTestEngine(t)
	e.cleared = 3
	e.points = 10
	e.player.Damage(25)
	e.Fire()

	assert.Equal(t, OutcomeRunning, advance(t, e))
	assert.Equal(t, 4, e.Cleared())
	assert.Zero(t, e.Points())
	assert.Equal(t, 75, e.player.Hull())
	assert.Zero(t, e.world.Blasters.Len())
	assert.Equal(t, 6, e.world.Aliens.Len())
	assert.Equal(t, level.Space, e.world.Tiles.At(e.player.Pos))

	bh, p := e.Chances()
	assert.InDelta(t, 0.04, bh, 1e-9)
	assert.InDelta(t, 0.04, p, 1e-9)

	wantBH, wantP := level.Params{Width: 25, Height: 18, BlackHoleChance: bh, PulsarChance: p}.Quotas()
	tiles := e.world.Tiles
	assert.Equal(t, wantBH, tiles.Count(level.BlackHole))
	assert.Equal(t, wantP, tiles.Count(level.PulsarActive)+tiles.Count(level.PulsarInactive))
}

func TestLevelClearRepositionsPlayer(t *testing.T) {
	moved := 0
	for seed := int64(1); seed <= 8; seed++ {
		e := newTestEngine(t, WithRand(rand.New(rand.NewSource(seed))))
		e.points = e.settings.PointsPerLevel

		advance(t, e)
		require.Equal(t, 1, e.Cleared())
		p := e.player.Pos
		if p != physics.Pos(5, 5) {
			moved++
		}
		assert.Equal(t, level.Space, e.world.Tiles.At(p))
		assert.Equal(t, -1, e.world.alienAt(p), "seed %d", seed)
		e.world.asteroidsAt(p, func(int, *object.Asteroid) {
			t.Errorf("seed %d: asteroid placed on the player at %s", seed, p)
		})
	}
	assert.Positive(t, moved, "the player never left its old cell")
}

func TestVictoryAtCap(t *testing.T) {
	var snaps []Snapshot
	e := newTestEngine(t, WithPresenter(PresenterFunc(func(s Snapshot) {
		snaps = append(snaps, s)
	})))
	e.cleared = 9
	e.points = 10
	tiles := e.world.Tiles

	assert.Equal(t, OutcomeVictory, advance(t, e))
	assert.Equal(t, 10, e.Cleared())
	assert.Same(t, tiles, e.world.Tiles, "no level generated past the cap")
	require.Len(t, snaps, 2)
	assert.Equal(t, OutcomeVictory, snaps[1].Outcome)

	turn := e.Turn()
	pos := e.player.Pos
	e.MoveLeft()
	e.Fire()
	assert.Equal(t, OutcomeVictory, advance(t, e))
	assert.Equal(t, turn, e.Turn())
	assert.Equal(t, pos, e.player.Pos)
	assert.Zero(t, e.world.Blasters.Len())
	assert.Len(t, snaps, 2)
}

func TestGameOver(t *testing.T) {
	e := newTestEngine(t)
	addAlien(e, physics.Pos(6, 5))
	e.player.Damage(90)

	e.MoveRight()
	assert.Equal(t, 0, e.player.Hull())
	assert.Equal(t, OutcomeGameOver, advance(t, e))
	assert.Equal(t, OutcomeGameOver, advance(t, e))
	assert.Equal(t, OutcomeGameOver, e.Snapshot().Outcome)
}

func TestFailedLevelIsFatal(t *testing.T) {
	s := config.Default()
	s.Height = 2
	s.BlackHoleChance, s.PulsarChance = 0, 0
	e, err := New(s, WithRand(testRNG()))
	require.NoError(t, err)

	// The next level needs three aliens on two rows.
	e.points = s.PointsPerLevel
	o, err := e.AdvanceTurn()
	assert.Equal(t, OutcomeFailed, o)
	assert.ErrorIs(t, err, object.ErrNoAlienRow)

	o, err2 := e.AdvanceTurn()
	assert.Equal(t, OutcomeFailed, o)
	assert.Equal(t, err, err2)
}

func TestSnapshotIsDetached(t *testing.T) {
	e := newTestEngine(t)
	addAlien(e, physics.Pos(9, 9))
	e.Fire()

	snap := e.Snapshot()
	snap.Tiles.Set(physics.Pos(0, 0), level.BlackHole)
	snap.Player.Pos = physics.Pos(1, 1)
	snap.Blasters[0].Pos = physics.Pos(2, 2)
	snap.Aliens[0].Damage(10)

	assert.Equal(t, level.Space, e.world.Tiles.At(physics.Pos(0, 0)))
	assert.Equal(t, physics.Pos(5, 5), e.player.Pos)
	assert.Equal(t, physics.Pos(4, 5), e.world.Blasters.Get(0).Pos)
	assert.Equal(t, 50, e.world.Aliens.Get(0).Hull())
}

func TestDoDispatchesIntents(t *testing.T) {
	e := newTestEngine(t)
	e.Do(IntentUp)
	e.Do(IntentRight)
	e.Do(IntentNone)
	assert.Equal(t, physics.Pos(6, 4), e.player.Pos)

	e.Do(IntentFire)
	assert.Equal(t, 8, e.world.Blasters.Len())
	assert.Equal(t, "fire", IntentFire.String())
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestInvariantViolationsPanic(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(e *Engine)
	}{
		{"player in black hole", func(e *Engine) {
			e.world.Tiles.Set(e.player.Pos, level.BlackHole)
		}},
		{"negative points", func(e *Engine) {
			e.points = -1
		}},
		{"destroyed alien kept", func(e *Engine) {
			a := addAlien(e, physics.Pos(9, 9))
			a.Damage(a.MaxHull())
		}},
		{"player off grid", func(e *Engine) {
			e.player.Pos = physics.Pos(-1, 5)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			require.NotPanics(t, e.checkInvariants)
			tt.corrupt(e)
			assert.Panics(t, e.checkInvariants)
		})
	}
}
