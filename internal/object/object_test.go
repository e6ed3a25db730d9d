package object

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/physics"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestShipHullClamps(t *testing.T) {
	p := NewPlayer(100, physics.Pos(5, 5))

	p.Damage(30)
	p.Damage(10)
	assert.Equal(t, 60, p.Hull())

	p.Damage(50)
	assert.Equal(t, 10, p.Hull())
	assert.Equal(t, 10, p.Damage(30), "only the remaining hull is absorbed")
	assert.Equal(t, 0, p.Hull())
	assert.True(t, p.Destroyed())

	a := NewAlien(50, physics.Pos(0, 0))
	a.Damage(5)
	assert.Equal(t, 5, a.Repair(10))
	assert.Equal(t, 50, a.Hull())
	assert.Equal(t, 0, a.Repair(10))
	assert.Equal(t, 50, a.Hull())
}

func TestShipRejectsNegativeAmounts(t *testing.T) {
	p := NewPlayer(100, physics.Pos(0, 0))
	assert.Panics(t, func() { p.Damage(-1) })
	assert.Panics(t, func() { p.Repair(-1) })
	assert.Panics(t, func() { NewAlien(0, physics.Pos(0, 0)) })
}

func TestSlots(t *testing.T) {
	s := NewSlots[Asteroid](3)
	assert.Equal(t, 3, s.Cap())
	assert.Zero(t, s.Len())

	i := s.Add(NewAsteroid(physics.Pos(1, 1), physics.Up))
	j := s.Add(NewAsteroid(physics.Pos(2, 2), physics.None))
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, FindAt(s, physics.Pos(2, 2)))
	assert.Equal(t, -1, FindAt(s, physics.Pos(0, 0)))

	s.Clear(0)
	assert.Nil(t, s.Get(0))
	assert.Equal(t, 0, s.Add(NewAsteroid(physics.Pos(3, 3), physics.Left)))

	assert.Panics(t, func() { s.Get(3) })
	assert.Panics(t, func() { s.Put(-1, nil) })

	s.Add(NewAsteroid(physics.Pos(0, 1), physics.Left))
	assert.Panics(t, func() { s.Add(NewAsteroid(physics.Pos(0, 2), physics.Left)) })

	s.Reset()
	assert.Zero(t, s.Len())
	assert.Equal(t, 3, s.Cap())
}

func TestSlotViewsAreCopies(t *testing.T) {
	s := NewSlots[Alien](2)
	s.Put(1, NewAlien(50, physics.Pos(4, 4)))

	views := s.Views()
	require.Len(t, views, 2)
	assert.Nil(t, views[0])

	views[1].Pos = physics.Pos(0, 0)
	views[1].Damage(20)
	assert.Equal(t, physics.Pos(4, 4), s.Get(1).Pos)
	assert.Equal(t, 50, s.Get(1).Hull())
}

func TestBlasterSlots(t *testing.T) {
	s := NewBlasterSlots()
	assert.Equal(t, 8, s.Cap())
	assert.Zero(t, s.Len())
}

func TestPoolDrawRemovesCells(t *testing.T) {
	pool := NewPool([]physics.Position{physics.Pos(0, 0), physics.Pos(1, 0), physics.Pos(2, 0)})
	rng := testRNG()

	seen := map[physics.Position]bool{}
	for i := 0; i < 3; i++ {
		pos, ok := pool.Draw(rng, nil)
		require.True(t, ok)
		assert.False(t, seen[pos], "cell %s drawn twice", pos)
		seen[pos] = true
		assert.True(t, pool.Claimed(pos))
	}
	_, ok := pool.Draw(rng, nil)
	assert.False(t, ok)
	assert.Equal(t, 3, pool.Total())
	assert.Zero(t, pool.Len())
}

func TestPlacementHasNoDuplicates(t *testing.T) {
	rng := testRNG()

	for round := 0; round < 50; round++ {
		m, err := level.Generate(level.Params{Width: 25, Height: 18, BlackHoleChance: 0.1, PulsarChance: 0.05}, rng)
		require.NoError(t, err)

		pool := NewPool(m.SpawnPool())
		playerPos, err := PlacePlayer(pool, rng)
		require.NoError(t, err)

		asteroids, err := PlaceAsteroids(pool, rng, pool.Total()/10)
		require.NoError(t, err)
		aliens, err := PlaceAliens(pool, rng, 6, m.Height, 50)
		require.NoError(t, err)

		assert.Equal(t, pool.Total(), asteroids.Cap())
		assert.Equal(t, pool.Total()/10, asteroids.Len())
		assert.Equal(t, 6, aliens.Len())

		occupied := map[physics.Position]string{playerPos: "player"}
		asteroids.Each(func(_ int, a *Asteroid) {
			assert.Equal(t, level.Space, m.At(a.Pos))
			_, dup := occupied[a.Pos]
			assert.False(t, dup, "asteroid on occupied cell %s", a.Pos)
			occupied[a.Pos] = "asteroid"
		})

		rows := map[int]bool{}
		aliens.Each(func(_ int, a *Alien) {
			assert.Equal(t, level.Space, m.At(a.Pos))
			_, dup := occupied[a.Pos]
			assert.False(t, dup, "alien on occupied cell %s", a.Pos)
			assert.False(t, rows[a.Pos.Y], "two aliens on row %d", a.Pos.Y)
			rows[a.Pos.Y] = true
			occupied[a.Pos] = "alien"
			assert.Equal(t, 50, a.Hull())
		})
	}
}

func TestPlaceAliensNeedsFreeRows(t *testing.T) {
	m := level.NewTileMap(4, 2)
	pool := NewPool(m.SpawnPool())

	_, err := PlaceAliens(pool, testRNG(), 3, m.Height, 50)
	assert.ErrorIs(t, err, ErrNoAlienRow)

	// Both cells of row 0 are taken, so only row 1 can host an alien.
	pool = NewPool(m.SpawnPool())
	for x := 0; x < 4; x++ {
		pool.Claim(physics.Pos(x, 0))
	}
	_, err = PlaceAliens(pool, testRNG(), 2, m.Height, 50)
	assert.ErrorIs(t, err, ErrNoAlienRow)
}

func TestPlacePlayerOnEmptyPool(t *testing.T) {
	_, err := PlacePlayer(NewPool(nil), testRNG())
	assert.ErrorIs(t, err, ErrNoVacancy)
}

func TestAsteroidHeadingsAreCardinal(t *testing.T) {
	rng := testRNG()
	seen := map[physics.Direction]bool{}
	for i := 0; i < 200; i++ {
		a := NewAsteroidRandom(physics.Pos(0, 0), rng)
		seen[a.Direction] = true
	}
	assert.Len(t, seen, 5)
	for d := range seen {
		assert.Contains(t, physics.Cardinal[:], d)
	}
}
