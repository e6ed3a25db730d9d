package object

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/tomz197/spacegame/internal/physics"
)

var (
	// ErrNoVacancy is returned when a placement pass runs out of vacant cells.
	ErrNoVacancy = errors.New("no vacant cell left")
	// ErrNoAlienRow is returned when every row already holds an alien or has
	// no vacant cell left.
	ErrNoAlienRow = errors.New("no free row left for an alien")
)

// Pool is the working copy of a vacancy pool for one placement pass.
// Committed cells are removed from it so later draws in the same pass
// cannot land on them; the level's own tiles are never touched.
type Pool struct {
	cells   []physics.Position
	claimed mapset.Set[physics.Position]
	total   int
}

// NewPool wraps a freshly computed vacancy list. The slice is owned by the
// pool afterwards.
func NewPool(cells []physics.Position) *Pool {
	return &Pool{
		cells:   cells,
		claimed: mapset.New[physics.Position](),
		total:   len(cells),
	}
}

// Len returns the number of cells still available.
func (p *Pool) Len() int {
	return len(p.cells)
}

// Total returns the pool size before any placement.
func (p *Pool) Total() int {
	return p.total
}

// Claimed reports whether pos was committed by an earlier draw or Claim.
func (p *Pool) Claimed(pos physics.Position) bool {
	return p.claimed.Has(pos)
}

// Claim removes pos from the pool, e.g. for an entity that was positioned
// outside this pass.
func (p *Pool) Claim(pos physics.Position) {
	p.claimed.Put(pos)
	for i, c := range p.cells {
		if c == pos {
			p.remove(i)
			return
		}
	}
}

// Draw picks a cell uniformly among the remaining cells accepted by the
// filter (nil accepts everything), commits it and returns it.
func (p *Pool) Draw(rng *rand.Rand, accept func(physics.Position) bool) (physics.Position, bool) {
	candidates := make([]int, 0, len(p.cells))
	for i, c := range p.cells {
		if accept == nil || accept(c) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return physics.Position{}, false
	}
	i := candidates[rng.Intn(len(candidates))]
	pos := p.cells[i]
	p.remove(i)
	p.claimed.Put(pos)
	return pos, true
}

func (p *Pool) remove(i int) {
	p.cells = append(p.cells[:i], p.cells[i+1:]...)
}

// PlacePlayer draws a cell for the player.
func PlacePlayer(pool *Pool, rng *rand.Rand) (physics.Position, error) {
	pos, ok := pool.Draw(rng, nil)
	if !ok {
		return physics.Position{}, fmt.Errorf("place player: %w", ErrNoVacancy)
	}
	return pos, nil
}

// PlaceAsteroids places count asteroids with random headings. The slot
// array is sized to the pool's original size.
func PlaceAsteroids(pool *Pool, rng *rand.Rand, count int) (*Slots[Asteroid], error) {
	slots := NewSlots[Asteroid](pool.Total())
	if count > slots.Cap() {
		return nil, fmt.Errorf("place %d asteroids in %d slots: %w", count, slots.Cap(), ErrNoVacancy)
	}
	for i := 0; i < count; i++ {
		pos, ok := pool.Draw(rng, nil)
		if !ok {
			return nil, fmt.Errorf("place asteroid %d of %d: %w", i+1, count, ErrNoVacancy)
		}
		slots.Put(i, NewAsteroidRandom(pos, rng))
	}
	return slots, nil
}

// PlaceAliens places count aliens, at most one per row, on cells not yet
// claimed in this pass. The slot array holds one slot per row.
func PlaceAliens(pool *Pool, rng *rand.Rand, count, rows, maxHull int) (*Slots[Alien], error) {
	slots := NewSlots[Alien](rows)
	if count > rows {
		return nil, fmt.Errorf("place %d aliens on %d rows: %w", count, rows, ErrNoAlienRow)
	}
	used := mapset.New[int]()
	for i := 0; i < count; i++ {
		pos, ok := pool.Draw(rng, func(c physics.Position) bool {
			return !used.Has(c.Y)
		})
		if !ok {
			return nil, fmt.Errorf("place alien %d of %d: %w", i+1, count, ErrNoAlienRow)
		}
		used.Put(pos.Y)
		slots.Put(i, NewAlien(maxHull, pos))
	}
	return slots, nil
}
