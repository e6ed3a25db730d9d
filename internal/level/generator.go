package level

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrHazardQuota is returned when the requested hazard density cannot be
// satisfied: either the quotas exceed the grid or the configured safety
// threshold.
var ErrHazardQuota = errors.New("hazard quota exceeds available space")

// Params controls level generation.
type Params struct {
	Width           int
	Height          int
	BlackHoleChance float64
	PulsarChance    float64
	// MaxDensity caps BlackHoleChance+PulsarChance. Zero disables the cap.
	MaxDensity float64
}

// Quotas returns floor(cells*chance) for black holes and pulsars.
func (p Params) Quotas() (blackHoles, pulsars int) {
	cells := float64(p.Width * p.Height)
	return int(cells * p.BlackHoleChance), int(cells * p.PulsarChance)
}

// Generate builds a fresh map: every cell starts as Space, then the black
// hole quota and the pulsar quota are placed on cells drawn uniformly from
// the Space cells that remain. Each pulsar starts active or inactive on a
// coin flip.
func Generate(p Params, rng *rand.Rand) (*TileMap, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("generate %dx%d level: invalid size", p.Width, p.Height)
	}
	if p.BlackHoleChance < 0 || p.PulsarChance < 0 {
		return nil, fmt.Errorf("generate level: negative hazard chance (black holes %.2f, pulsars %.2f)",
			p.BlackHoleChance, p.PulsarChance)
	}
	if p.MaxDensity > 0 && p.BlackHoleChance+p.PulsarChance > p.MaxDensity {
		return nil, fmt.Errorf("generate level: density %.2f above %.2f: %w",
			p.BlackHoleChance+p.PulsarChance, p.MaxDensity, ErrHazardQuota)
	}

	blackHoles, pulsars := p.Quotas()
	m := NewTileMap(p.Width, p.Height)
	if blackHoles+pulsars > len(m.tiles) {
		return nil, fmt.Errorf("generate level: %d hazards on %d cells: %w",
			blackHoles+pulsars, len(m.tiles), ErrHazardQuota)
	}

	// free holds the indices of cells still set to Space; a placed cell is
	// swapped to the tail and dropped so every draw hits a vacant cell.
	free := make([]int, len(m.tiles))
	for i := range free {
		free[i] = i
	}
	take := func() int {
		j := rng.Intn(len(free))
		idx := free[j]
		free[j] = free[len(free)-1]
		free = free[:len(free)-1]
		return idx
	}

	for i := 0; i < blackHoles; i++ {
		m.tiles[take()] = BlackHole
	}
	for i := 0; i < pulsars; i++ {
		if rng.Intn(2) == 0 {
			m.tiles[take()] = PulsarActive
		} else {
			m.tiles[take()] = PulsarInactive
		}
	}

	return m, nil
}
