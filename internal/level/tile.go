// Package level owns the tile map: terrain classification, procedural
// hazard generation, the pulsar cycle and the vacancy pool used for spawning.
package level

import (
	"fmt"

	"github.com/tomz197/spacegame/internal/physics"
)

// TileType classifies a single grid cell.
type TileType int

const (
	Space TileType = iota
	BlackHole
	PulsarActive
	PulsarInactive
)

var tileNames = [...]string{
	Space:          "space",
	BlackHole:      "black-hole",
	PulsarActive:   "pulsar-active",
	PulsarInactive: "pulsar-inactive",
}

func (t TileType) String() string {
	if t < 0 || int(t) >= len(tileNames) {
		return fmt.Sprintf("TileType(%d)", int(t))
	}
	return tileNames[t]
}

// IsPulsar reports whether the tile is a pulsar in either phase.
func (t TileType) IsPulsar() bool {
	return t == PulsarActive || t == PulsarInactive
}

// IsHazard reports whether aliens and asteroids must stay off the tile.
func (t TileType) IsHazard() bool {
	return t == BlackHole || t.IsPulsar()
}

// TileMap is a fixed Width x Height grid holding exactly one TileType per cell.
type TileMap struct {
	physics.Bounds
	tiles []TileType // row-major: [y*Width + x]
}

// NewTileMap creates a map of the given size with every cell set to Space.
func NewTileMap(width, height int) *TileMap {
	return &TileMap{
		Bounds: physics.Bounds{Width: width, Height: height},
		tiles:  make([]TileType, width*height),
	}
}

// At returns the tile at p. p must be in bounds.
func (m *TileMap) At(p physics.Position) TileType {
	if !m.InBounds(p) {
		panic(fmt.Sprintf("level: position %s outside %dx%d map", p, m.Width, m.Height))
	}
	return m.tiles[m.Index(p)]
}

// Set replaces the tile at p. p must be in bounds.
func (m *TileMap) Set(p physics.Position, t TileType) {
	if !m.InBounds(p) {
		panic(fmt.Sprintf("level: position %s outside %dx%d map", p, m.Width, m.Height))
	}
	m.tiles[m.Index(p)] = t
}

// IsBlackHole reports whether p is a black hole.
func (m *TileMap) IsBlackHole(p physics.Position) bool {
	return m.At(p) == BlackHole
}

// Count returns how many cells hold tile t.
func (m *TileMap) Count(t TileType) int {
	n := 0
	for _, tile := range m.tiles {
		if tile == t {
			n++
		}
	}
	return n
}

// ActivatePulsars switches every inactive pulsar on and returns how many changed.
// Calling it again without an intervening deactivation changes nothing.
func (m *TileMap) ActivatePulsars() int {
	return m.swap(PulsarInactive, PulsarActive)
}

// DeactivatePulsars switches every active pulsar off and returns how many changed.
func (m *TileMap) DeactivatePulsars() int {
	return m.swap(PulsarActive, PulsarInactive)
}

func (m *TileMap) swap(from, to TileType) int {
	changed := 0
	for i, tile := range m.tiles {
		if tile == from {
			m.tiles[i] = to
			changed++
		}
	}
	return changed
}

// SpawnPool returns every Space cell in row-major order.
//
// The pool is recomputed on each call and never cached: callers that commit
// placements remove entries from their own copy only.
func (m *TileMap) SpawnPool() []physics.Position {
	pool := make([]physics.Position, 0, len(m.tiles))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.tiles[y*m.Width+x] == Space {
				pool = append(pool, physics.Pos(x, y))
			}
		}
	}
	return pool
}

// Clone returns an independent copy of the map.
func (m *TileMap) Clone() *TileMap {
	tiles := make([]TileType, len(m.tiles))
	copy(tiles, m.tiles)
	return &TileMap{Bounds: m.Bounds, tiles: tiles}
}
