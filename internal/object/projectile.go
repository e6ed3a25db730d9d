package object

import "github.com/tomz197/spacegame/internal/physics"

// VolleySize is the number of blaster slots, one per compass heading.
const VolleySize = len(physics.Compass)

// Blaster is a single projectile of a volley. It travels one cell per turn
// along its heading and never wraps.
type Blaster struct {
	Pos       physics.Position
	Direction physics.Direction
}

// NewBlaster creates a blaster at pos heading d.
func NewBlaster(pos physics.Position, d physics.Direction) *Blaster {
	return &Blaster{Pos: pos, Direction: d}
}

// Position returns the blaster's cell.
func (b *Blaster) Position() physics.Position {
	return b.Pos
}

// NewBlasterSlots returns VolleySize empty slots. Slot i always carries
// heading physics.Compass[i].
func NewBlasterSlots() *Slots[Blaster] {
	return NewSlots[Blaster](VolleySize)
}

// Laser is one cell of an alien laser sweep. Lasers live for a single turn.
type Laser struct {
	Pos physics.Position
}

// Position returns the laser cell.
func (l Laser) Position() physics.Position {
	return l.Pos
}
