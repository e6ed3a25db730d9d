// Package object defines the grid entities (player, aliens, asteroids,
// blasters, laser cells), the fixed-capacity slot arrays that hold them and
// the placement rules used when a level is populated.
package object

import (
	"fmt"

	"github.com/tomz197/spacegame/internal/physics"
)

// Entity is anything that occupies a single grid cell.
type Entity interface {
	Position() physics.Position
}

// Slots is a fixed-capacity array of optional entities. A nil slot means
// nothing is present at that index; the capacity never changes after
// creation.
type Slots[T any] struct {
	items []*T
}

// NewSlots creates capacity empty slots.
func NewSlots[T any](capacity int) *Slots[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Slots[T]{items: make([]*T, capacity)}
}

// Cap returns the number of slots.
func (s *Slots[T]) Cap() int {
	return len(s.items)
}

// Len returns the number of occupied slots.
func (s *Slots[T]) Len() int {
	n := 0
	for _, v := range s.items {
		if v != nil {
			n++
		}
	}
	return n
}

// Get returns the entity in slot i, or nil if the slot is empty.
func (s *Slots[T]) Get(i int) *T {
	s.check(i)
	return s.items[i]
}

// Put stores v in slot i, replacing any previous occupant.
func (s *Slots[T]) Put(i int, v *T) {
	s.check(i)
	s.items[i] = v
}

// Clear empties slot i.
func (s *Slots[T]) Clear(i int) {
	s.check(i)
	s.items[i] = nil
}

// Add stores v in the first empty slot and returns its index.
func (s *Slots[T]) Add(v *T) int {
	for i, cur := range s.items {
		if cur == nil {
			s.items[i] = v
			return i
		}
	}
	panic(fmt.Sprintf("object: all %d slots in use", len(s.items)))
}

// Reset empties every slot.
func (s *Slots[T]) Reset() {
	clear(s.items)
}

// Each calls fn for every occupied slot in index order. fn may clear or
// replace the slot it is given.
func (s *Slots[T]) Each(fn func(i int, v *T)) {
	for i, v := range s.items {
		if v != nil {
			fn(i, v)
		}
	}
}

// Views returns a copy of the slot array whose entries point at copies of
// the live entities, so callers can read it without touching engine state.
func (s *Slots[T]) Views() []*T {
	out := make([]*T, len(s.items))
	for i, v := range s.items {
		if v != nil {
			c := *v
			out[i] = &c
		}
	}
	return out
}

func (s *Slots[T]) check(i int) {
	if i < 0 || i >= len(s.items) {
		panic(fmt.Sprintf("object: slot %d out of range [0,%d)", i, len(s.items)))
	}
}

// FindAt returns the index of the first occupied slot whose entity sits at
// p, or -1.
func FindAt[T any, PT interface {
	*T
	Entity
}](s *Slots[T], p physics.Position) int {
	for i, v := range s.items {
		if v != nil && PT(v).Position() == p {
			return i
		}
	}
	return -1
}
