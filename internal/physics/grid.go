package physics

// Bounds describes a Width x Height grid of cells.
//
// The player lives on a torus (Wrap), everything else is clipped at the
// edges (InBounds), so both views of the same rectangle are provided here.
type Bounds struct {
	Width  int
	Height int
}

// Cells returns the number of cells covered by the bounds.
func (b Bounds) Cells() int {
	return b.Width * b.Height
}

// InBounds reports whether p lies inside the grid.
func (b Bounds) InBounds(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Wrap normalises p onto the torus so that stepping off one edge
// re-enters from the opposite edge.
func (b Bounds) Wrap(p Position) Position {
	if b.Width > 0 {
		p.X %= b.Width
		if p.X < 0 {
			p.X += b.Width
		}
	}
	if b.Height > 0 {
		p.Y %= b.Height
		if p.Y < 0 {
			p.Y += b.Height
		}
	}
	return p
}

// Index converts an in-bounds position to a row-major cell index.
func (b Bounds) Index(p Position) int {
	return p.Y*b.Width + p.X
}

// Neighborhood calls fn for each in-bounds cell of the 3x3 box centred on p,
// p itself included. Cells outside the grid are skipped, not wrapped.
// If fn returns true, iteration stops early.
func (b Bounds) Neighborhood(p Position, fn func(q Position) bool) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(dx, dy)
			if !b.InBounds(q) {
				continue
			}
			if fn(q) {
				return
			}
		}
	}
}

// Ray calls fn for each in-bounds cell from p (exclusive) along d until the
// grid edge. Iteration stops when fn returns true.
func (b Bounds) Ray(p Position, d Direction, fn func(q Position) bool) {
	if d == None {
		return
	}
	for q := p.Step(d); b.InBounds(q); q = q.Step(d) {
		if fn(q) {
			return
		}
	}
}
