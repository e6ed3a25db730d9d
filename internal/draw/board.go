// Package draw renders game snapshots as ANSI text.
package draw

import (
	"fmt"
	"strings"

	"github.com/tomz197/spacegame/internal/level"
	"github.com/tomz197/spacegame/internal/loop"
	"github.com/tomz197/spacegame/internal/physics"
)

// ANSI colours
const (
	ColorReset        = "\033[0m"
	ColorDim          = "\033[2m"
	ColorRed          = "\033[31m"
	ColorGreen        = "\033[32m"
	ColorYellow       = "\033[33m"
	ColorMagenta      = "\033[35m"
	ColorBrightYellow = "\033[93m"
	ColorBrightCyan   = "\033[96m"
	ColorBrightWhite  = "\033[97m"
)

// Glyphs, drawn in this order so later layers cover earlier ones.
var (
	glyphSpace          = ColorDim + "." + ColorReset
	glyphBlackHole      = ColorMagenta + "@" + ColorReset
	glyphPulsarActive   = ColorBrightYellow + "#" + ColorReset
	glyphPulsarInactive = ColorDim + ColorYellow + "+" + ColorReset
	glyphLaser          = ColorRed + "-" + ColorReset
	glyphAsteroid       = ColorYellow + "o" + ColorReset
	glyphBlaster        = ColorBrightWhite + "*" + ColorReset
	glyphAlien          = ColorRed + "W" + ColorReset
	glyphPlayer         = ColorBrightCyan + "A" + ColorReset
)

// Layout
const (
	CellWidth = 2  // Terminal columns per grid cell
	hudRows   = 2  // Status lines above the board
	barWidth  = 20 // Hull bar cells
)

// BoardSize returns the terminal columns and rows a width x height board
// needs, HUD and footer included.
func BoardSize(width, height int) (cols, rows int) {
	return width*CellWidth + 3, hudRows + height + 4
}

// Centre returns the offsets that centre an area of cols x rows in a
// terminal of termWidth x termHeight. Offsets never go negative.
func Centre(termWidth, termHeight, cols, rows int) (offsetCol, offsetRow int) {
	return max(0, (termWidth-cols)/2), max(0, (termHeight-rows)/2)
}

// Board renders snapshots through a ChunkWriter.
type Board struct {
	cw    *ChunkWriter
	cells []string
}

// NewBoard creates a renderer writing to cw.
func NewBoard(cw *ChunkWriter) *Board {
	return &Board{cw: cw}
}

// Render writes one full frame for s. note, if not empty, is shown in the
// footer.
func (b *Board) Render(s loop.Snapshot, note string) {
	w, h := s.Tiles.Width, s.Tiles.Height
	b.layout(s)

	cw := b.cw
	b.drawHUD(s)

	cw.WriteAt(1, hudRows+1, "+"+strings.Repeat("-", w*CellWidth+1)+"+")
	for y := 0; y < h; y++ {
		cw.MoveCursor(1, hudRows+2+y)
		cw.WriteByte('|')
		for x := 0; x < w; x++ {
			cw.WriteByte(' ')
			cw.WriteString(b.cells[y*w+x])
		}
		cw.WriteString(" |")
	}
	cw.WriteAt(1, hudRows+2+h, "+"+strings.Repeat("-", w*CellWidth+1)+"+")

	footer := "WASD/arrows move  SPACE fire  . wait  Q quit"
	if s.Outcome.Terminal() {
		b.drawBanner(s, w, h)
		footer = "R new game  Q quit"
	}
	cw.WriteAt(1, hudRows+3+h, footer)
	cw.ClearLine()
	cw.WriteAt(1, hudRows+4+h, note)
	cw.ClearLine()
}

// layout resolves the glyph of every cell from the snapshot.
func (b *Board) layout(s loop.Snapshot) {
	w, h := s.Tiles.Width, s.Tiles.Height
	if cap(b.cells) < w*h {
		b.cells = make([]string, w*h)
	}
	b.cells = b.cells[:w*h]

	put := func(p physics.Position, g string) {
		if s.Tiles.InBounds(p) {
			b.cells[s.Tiles.Index(p)] = g
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := physics.Pos(x, y)
			put(p, tileGlyph(s.Tiles.At(p)))
		}
	}
	for _, l := range s.Lasers {
		put(l.Pos, glyphLaser)
	}
	for _, a := range s.Asteroids {
		if a != nil {
			put(a.Pos, glyphAsteroid)
		}
	}
	for _, bl := range s.Blasters {
		if bl != nil {
			put(bl.Pos, glyphBlaster)
		}
	}
	for _, a := range s.Aliens {
		if a != nil {
			put(a.Pos, glyphAlien)
		}
	}
	put(s.Player.Pos, glyphPlayer)
}

func tileGlyph(t level.TileType) string {
	switch t {
	case level.BlackHole:
		return glyphBlackHole
	case level.PulsarActive:
		return glyphPulsarActive
	case level.PulsarInactive:
		return glyphPulsarInactive
	default:
		return glyphSpace
	}
}

func (b *Board) drawHUD(s loop.Snapshot) {
	cw := b.cw
	cw.WriteAt(1, 1, fmt.Sprintf("Level %d/%d   Points %d/%d   Turn %d",
		min(s.Cleared+1, s.LevelCap), s.LevelCap, s.Points, s.PointsPerLevel, s.Turn))
	cw.ClearLine()

	hull, maxHull := s.Player.Hull(), s.Player.MaxHull()
	filled := hull * barWidth / maxHull
	color := ColorGreen
	switch {
	case hull*4 <= maxHull:
		color = ColorRed
	case hull*2 <= maxHull:
		color = ColorYellow
	}
	cw.WriteAt(1, 2, fmt.Sprintf("Hull %s%s%s%s %d/%d",
		color, strings.Repeat("#", filled), ColorReset+ColorDim+strings.Repeat("-", barWidth-filled), ColorReset,
		hull, maxHull))
	cw.ClearLine()
}

// drawBanner overlays the end-of-game message on the middle board row.
func (b *Board) drawBanner(s loop.Snapshot, w, h int) {
	var msg string
	switch s.Outcome {
	case loop.OutcomeGameOver:
		msg = fmt.Sprintf(" GAME OVER  levels cleared: %d ", s.Cleared)
	case loop.OutcomeVictory:
		msg = fmt.Sprintf(" VICTORY  all %d levels cleared ", s.LevelCap)
	case loop.OutcomeFailed:
		msg = " LEVEL GENERATION FAILED "
	}
	col := max(1, (w*CellWidth+3-len(msg))/2+1)
	b.cw.WriteAt(col, hudRows+2+h/2, ColorBrightWhite+msg+ColorReset)
}
