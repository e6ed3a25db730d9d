package client

import (
	"fmt"

	"github.com/tomz197/spacegame/internal/draw"
)

// drawFrame draws the latest snapshot centred in the terminal.
func (c *Client) drawFrame() error {
	s := c.state.Snapshot
	cols, rows := draw.BoardSize(s.Tiles.Width, s.Tiles.Height)

	termWidth, termHeight, err := c.opts.TermSizeFunc()
	if err != nil {
		// Unknown size: draw at the top-left corner.
		termWidth, termHeight = cols, rows
	}

	cw := c.chunkWriter
	if termWidth < cols || termHeight < rows {
		if !c.state.tooSmall {
			cw.WriteString("\033[H\033[2J")
			c.state.tooSmall = true
		}
		cw.SetOffset(0, 0)
		cw.WriteAt(1, 1, fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", cols, rows, termWidth, termHeight))
		cw.ClearLine()
		return cw.Flush()
	}

	offsetCol, offsetRow := draw.Centre(termWidth, termHeight, cols, rows)
	// On resize, clear so the board doesn't leave residue at the old offset.
	if c.state.tooSmall || offsetCol != c.state.offsetCol || offsetRow != c.state.offsetRow {
		cw.WriteString("\033[H\033[2J")
		c.state.offsetCol, c.state.offsetRow = offsetCol, offsetRow
		c.state.tooSmall = false
	}
	cw.SetOffset(offsetCol, offsetRow)

	c.board.Render(s, c.state.Note)
	return cw.Flush()
}
