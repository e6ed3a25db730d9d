package client

import (
	"time"

	"github.com/tomz197/spacegame/internal/loop"
)

// ClientState holds per-session presentation state. The simulation itself
// lives in the engine; this only keeps what the screen needs between keys.
type ClientState struct {
	Snapshot    loop.Snapshot // Last snapshot published by the engine
	Note        string        // One-line message shown under the board
	Games       int           // Games started in this session
	GameStarted time.Time     // Start of the current game
	offsetCol   int           // Board offset used for the previous frame
	offsetRow   int
	tooSmall    bool // Previous frame showed the resize hint
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{offsetCol: -1, offsetRow: -1}
}
