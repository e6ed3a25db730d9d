// Package input turns raw terminal bytes into discrete key commands.
package input

import (
	"bufio"
	"context"
	"io"
	"sync"
)

// Key is a recognised command key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyFire
	KeyWait    // Advance a turn without an intent
	KeyRestart // Start a fresh game
	KeyQuit
)

var keyNames = [...]string{
	KeyNone:    "none",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyFire:    "fire",
	KeyWait:    "wait",
	KeyRestart: "restart",
	KeyQuit:    "quit",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "unknown"
	}
	return keyNames[k]
}

// Parser decodes a byte stream one byte at a time. It understands the
// WASD and IJKL clusters, arrow-key CSI sequences and a few single keys.
type Parser struct {
	esc int // Bytes of an ESC [ sequence seen so far
}

// Feed consumes b and reports the key it completes, if any.
func (p *Parser) Feed(b byte) (Key, bool) {
	switch p.esc {
	case 1:
		if b == '[' {
			p.esc = 2
			return KeyNone, false
		}
		p.esc = 0
	case 2:
		p.esc = 0
		switch b {
		case 'A':
			return KeyUp, true
		case 'B':
			return KeyDown, true
		case 'C':
			return KeyRight, true
		case 'D':
			return KeyLeft, true
		}
		return KeyNone, false
	}

	switch b {
	case '\x1b':
		p.esc = 1
		return KeyNone, false
	case 'q', 'Q', '\x03': // Ctrl+C arrives as a byte in raw mode
		return KeyQuit, true
	case 'a', 'A', 'j', 'J':
		return KeyLeft, true
	case 'd', 'D', 'l', 'L':
		return KeyRight, true
	case 'w', 'W', 'i', 'I':
		return KeyUp, true
	case 's', 'S', 'k', 'K':
		return KeyDown, true
	case ' ', 'f', 'F':
		return KeyFire, true
	case '.', 'x', 'X':
		return KeyWait, true
	case 'r', 'R', '\n', '\r':
		return KeyRestart, true
	}
	return KeyNone, false
}

// Stream delivers input bytes via a channel so that reads can be abandoned
// when a session ends.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	once   sync.Once
	parser Parser
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or the stream is closed.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128), done: make(chan struct{})}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops the reader goroutine once its pending read returns. It is
// safe to call more than once.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Next blocks until a complete key arrives. It returns io.EOF once the
// reader is exhausted and ctx.Err() when ctx is done.
func (s *Stream) Next(ctx context.Context) (Key, error) {
	for {
		select {
		case <-ctx.Done():
			return KeyNone, ctx.Err()
		case b, ok := <-s.ch:
			if !ok {
				return KeyNone, io.EOF
			}
			if k, ok := s.parser.Feed(b); ok {
				return k, nil
			}
		}
	}
}

// Drain discards every byte already buffered, e.g. keys mashed while an
// end screen was showing.
func (s *Stream) Drain() {
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
