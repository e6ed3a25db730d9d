// Package client runs one interactive game session on a terminal: it reads
// keys, drives the engine one turn per accepted key and renders every
// snapshot.
package client

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/tomz197/spacegame/internal/draw"
	"github.com/tomz197/spacegame/internal/input"
	"github.com/tomz197/spacegame/internal/loop"
	"github.com/tomz197/spacegame/internal/loop/config"
)

// Observer receives session events. *metrics.Metrics satisfies it.
type Observer interface {
	SessionStarted()
	SessionEnded()
	TurnPlayed()
	LevelCleared()
	GameFinished(o loop.Outcome, d time.Duration)
}

// Options configures the client.
type Options struct {
	Settings     config.Settings
	Seed         int64 // Seed of the first game, 0 seeds from the clock
	TermSizeFunc draw.TermSizeFunc
	Logger       *log.Logger
	Observer     Observer
	KeyRate      rate.Limit // Accepted keys per second, 0 disables limiting
	KeyBurst     int
	Username     string
}

// Client handles rendering and input for a single connection.
type Client struct {
	opts        Options
	state       *ClientState
	engine      *loop.Engine
	stream      *input.Stream
	writer      io.Writer
	chunkWriter *draw.ChunkWriter
	board       *draw.Board
	limiter     *rate.Limiter
	log         *log.Logger
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts Options) *Client {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}

	limit := opts.KeyRate
	if limit <= 0 {
		limit = rate.Inf
	}
	burst := max(opts.KeyBurst, 1)

	chunkWriter := draw.NewChunkWriter(w, 0, 0)
	return &Client{
		opts:        opts,
		state:       NewClientState(),
		stream:      input.StartStream(r),
		writer:      w,
		chunkWriter: chunkWriter,
		board:       draw.NewBoard(chunkWriter),
		limiter:     rate.NewLimiter(limit, burst),
		log:         logger,
	}
}

// Run plays games until the player quits, the input ends or ctx is done.
func (c *Client) Run(ctx context.Context) error {
	c.opts.Observer.SessionStarted()
	defer c.opts.Observer.SessionEnded()
	defer c.stream.Close()

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	if err := c.startGame(); err != nil {
		return err
	}
	if err := c.drawFrame(); err != nil {
		return err
	}

	for {
		key, err := c.stream.Next(ctx)
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if err != nil {
			return err
		}

		if key == input.KeyQuit {
			break
		}
		if err := c.handleKey(key); err != nil {
			return err
		}
		if err := c.drawFrame(); err != nil {
			return err
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// handleKey applies one key to the session.
func (c *Client) handleKey(key input.Key) error {
	c.state.Note = ""

	if c.engine.Outcome().Terminal() {
		if key == input.KeyRestart {
			c.stream.Drain()
			return c.startGame()
		}
		return nil
	}

	intent, ok := intentFor(key)
	if !ok {
		return nil
	}
	if !c.limiter.Allow() {
		c.state.Note = "Too fast, key ignored"
		return nil
	}
	c.playTurn(intent)
	return nil
}

// playTurn issues one intent followed by exactly one AdvanceTurn.
func (c *Client) playTurn(intent loop.Intent) {
	if intent == loop.IntentFire && !c.engine.CanFire() {
		c.state.Note = "Volley still in flight"
	}
	cleared := c.engine.Cleared()

	c.engine.Do(intent)
	outcome, err := c.engine.AdvanceTurn()
	c.opts.Observer.TurnPlayed()

	if c.engine.Cleared() > cleared {
		c.opts.Observer.LevelCleared()
		c.state.Note = "Level cleared!"
	}
	if outcome.Terminal() {
		c.opts.Observer.GameFinished(outcome, time.Since(c.state.GameStarted))
	}
	if err != nil {
		c.log.Error("game failed", "err", err)
		c.state.Note = err.Error()
	}
}

// startGame replaces the engine with a fresh one.
func (c *Client) startGame() error {
	opts := []loop.Option{
		loop.WithPresenter(loop.PresenterFunc(func(s loop.Snapshot) {
			c.state.Snapshot = s
		})),
		loop.WithLogger(c.log),
	}
	if c.opts.Seed != 0 {
		opts = append(opts, loop.WithSeed(c.opts.Seed+int64(c.state.Games)))
	}

	engine, err := loop.New(c.opts.Settings, opts...)
	if err != nil {
		return err
	}
	c.engine = engine
	c.state.Games++
	c.state.GameStarted = time.Now()
	c.state.Note = ""
	return nil
}

func intentFor(key input.Key) (loop.Intent, bool) {
	switch key {
	case input.KeyUp:
		return loop.IntentUp, true
	case input.KeyDown:
		return loop.IntentDown, true
	case input.KeyLeft:
		return loop.IntentLeft, true
	case input.KeyRight:
		return loop.IntentRight, true
	case input.KeyFire:
		return loop.IntentFire, true
	case input.KeyWait:
		return loop.IntentNone, true
	}
	return loop.IntentNone, false
}

type nopObserver struct{}

func (nopObserver) SessionStarted() {}
func (nopObserver) SessionEnded() {}
func (nopObserver) TurnPlayed() {}
func (nopObserver) LevelCleared() {}
func (nopObserver) GameFinished(loop.Outcome, time.Duration) {}
