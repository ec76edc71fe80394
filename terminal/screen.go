package terminal

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/arcade/engine"
	"github.com/lixenwraith/arcade/input"
	"github.com/lixenwraith/arcade/vmath"
)

// ErrClosed is returned once the screen has been finalised
var ErrClosed = errors.New("terminal: closed")

// DefaultReleaseDelay outlasts the usual 250-500ms keyboard auto-repeat delay,
// so a held key is not released before its first repeat arrives
const DefaultReleaseDelay = 550 * time.Millisecond

// Config tunes the backend
type Config struct {
	Title        string
	ReleaseDelay time.Duration
}

type quitRequest struct{}

type heldKey struct {
	key  input.Key
	seen time.Time
}

// Screen implements engine.Backend on a tcell screen
// Poll, Wait and Present belong to the loop goroutine; Close and RequestQuit may be called from anywhere
type Screen struct {
	scr     tcell.Screen
	clock   engine.Clock
	release time.Duration
	log     *zap.Logger

	held    []heldKey
	pending []engine.Event

	closed atomic.Bool
}

// New opens the controlling terminal
func New(cfg Config, clock engine.Clock, log *zap.Logger) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return Open(scr, cfg, clock, log)
}

// Open initialises scr and takes ownership of it
func Open(scr tcell.Screen, cfg Config, clock engine.Clock, log *zap.Logger) (*Screen, error) {
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ReleaseDelay <= 0 {
		cfg.ReleaseDelay = DefaultReleaseDelay
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init: %w", err)
	}
	scr.EnableFocus()
	scr.HideCursor()
	if cfg.Title != "" {
		scr.SetTitle(cfg.Title)
	}
	scr.Clear()

	cols, rows := scr.Size()
	log.Info("terminal opened", zap.Int("cols", cols), zap.Int("rows", rows), zap.Int("colors", scr.Colors()))

	return &Screen{
		scr:     scr,
		clock:   clock,
		release: cfg.ReleaseDelay,
		log:     log,
	}, nil
}

// PixelSize is the terminal size with two pixels per cell vertically
func (s *Screen) PixelSize() vmath.Vec2i {
	cols, rows := s.scr.Size()
	return vmath.V2(cols, rows*2)
}

// Poll returns a queued event, translating whatever tcell has buffered, without blocking
func (s *Screen) Poll() (engine.Event, bool) {
	if s.closed.Load() {
		return engine.Event{}, false
	}
	s.expire(s.clock.Now())
	for len(s.pending) == 0 && s.scr.HasPendingEvent() {
		ev := s.scr.PollEvent()
		if ev == nil {
			break
		}
		s.translate(ev)
	}
	return s.pop()
}

// Wait blocks for the next event; ErrClosed once the screen is finalised
// Key releases are not synthesized while waiting
func (s *Screen) Wait() (engine.Event, error) {
	for {
		if ev, ok := s.pop(); ok {
			return ev, nil
		}
		if s.closed.Load() {
			return engine.Event{}, ErrClosed
		}
		ev := s.scr.PollEvent()
		if ev == nil {
			return engine.Event{}, ErrClosed
		}
		s.translate(ev)
	}
}

// RequestQuit makes the loop see a quit event
func (s *Screen) RequestQuit() error {
	if s.closed.Load() {
		return ErrClosed
	}
	return s.scr.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
}

// Close restores the terminal; later calls do nothing
func (s *Screen) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.scr.Fini()
	s.log.Info("terminal closed")
	return nil
}

func (s *Screen) pop() (engine.Event, bool) {
	if len(s.pending) == 0 {
		return engine.Event{}, false
	}
	ev := s.pending[0]
	s.pending = s.pending[1:]
	return ev, true
}

func (s *Screen) translate(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			s.pending = append(s.pending, engine.QuitEvent())
			return
		}
		s.press(input.FromEvent(ev))
	case *tcell.EventFocus:
		if !ev.Focused {
			s.releaseAll()
		}
		s.pending = append(s.pending, engine.FocusEvent(ev.Focused))
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitRequest); ok {
			s.pending = append(s.pending, engine.QuitEvent())
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		s.log.Debug("terminal resized", zap.Int("cols", cols), zap.Int("rows", rows))
		s.scr.Sync()
	}
}

// press reports the first press of a key and treats later ones as auto-repeat
func (s *Screen) press(k input.Key) {
	now := s.clock.Now()
	for i := range s.held {
		if s.held[i].key == k {
			s.held[i].seen = now
			return
		}
	}
	s.held = append(s.held, heldKey{key: k, seen: now})
	s.pending = append(s.pending, engine.KeyEvent(k, true))
}

// expire releases keys not repeated within the release delay
func (s *Screen) expire(now time.Time) {
	kept := s.held[:0]
	for _, h := range s.held {
		if now.Sub(h.seen) >= s.release {
			s.pending = append(s.pending, engine.KeyEvent(h.key, false))
			continue
		}
		kept = append(kept, h)
	}
	s.held = kept
}

func (s *Screen) releaseAll() {
	for _, h := range s.held {
		s.pending = append(s.pending, engine.KeyEvent(h.key, false))
	}
	s.held = s.held[:0]
}
