package engine

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/arcade/input"
	"github.com/lixenwraith/arcade/surface"
)

// State is the loop's activation state
type State int32

const (
	StateRunning State = iota
	StateSuspended
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateTerminated:
		return "terminated"
	}
	return "unknown"
}

// ErrNoTick is returned by Run when Handlers.Tick is missing
var ErrNoTick = errors.New("engine: tick handler required")

// Handlers are the game's callbacks, all invoked on the loop goroutine
type Handlers struct {
	// Key receives every key press and release while running
	Key func(k input.Key, pressed bool)
	// Tick advances the game one frame; returning false ends the loop
	Tick func() bool
	// Activation is called with false on suspension and true on resumption
	Activation func(active bool)
}

func (h Handlers) withDefaults() Handlers {
	if h.Key == nil {
		h.Key = func(input.Key, bool) {}
	}
	if h.Activation == nil {
		h.Activation = func(bool) {}
	}
	return h
}

// LoopConfig paces the loop
type LoopConfig struct {
	FramePeriod time.Duration
	// TrackActivation suspends the loop while the display has no focus
	TrackActivation bool
}

// Stats counts loop activity
type Stats struct {
	Frames      uint64
	Overruns    uint64
	Suspensions uint64
}

// Loop runs frames at a fixed period until a quit event or a failing tick
// It owns no resources; the caller keeps the source, display and screen alive across Run
type Loop struct {
	cfg     LoopConfig
	src     EventSource
	display Display
	screen  *surface.Surface
	clock   Clock
	log     *zap.Logger

	state atomic.Int32
	stats Stats
}

// NewLoop wires a loop; clock and log may be nil
func NewLoop(cfg LoopConfig, src EventSource, display Display, screen *surface.Surface, clock Clock, log *zap.Logger) *Loop {
	if clock == nil {
		clock = NewTimeProvider()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loop{
		cfg:     cfg,
		src:     src,
		display: display,
		screen:  screen,
		clock:   clock,
		log:     log,
	}
}

// State returns the current activation state; safe from any goroutine
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	if old := State(l.state.Swap(int32(s))); old != s {
		l.log.Debug("loop state", zap.Stringer("from", old), zap.Stringer("to", s))
	}
}

// Stats returns counters; only meaningful once Run has returned or from the loop goroutine
func (l *Loop) Stats() Stats {
	return l.stats
}

// Run executes the loop until it terminates
// A presentation failure terminates the loop and is returned
func (l *Loop) Run(h Handlers) error {
	if h.Tick == nil {
		return ErrNoTick
	}
	h = h.withDefaults()
	l.setState(StateRunning)

	for {
		var err error
		switch l.State() {
		case StateRunning:
			err = l.frame(h)
		case StateSuspended:
			err = l.suspend(h)
		case StateTerminated:
			l.log.Info("loop finished",
				zap.Uint64("frames", l.stats.Frames),
				zap.Uint64("overruns", l.stats.Overruns),
				zap.Uint64("suspensions", l.stats.Suspensions))
			return nil
		}
		if err != nil {
			l.setState(StateTerminated)
			return err
		}
	}
}

func (l *Loop) frame(h Handlers) error {
	start := l.clock.Now()

	l.drain(h)
	if l.State() != StateRunning {
		return nil
	}

	if !h.Tick() {
		l.setState(StateTerminated)
		return nil
	}
	if err := l.display.Present(l.screen); err != nil {
		return fmt.Errorf("engine: present: %w", err)
	}
	l.stats.Frames++

	// Late frames are not made up for
	elapsed := l.clock.Now().Sub(start)
	if wait := l.cfg.FramePeriod - elapsed; wait > 0 {
		l.clock.Sleep(wait)
	} else {
		l.stats.Overruns++
		l.log.Debug("frame overrun", zap.Duration("elapsed", elapsed), zap.Duration("period", l.cfg.FramePeriod))
	}
	return nil
}

// drain dispatches queued events until the queue is empty or the loop leaves the running state
func (l *Loop) drain(h Handlers) {
	for l.State() == StateRunning {
		ev, ok := l.src.Poll()
		if !ok {
			return
		}
		switch ev.Type {
		case EventKey:
			h.Key(ev.Key, ev.Pressed)
		case EventQuit:
			l.setState(StateTerminated)
		case EventFocus:
			if !ev.Focused && l.cfg.TrackActivation {
				l.setState(StateSuspended)
			}
		}
	}
}

func (l *Loop) suspend(h Handlers) error {
	l.stats.Suspensions++
	h.Activation(false)
	if err := l.display.Present(l.screen); err != nil {
		return fmt.Errorf("engine: present: %w", err)
	}

	for {
		ev, err := l.src.Wait()
		if err != nil {
			l.log.Warn("event wait failed while suspended", zap.Error(err))
			l.setState(StateTerminated)
			return nil
		}
		switch {
		case ev.Type == EventQuit:
			h.Activation(true)
			l.setState(StateTerminated)
			return nil
		case ev.Type == EventFocus && ev.Focused:
			h.Activation(true)
			l.setState(StateRunning)
			return nil
		}
	}
}
