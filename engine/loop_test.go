package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/arcade/input"
	"github.com/lixenwraith/arcade/surface"
)

const testPeriod = 20 * time.Millisecond

type recorder struct {
	ticks       int
	keys        []input.Key
	pressed     []bool
	activations []bool
}

func (r *recorder) handlers(tick func(n int) bool) Handlers {
	return Handlers{
		Key: func(k input.Key, pressed bool) {
			r.keys = append(r.keys, k)
			r.pressed = append(r.pressed, pressed)
		},
		Tick: func() bool {
			r.ticks++
			return tick(r.ticks)
		},
		Activation: func(active bool) {
			r.activations = append(r.activations, active)
		},
	}
}

func newTestLoop(track bool) (*Loop, *scriptedBackend, *MockTimeProvider) {
	b := &scriptedBackend{}
	clock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	screen := surface.MustNew(4, 4, surface.XRGB8888)
	l := NewLoop(LoopConfig{FramePeriod: testPeriod, TrackActivation: track}, b, b, screen, clock, nil)
	return l, b, clock
}

func TestLoopRequiresTick(t *testing.T) {
	l, _, _ := newTestLoop(true)
	assert.ErrorIs(t, l.Run(Handlers{}), ErrNoTick)
}

func TestQuitStopsBeforeNextTick(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder

	err := l.Run(r.handlers(func(n int) bool {
		if n == 3 {
			b.push(QuitEvent())
		}
		return true
	}))
	require.NoError(t, err)

	assert.Equal(t, 3, r.ticks)
	assert.Equal(t, StateTerminated, l.State())
	assert.Equal(t, 3, b.presents)
	assert.Equal(t, uint64(3), l.Stats().Frames)
	assert.Empty(t, r.activations)
}

func TestKeyEventsReachHandlerInOrder(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder
	b.push(KeyEvent(input.Char('a'), true), KeyEvent(input.Char('a'), false), KeyEvent(input.Special(tcell.KeyUp), true))

	require.NoError(t, l.Run(r.handlers(func(int) bool { return false })))

	assert.Equal(t, []input.Key{input.Char('a'), input.Char('a'), input.Special(tcell.KeyUp)}, r.keys)
	assert.Equal(t, []bool{true, false, true}, r.pressed)
	assert.Equal(t, 1, r.ticks)
}

func TestTickFalseTerminatesWithoutPresent(t *testing.T) {
	l, b, clock := newTestLoop(true)
	var r recorder

	require.NoError(t, l.Run(r.handlers(func(int) bool { return false })))

	assert.Equal(t, StateTerminated, l.State())
	assert.Zero(t, b.presents)
	assert.Empty(t, clock.Sleeps())
}

func TestFocusLossSuspendsUntilRegained(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder
	b.push(
		FocusEvent(false),
		KeyEvent(input.Char('x'), true),
		FocusEvent(false),
		FocusEvent(true),
	)

	require.NoError(t, l.Run(r.handlers(func(int) bool { return false })))

	assert.Equal(t, []bool{false, true}, r.activations)
	assert.Empty(t, r.keys, "keys are not delivered while suspended")
	assert.Equal(t, 1, r.ticks)
	assert.Equal(t, 1, b.presents, "the suspended frame is presented once")
	assert.Equal(t, uint64(1), l.Stats().Suspensions)
}

func TestNoTickWhileSuspended(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder
	var states []State

	err := l.Run(r.handlers(func(n int) bool {
		states = append(states, l.State())
		switch n {
		case 1:
			b.push(FocusEvent(false), FocusEvent(true))
		case 2:
			return false
		}
		return true
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, r.ticks)
	assert.Equal(t, []State{StateRunning, StateRunning}, states)
	assert.Equal(t, []bool{false, true}, r.activations)
}

func TestQuitWhileSuspended(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder
	b.push(FocusEvent(false), QuitEvent())

	require.NoError(t, l.Run(r.handlers(func(int) bool { return true })))

	assert.Zero(t, r.ticks)
	assert.Equal(t, []bool{false, true}, r.activations)
	assert.Equal(t, StateTerminated, l.State())
}

func TestWaitFailureWhileSuspendedTerminates(t *testing.T) {
	l, b, _ := newTestLoop(true)
	var r recorder
	b.push(FocusEvent(false))

	require.NoError(t, l.Run(r.handlers(func(int) bool { return true })))

	assert.Equal(t, StateTerminated, l.State())
	assert.Equal(t, []bool{false}, r.activations)
	assert.Zero(t, r.ticks)
}

func TestFocusIgnoredWithoutTracking(t *testing.T) {
	l, b, _ := newTestLoop(false)
	var r recorder
	b.push(FocusEvent(false))

	require.NoError(t, l.Run(r.handlers(func(n int) bool { return n < 2 })))

	assert.Equal(t, 2, r.ticks)
	assert.Empty(t, r.activations)
	assert.Zero(t, l.Stats().Suspensions)
}

func TestPacingSleepsRemainderOfPeriod(t *testing.T) {
	l, _, clock := newTestLoop(true)
	var r recorder

	work := []time.Duration{5 * time.Millisecond, 30 * time.Millisecond, 20 * time.Millisecond, 12 * time.Millisecond}
	err := l.Run(r.handlers(func(n int) bool {
		if n > len(work) {
			return false
		}
		clock.Advance(work[n-1])
		return true
	}))
	require.NoError(t, err)

	assert.Equal(t, []time.Duration{15 * time.Millisecond, 8 * time.Millisecond}, clock.Sleeps())
	stats := l.Stats()
	assert.Equal(t, uint64(4), stats.Frames)
	assert.Equal(t, uint64(2), stats.Overruns, "a frame taking exactly one period counts as an overrun")
}

func TestPresentFailureIsReturned(t *testing.T) {
	l, b, _ := newTestLoop(true)
	b.presentErr = errors.New("display gone")
	var r recorder

	err := l.Run(r.handlers(func(int) bool { return true }))

	require.Error(t, err)
	assert.ErrorIs(t, err, b.presentErr)
	assert.Equal(t, StateTerminated, l.State())
	assert.Equal(t, 1, r.ticks)
}

func TestStateAndEventNames(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "suspended", StateSuspended.String())
	assert.Equal(t, "terminated", StateTerminated.String())
	assert.Equal(t, "unknown", State(42).String())

	assert.Equal(t, "focus", EventFocus.String())
	assert.Equal(t, "unknown", EventType(-1).String())
}
