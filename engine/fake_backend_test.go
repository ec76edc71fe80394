package engine

import (
	"errors"

	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

var errNoEvents = errors.New("no more events")

// scriptedBackend replays queued events through Poll and Wait and records presented frames
type scriptedBackend struct {
	queue      []Event
	size       vmath.Vec2i
	presentErr error
	presents   int
	last       []byte
	closed     bool
}

func (b *scriptedBackend) push(evs ...Event) {
	b.queue = append(b.queue, evs...)
}

func (b *scriptedBackend) Poll() (Event, bool) {
	if len(b.queue) == 0 {
		return Event{}, false
	}
	ev := b.queue[0]
	b.queue = b.queue[1:]
	return ev, true
}

func (b *scriptedBackend) Wait() (Event, error) {
	ev, ok := b.Poll()
	if !ok {
		return Event{}, errNoEvents
	}
	return ev, nil
}

func (b *scriptedBackend) Present(s *surface.Surface) error {
	if b.presentErr != nil {
		return b.presentErr
	}
	b.presents++
	b.last = append(b.last[:0], s.Pix()...)
	return nil
}

func (b *scriptedBackend) PixelSize() vmath.Vec2i { return b.size }

func (b *scriptedBackend) Close() error {
	if b.closed {
		return errors.New("already closed")
	}
	b.closed = true
	return nil
}
