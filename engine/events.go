package engine

import (
	"github.com/lixenwraith/arcade/input"
	"github.com/lixenwraith/arcade/surface"
	"github.com/lixenwraith/arcade/vmath"
)

// EventType identifies what a backend reported
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventQuit
	EventFocus
)

var eventTypeNames = [...]string{
	EventNone:  "none",
	EventKey:   "key",
	EventQuit:  "quit",
	EventFocus: "focus",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// Event is one input notification
// Key and Pressed are meaningful for EventKey, Focused for EventFocus
type Event struct {
	Type    EventType
	Key     input.Key
	Pressed bool
	Focused bool
}

// KeyEvent reports a key going down or up
func KeyEvent(k input.Key, pressed bool) Event {
	return Event{Type: EventKey, Key: k, Pressed: pressed}
}

// QuitEvent reports a request to end the game
func QuitEvent() Event {
	return Event{Type: EventQuit}
}

// FocusEvent reports the display gaining or losing input focus
func FocusEvent(focused bool) Event {
	return Event{Type: EventFocus, Focused: focused}
}

// EventSource delivers input to the loop
type EventSource interface {
	// Poll returns the next queued event without blocking
	Poll() (Event, bool)
	// Wait blocks until an event arrives; an error means no more events will
	Wait() (Event, error)
}

// Display shows a finished frame
type Display interface {
	Present(screen *surface.Surface) error
}

// Backend is a platform binding providing both input and output
type Backend interface {
	EventSource
	Display
	// PixelSize is the native canvas size, used when the configuration leaves it open
	PixelSize() vmath.Vec2i
	Close() error
}
