// Package backend reads input from the hosting terminal and translates it
// into key and mouse events.
package backend

import (
	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventText
	EventResize
	EventPaste
	EventFocus
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventText:
		return "text"
	case EventResize:
		return "resize"
	case EventPaste:
		return "paste"
	case EventFocus:
		return "focus"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Mouse holds the button transitions of an EventMouse, releases first.
	// Pointer motion with no button change produces none.
	Mouse []mouse.Event

	// Rune is set for EventText: a character with no key identifier.
	Rune rune

	// Width and Height are set for EventResize.
	Width, Height int

	// Start is set for EventPaste: true at the start of a bracketed
	// paste, false at its end.
	Start bool

	// Focused is set for EventFocus.
	Focused bool
}

// Source produces terminal input events.
type Source interface {
	// Init prepares the terminal for input.
	Init() error

	// Shutdown restores the terminal.
	Shutdown()

	// PollEvent blocks until an event arrives. It returns false once the
	// source has been shut down.
	PollEvent() (Event, bool)

	// Interrupt wakes a blocked PollEvent with an EventInterrupt.
	Interrupt()

	// Size returns the terminal size in cells.
	Size() (width, height int)
}

// NullSource is a Source that replays queued events. It is used in tests
// and when no terminal is attached.
type NullSource struct {
	events chan Event
	done   chan struct{}
	width  int
	height int
}

// NewNullSource creates a source reporting the given size.
func NewNullSource(width, height int) *NullSource {
	return &NullSource{
		events: make(chan Event, 64),
		done:   make(chan struct{}),
		width:  width,
		height: height,
	}
}

func (n *NullSource) Init() error { return nil }

func (n *NullSource) Shutdown() {
	select {
	case <-n.done:
	default:
		close(n.done)
	}
}

func (n *NullSource) PollEvent() (Event, bool) {
	select {
	case ev := <-n.events:
		return ev, true
	case <-n.done:
		return Event{}, false
	}
}

func (n *NullSource) Interrupt() {
	n.Post(Event{Type: EventInterrupt})
}

func (n *NullSource) Size() (int, int) {
	return n.width, n.height
}

// Post queues an event. Events posted after Shutdown are dropped.
func (n *NullSource) Post(ev Event) {
	select {
	case n.events <- ev:
	case <-n.done:
	}
}
