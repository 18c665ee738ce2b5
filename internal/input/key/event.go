package key

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a single key press or release.
type Event struct {
	// Key identifies the key.
	Key Key

	// Modifiers contains the modifier keys held at the time of the event.
	Modifiers Modifier

	// Release is true for key-up events.
	Release bool

	// Repeat is true for auto-repeated key-down events.
	Repeat bool

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key press event with the current timestamp.
func NewEvent(key Key, mods Modifier) Event {
	return Event{
		Key:       key,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// NewReleaseEvent creates a key release event with the current timestamp.
func NewReleaseEvent(key Key, mods Modifier) Event {
	e := NewEvent(key, mods)
	e.Release = true
	return e
}

// IsPress returns true for key-down events, including repeats.
func (e Event) IsPress() bool {
	return !e.Release
}

// IsModified returns true if any modifier is held.
func (e Event) IsModified() bool {
	return !e.Modifiers.IsEmpty()
}

// String returns a representation like "C-S-Up".
func (e Event) String() string {
	var b strings.Builder
	if mods := e.Modifiers.ShortString(); mods != "" {
		b.WriteString(mods)
		b.WriteByte('-')
	}
	b.WriteString(e.Key.String())
	if e.Release {
		b.WriteString(" (release)")
	}
	return b.String()
}

// Equals returns true if two events represent the same key transition.
// Timestamps and the repeat flag are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Modifiers == other.Modifiers &&
		e.Release == other.Release
}

// WithModifier returns a copy with the specified modifier added.
func (e Event) WithModifier(mod Modifier) Event {
	e.Modifiers = e.Modifiers.With(mod)
	return e
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Modifiers: %s, Release: %v, Repeat: %v}",
		e.Key.String(), e.Modifiers.String(), e.Release, e.Repeat)
}
