package mode

import (
	"fmt"
	"strings"

	"github.com/dshills/vtkeys/internal/input/key"
)

// State provides read-only access to the terminal modes owned by the VT
// interpreter.
type State interface {
	// IsApplicationKeypadActive returns true in application keypad mode.
	IsApplicationKeypadActive() bool

	// IsApplicationCursorActive returns true in application cursor mode.
	IsApplicationCursorActive() bool
}

// Context is the snapshot of terminal state consulted by one resolution.
// It is passed by value and never retained.
type Context struct {
	// KeypadApp is true in application keypad mode.
	KeypadApp bool

	// CursorApp is true in application cursor mode.
	CursorApp bool

	// Ignore is removed from observed key modifiers before matching.
	// The mouse path does not apply it.
	Ignore key.Modifier

	// ForceSelect is the modifier that forces a selection to start when
	// held with the primary button. ModNone disables forcing.
	ForceSelect key.Modifier
}

// Snapshot reads the current modes from state. A nil state reports both
// modes inactive.
func Snapshot(state State, ignore, force key.Modifier) Context {
	ctx := Context{
		Ignore:      ignore,
		ForceSelect: force,
	}
	if state != nil {
		ctx.KeypadApp = state.IsApplicationKeypadActive()
		ctx.CursorApp = state.IsApplicationCursorActive()
	}
	return ctx
}

// WithKeypad returns a copy of the context with application keypad mode set.
func (c Context) WithKeypad(active bool) Context {
	c.KeypadApp = active
	return c
}

// WithCursor returns a copy of the context with application cursor mode set.
func (c Context) WithCursor(active bool) Context {
	c.CursorApp = active
	return c
}

// String returns a representation like "keypad=on cursor=off ignore= force=Shift".
func (c Context) String() string {
	return fmt.Sprintf("keypad=%s cursor=%s ignore=%s force=%s",
		onOff(c.KeypadApp), onOff(c.CursorApp), c.Ignore, c.ForceSelect)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Flag identifies a terminal mode flag held by Flags.
type Flag uint8

const (
	// FlagKeypad is application keypad mode.
	FlagKeypad Flag = 1 << iota

	// FlagCursor is application cursor mode.
	FlagCursor

	// FlagNumLock is the numlock state toggled by the numlock action.
	FlagNumLock
)

// String returns "keypad", "cursor" or "numlock".
func (f Flag) String() string {
	var parts []string
	if f&FlagKeypad != 0 {
		parts = append(parts, "keypad")
	}
	if f&FlagCursor != 0 {
		parts = append(parts, "cursor")
	}
	if f&FlagNumLock != 0 {
		parts = append(parts, "numlock")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
