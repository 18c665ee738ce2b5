package mouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/vtkeys/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button. It starts selections.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// ButtonPrimary is the button that starts a selection.
const ButtonPrimary = ButtonLeft

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// buttonNameMap maps button names (lowercase) to Button values.
var buttonNameMap = map[string]Button{
	"left":         ButtonLeft,
	"button1":      ButtonLeft,
	"middle":       ButtonMiddle,
	"button2":      ButtonMiddle,
	"right":        ButtonRight,
	"button3":      ButtonRight,
	"scroll-up":    ButtonScrollUp,
	"scrollup":     ButtonScrollUp,
	"wheelup":      ButtonScrollUp,
	"button4":      ButtonScrollUp,
	"scroll-down":  ButtonScrollDown,
	"scrolldown":   ButtonScrollDown,
	"wheeldown":    ButtonScrollDown,
	"button5":      ButtonScrollDown,
	"scroll-left":  ButtonScrollLeft,
	"scrollleft":   ButtonScrollLeft,
	"scroll-right": ButtonScrollRight,
	"scrollright":  ButtonScrollRight,
}

// ButtonFromName returns the Button for a given name (case-insensitive).
// Returns ButtonNone if the name is not recognized.
func ButtonFromName(name string) Button {
	if b, ok := buttonNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b
	}
	return ButtonNone
}

// ParseButton is like ButtonFromName but reports unknown names as an error.
func ParseButton(name string) (Button, error) {
	b := ButtonFromName(name)
	if b == ButtonNone {
		return ButtonNone, fmt.Errorf("unknown mouse button %q", name)
	}
	return b, nil
}

// Phase restricts a mouse binding to button presses, releases, or both.
type Phase uint8

const (
	// PhaseBoth fires on press and on release.
	PhaseBoth Phase = iota
	// PhasePress fires on press only.
	PhasePress
	// PhaseRelease fires on release only.
	PhaseRelease
)

// String returns a string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhasePress:
		return "press"
	case PhaseRelease:
		return "release"
	default:
		return "both"
	}
}

// Accepts reports whether an event with the given release flag fires in
// this phase.
func (p Phase) Accepts(release bool) bool {
	switch p {
	case PhasePress:
		return !release
	case PhaseRelease:
		return release
	default:
		return true
	}
}

// Covers reports whether every event accepted by other is also accepted by p.
func (p Phase) Covers(other Phase) bool {
	return p == PhaseBoth || p == other
}

// Overlaps reports whether some event is accepted by both p and other.
func (p Phase) Overlaps(other Phase) bool {
	return p == PhaseBoth || other == PhaseBoth || p == other
}

// PhaseFromRelease converts an optional release flag into a Phase:
// nil is PhaseBoth, true is PhaseRelease and false is PhasePress.
func PhaseFromRelease(release *bool) Phase {
	switch {
	case release == nil:
		return PhaseBoth
	case *release:
		return PhaseRelease
	default:
		return PhasePress
	}
}

// Position represents a screen coordinate in cells.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse button event.
type Event struct {
	// Position is the cell under the pointer.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Release is true when the button was released.
	Release bool

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewPress creates a button press event with the current timestamp.
func NewPress(b Button, mods key.Modifier) Event {
	return Event{Button: b, Modifiers: mods, Timestamp: time.Now()}
}

// NewRelease creates a button release event with the current timestamp.
func NewRelease(b Button, mods key.Modifier) Event {
	return Event{Button: b, Modifiers: mods, Release: true, Timestamp: time.Now()}
}

// String returns a representation like "S-scroll-up".
func (e Event) String() string {
	var b strings.Builder
	if mods := e.Modifiers.ShortString(); mods != "" {
		b.WriteString(mods)
		b.WriteByte('-')
	}
	b.WriteString(e.Button.String())
	if e.Release {
		b.WriteString(" (release)")
	}
	return b.String()
}
