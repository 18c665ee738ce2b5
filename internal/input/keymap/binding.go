package keymap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Requirement gates an escape binding on a terminal mode flag.
type Requirement uint8

const (
	// Ignore is satisfied whatever the mode.
	Ignore Requirement = iota
	// RequireOn is satisfied only while the mode is active.
	RequireOn
	// RequireOff is satisfied only while the mode is inactive.
	RequireOff
)

// Satisfied reports whether the requirement holds for the mode flag.
func (r Requirement) Satisfied(active bool) bool {
	switch r {
	case RequireOn:
		return active
	case RequireOff:
		return !active
	default:
		return true
	}
}

// Covers reports whether every mode state satisfying other also satisfies r.
func (r Requirement) Covers(other Requirement) bool {
	return r == Ignore || r == other
}

// Overlaps reports whether some mode state satisfies both r and other.
func (r Requirement) Overlaps(other Requirement) bool {
	return r == Ignore || other == Ignore || r == other
}

// String returns "ignore", "on" or "off".
func (r Requirement) String() string {
	switch r {
	case RequireOn:
		return "on"
	case RequireOff:
		return "off"
	default:
		return "ignore"
	}
}

// RequirementFromInt converts the signed legacy encoding: zero is Ignore,
// positive values are RequireOn and negative values are RequireOff.
func RequirementFromInt(v int) Requirement {
	switch {
	case v > 0:
		return RequireOn
	case v < 0:
		return RequireOff
	default:
		return Ignore
	}
}

// ParseRequirement parses "ignore", "on", "off" or a signed integer.
func ParseRequirement(s string) (Requirement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore", "any":
		return Ignore, nil
	case "on", "enabled", "require-on":
		return RequireOn, nil
	case "off", "disabled", "require-off":
		return RequireOff, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Ignore, fmt.Errorf("%w: %q", ErrInvalidRequirement, s)
	}
	return RequirementFromInt(v), nil
}

// Shortcut binds a key chord to an application action.
type Shortcut struct {
	Mask   key.Mask
	Key    key.Key
	Action string
	Arg    Argument
}

// String returns a representation like "command+C -> clipcopy(0)".
func (s Shortcut) String() string {
	return fmt.Sprintf("%s+%s -> %s(%s)", s.Mask, s.Key, s.Action, s.Arg)
}

func (s Shortcut) rule() rule {
	return rule{ident: int(s.Key), mask: s.Mask}
}

// EscapeBinding binds a key chord to the bytes sent to the terminal,
// optionally gated on application keypad and application cursor mode.
type EscapeBinding struct {
	Key    key.Key
	Mask   key.Mask
	Output string
	Keypad Requirement
	Cursor Requirement
}

// String returns a representation like `shift+Up -> "\x1b[1;2A"`.
func (e EscapeBinding) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s+%s -> %q", e.Mask, e.Key, e.Output)
	if e.Keypad != Ignore {
		fmt.Fprintf(&b, " keypad=%s", e.Keypad)
	}
	if e.Cursor != Ignore {
		fmt.Fprintf(&b, " cursor=%s", e.Cursor)
	}
	return b.String()
}

func (e EscapeBinding) rule() rule {
	return rule{ident: int(e.Key), mask: e.Mask, keypad: e.Keypad, cursor: e.Cursor}
}

// MouseShortcut binds a button chord to an application action.
type MouseShortcut struct {
	Mask   key.Mask
	Button mouse.Button
	Action string
	Arg    Argument
	Phase  mouse.Phase
}

// String returns a representation like "shift+scroll-up -> ttysend(...)".
func (m MouseShortcut) String() string {
	s := fmt.Sprintf("%s+%s -> %s(%s)", m.Mask, m.Button, m.Action, m.Arg)
	if m.Phase != mouse.PhaseBoth {
		s += " on " + m.Phase.String()
	}
	return s
}

func (m MouseShortcut) rule() rule {
	return rule{ident: int(m.Button), mask: m.Mask, phase: m.Phase}
}

// SelectionVariant is the shape of a mouse selection.
type SelectionVariant uint8

const (
	// SelectNormal selects text in reading order.
	SelectNormal SelectionVariant = iota
	// SelectRectangular selects a block of cells.
	SelectRectangular
)

// String returns "normal" or "rectangular".
func (v SelectionVariant) String() string {
	switch v {
	case SelectRectangular:
		return "rectangular"
	default:
		return "normal"
	}
}

// ParseSelectionVariant parses a variant name.
func ParseSelectionVariant(s string) (SelectionVariant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "regular":
		return SelectNormal, nil
	case "rectangular", "rect", "block":
		return SelectRectangular, nil
	default:
		return SelectNormal, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
}

// SelectionMasks is a sparse mapping from selection variant to the modifier
// mask that forces it. Variants without an entry have no forcing mask.
// The zero value is empty and ready to use.
type SelectionMasks struct {
	masks map[SelectionVariant]key.Mask
}

// NewSelectionMasks copies m into an immutable SelectionMasks.
func NewSelectionMasks(m map[SelectionVariant]key.Mask) SelectionMasks {
	s := SelectionMasks{masks: make(map[SelectionVariant]key.Mask, len(m))}
	for v, mask := range m {
		s.masks[v] = mask
	}
	return s
}

// Lookup returns the mask for a variant.
func (s SelectionMasks) Lookup(v SelectionVariant) (key.Mask, bool) {
	mask, ok := s.masks[v]
	return mask, ok
}

// Len returns the number of variants with a mask.
func (s SelectionMasks) Len() int {
	return len(s.masks)
}

// Variants returns the variants with a mask in ascending order.
func (s SelectionMasks) Variants() []SelectionVariant {
	variants := make([]SelectionVariant, 0, len(s.masks))
	for v := range s.masks {
		variants = append(variants, v)
	}
	sort.Slice(variants, func(i, j int) bool { return variants[i] < variants[j] })
	return variants
}

// With returns a copy with the mask for v replaced.
func (s SelectionMasks) With(v SelectionVariant, mask key.Mask) SelectionMasks {
	out := NewSelectionMasks(s.masks)
	out.masks[v] = mask
	return out
}
