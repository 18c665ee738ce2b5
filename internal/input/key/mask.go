package key

import (
	"fmt"
	"strings"
)

type maskKind uint8

const (
	// The zero Mask is None.
	maskNone maskKind = iota
	maskConcrete
	maskAny
)

// Mask is the modifier requirement of a binding table entry.
//
// A Mask is either a concrete, non-empty modifier set, the wildcard Any,
// or None. Any and None never carry modifier bits. The zero value is None.
type Mask struct {
	kind maskKind
	mods Modifier
}

var (
	// MaskAny matches every observed modifier state.
	MaskAny = Mask{kind: maskAny}

	// MaskNone matches only the empty modifier set.
	MaskNone = Mask{kind: maskNone}
)

// MaskOf returns a concrete mask requiring exactly mods.
// Bits outside ModAll are dropped; an empty set yields MaskNone.
func MaskOf(mods Modifier) Mask {
	mods &= ModAll
	if mods == ModNone {
		return MaskNone
	}
	return Mask{kind: maskConcrete, mods: mods}
}

// IsAny returns true for the wildcard mask.
func (m Mask) IsAny() bool {
	return m.kind == maskAny
}

// IsNone returns true for the mask that matches only the empty set.
func (m Mask) IsNone() bool {
	return m.kind == maskNone
}

// IsConcrete returns true if the mask names a non-empty modifier set.
func (m Mask) IsConcrete() bool {
	return m.kind == maskConcrete
}

// Modifiers returns the modifiers of a concrete mask, or ModNone.
func (m Mask) Modifiers() Modifier {
	return m.mods
}

// Matches reports whether the mask accepts the observed modifiers.
func (m Mask) Matches(observed Modifier) bool {
	return Matches(m, observed)
}

// String returns "any", "none", or the modifier names like "control+shift".
func (m Mask) String() string {
	switch m.kind {
	case maskAny:
		return "any"
	case maskNone:
		return "none"
	default:
		return strings.ToLower(m.mods.String())
	}
}

// Matches decides whether a required mask accepts an observed modifier set.
//
// Any always matches. None matches only when observed is empty. A concrete
// mask matches when the observed modifiers are exactly equal to it; a
// superset or subset does not match. Callers apply any ignore mask to
// observed before calling.
func Matches(required Mask, observed Modifier) bool {
	observed &= ModAll
	switch required.kind {
	case maskAny:
		return true
	case maskNone:
		return observed == ModNone
	default:
		return observed == required.mods
	}
}

// ParseMask parses a mask specification: "any", "none", or modifier names
// joined with "+", "-" or "|". Names are case-insensitive.
func ParseMask(s string) (Mask, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "any", "*":
		return MaskAny, nil
	case "none", "":
		return MaskNone, nil
	}

	mods, unknown := parseModifiers(s)
	if unknown != "" {
		return MaskNone, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, unknown, s)
	}
	return MaskOf(mods), nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mask) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mask) UnmarshalText(text []byte) error {
	parsed, err := ParseMask(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
