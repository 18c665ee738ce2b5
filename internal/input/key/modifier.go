package key

import "strings"

// Modifier is the set of modifier keys held during an input event.
type Modifier uint8

const (
	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModControl indicates the Control key.
	ModControl

	// ModOption indicates the Option key (Alt on PC keyboards).
	ModOption

	// ModCommand indicates the Command key (Super/Win on PC keyboards).
	ModCommand
)

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModAll is the union of every modifier that participates in matching.
	ModAll = ModShift | ModControl | ModOption | ModCommand
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasControl returns true if Control is pressed.
func (m Modifier) HasControl() bool {
	return m.Has(ModControl)
}

// HasOption returns true if Option is pressed.
func (m Modifier) HasOption() bool {
	return m.Has(ModOption)
}

// HasCommand returns true if Command is pressed.
func (m Modifier) HasCommand() bool {
	return m.Has(ModCommand)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m&ModAll == ModNone
}

// String returns a human-readable representation like "Control+Shift".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasControl() {
		parts = append(parts, "Control")
	}
	if m.HasOption() {
		parts = append(parts, "Option")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasCommand() {
		parts = append(parts, "Command")
	}
	return strings.Join(parts, "+")
}

// ShortString returns a compact representation like "C-O-S-D".
func (m Modifier) ShortString() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasControl() {
		parts = append(parts, "C")
	}
	if m.HasOption() {
		parts = append(parts, "O")
	}
	if m.HasShift() {
		parts = append(parts, "S")
	}
	if m.HasCommand() {
		parts = append(parts, "D")
	}
	return strings.Join(parts, "-")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModControl,
	"control": ModControl,
	"c":       ModControl,
	"option":  ModOption,
	"opt":     ModOption,
	"alt":     ModOption,
	"o":       ModOption,
	"a":       ModOption,
	"shift":   ModShift,
	"s":       ModShift,
	"command": ModCommand,
	"cmd":     ModCommand,
	"meta":    ModCommand,
	"super":   ModCommand,
	"win":     ModCommand,
	"d":       ModCommand,
	"m":       ModCommand,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ParseModifiers parses a modifier string like "Control+Option" or "C-O".
// Unrecognized names are ignored.
func ParseModifiers(s string) Modifier {
	mods, _ := parseModifiers(s)
	return mods
}

// parseModifiers splits s on "+" or "-" and returns the combined
// modifiers along with the first name that was not recognized.
func parseModifiers(s string) (Modifier, string) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ModNone, ""
	}

	var parts []string
	if strings.Contains(s, "+") {
		parts = strings.Split(s, "+")
	} else if strings.Contains(s, "-") {
		parts = strings.Split(s, "-")
	} else if strings.Contains(s, "|") {
		parts = strings.Split(s, "|")
	} else {
		parts = []string{s}
	}

	var result Modifier
	unknown := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		mod := ModifierFromName(part)
		if mod == ModNone && unknown == "" {
			unknown = part
			continue
		}
		result = result.With(mod)
	}
	return result, unknown
}
