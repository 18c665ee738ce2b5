package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical keyboard key.
// Identifiers follow the Apple extended keyboard layout: Help sits where
// PC keyboards put Insert, Delete is the backspace key and ForwardDelete
// is the key labelled "Del" on PC keyboards.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyReturn
	KeyTab
	KeySpace
	KeyDelete
	KeyForwardDelete
	KeyHelp
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20

	// Keypad keys
	KeyKeypadClear
	KeyKeypadEnter

	// ANSI letter keys
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// ANSI digit keys
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// ANSI punctuation keys
	KeyEqual
	KeyMinus

	keyCount
)

// keyNames holds the display name of every key, indexed by Key.
var keyNames = [keyCount]string{
	KeyNone:          "None",
	KeyEscape:        "Escape",
	KeyReturn:        "Return",
	KeyTab:           "Tab",
	KeySpace:         "Space",
	KeyDelete:        "Delete",
	KeyForwardDelete: "ForwardDelete",
	KeyHelp:          "Help",
	KeyHome:          "Home",
	KeyEnd:           "End",
	KeyPageUp:        "PageUp",
	KeyPageDown:      "PageDown",
	KeyUp:            "Up",
	KeyDown:          "Down",
	KeyLeft:          "Left",
	KeyRight:         "Right",
	KeyKeypadClear:   "KeypadClear",
	KeyKeypadEnter:   "KeypadEnter",
	KeyEqual:         "Equal",
	KeyMinus:         "Minus",
}

func init() {
	for k := KeyF1; k <= KeyF20; k++ {
		keyNames[k] = fmt.Sprintf("F%d", k-KeyF1+1)
	}
	for k := KeyA; k <= KeyZ; k++ {
		keyNames[k] = string(rune('A' + k - KeyA))
	}
	for k := Key0; k <= Key9; k++ {
		keyNames[k] = string(rune('0' + k - Key0))
	}
	for k, name := range keyNames {
		keyNameMap[strings.ToLower(name)] = Key(k)
	}
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsValid returns true if k is a known key other than KeyNone.
func (k Key) IsValid() bool {
	return k > KeyNone && k < keyCount
}

// IsFunctionKey returns true if this is a function key (F1-F20).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF20
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}

// IsNavigationKey returns true if this is a navigation key.
func (k Key) IsNavigationKey() bool {
	return k.IsArrowKey() || k == KeyHome || k == KeyEnd || k == KeyPageUp || k == KeyPageDown
}

// IsKeypadKey returns true if this is a keypad key.
func (k Key) IsKeypadKey() bool {
	return k == KeyKeypadClear || k == KeyKeypadEnter
}

// keyNameMap maps key names (lowercase) to Key values.
// Canonical names are added by init; the entries below are aliases.
var keyNameMap = map[string]Key{
	"esc":        KeyEscape,
	"enter":      KeyReturn,
	"cr":         KeyReturn,
	"backspace":  KeyDelete,
	"bs":         KeyDelete,
	"del":        KeyForwardDelete,
	"insert":     KeyHelp,
	"ins":        KeyHelp,
	"pgup":       KeyPageUp,
	"pgdn":       KeyPageDown,
	"uparrow":    KeyUp,
	"downarrow":  KeyDown,
	"leftarrow":  KeyLeft,
	"rightarrow": KeyRight,
	"clear":      KeyKeypadClear,
	"numlock":    KeyKeypadClear,
	"kpenter":    KeyKeypadEnter,
	"=":          KeyEqual,
	"-":          KeyMinus,
}

// KeyFromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func KeyFromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}

// ParseKey is like KeyFromName but reports unknown names as an error.
func ParseKey(name string) (Key, error) {
	k := KeyFromName(name)
	if k == KeyNone {
		return KeyNone, fmt.Errorf("%w: %q", ErrUnknownKey, name)
	}
	return k, nil
}
