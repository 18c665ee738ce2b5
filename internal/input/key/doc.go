// Package key provides key identifiers, modifier masks and key events for
// the input resolution engine.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Key: Identifies a physical key (navigation, function, keypad or ANSI keys)
//   - Modifier: Bit-set of held modifier keys (Shift, Control, Option, Command)
//   - Mask: A modifier requirement written in a binding table; either a
//     concrete modifier set, Any, or None
//   - Event: A single key press or release with modifiers and timestamp
//
// # Mask Matching
//
// Matches decides whether a binding's Mask accepts an observed modifier
// set. Any accepts every state, None accepts only the empty set, and a
// concrete mask requires the observed modifiers to equal it exactly:
//
//	key.Matches(key.MaskOf(key.ModShift), key.ModShift)              // true
//	key.Matches(key.MaskOf(key.ModShift), key.ModShift|key.ModOption) // false
//	key.Matches(key.MaskAny, key.ModControl)                         // true
//
// # Mask Specifications
//
// Masks are written in configuration files as "any", "none", or a list of
// modifier names joined by "+" or "-": "shift", "control+shift", "C-S".
package key
