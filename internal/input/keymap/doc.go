// Package keymap provides the binding tables of the input resolution engine.
//
// A binding table is an immutable, ordered list of rules. Resolution scans
// tables strictly in definition order and the first matching rule wins, so
// table order, not specificity, decides between overlapping rules.
//
// # Tables
//
// ShortcutTable: key chords bound to application actions (copy, paste,
// zoom). Shortcuts are consulted before escape bindings, which lets a user
// shortcut override a compatibility sequence without editing it.
//
// EscapeTable: key chords bound to the byte sequences a VT100/xterm
// compatible terminal sends, optionally gated on application keypad and
// application cursor mode.
//
// MouseTable: button chords bound to actions, optionally restricted to the
// press or release phase.
//
// SelectionMasks: modifier masks that pick a selection variant (normal or
// rectangular) when a selection starts.
//
// # Table Order
//
// For a given key or button, entries with a concrete mask must come before
// any entry with the Any mask; otherwise the concrete entry can never be
// reached:
//
//	{Key: key.KeyUp, Mask: key.MaskOf(key.ModShift), Output: "\x1b[1;2A"},
//	{Key: key.KeyUp, Mask: key.MaskAny, Output: "\x1b[A", Cursor: RequireOff},
//	{Key: key.KeyUp, Mask: key.MaskAny, Output: "\x1bOA", Cursor: RequireOn},
//
// The validation pass (Validate, or WithValidation at construction)
// reports such shadowed entries and duplicate reachable entries as
// warnings. Defective tables still load and resolve; the first match
// simply wins.
//
// # Loading
//
//	b, err := keymap.NewLoader(log).LoadFile("bindings.toml")
//	if err != nil {
//	    return err
//	}
//	tables := keymap.Apply(keymap.DefaultTables(), []*keymap.Bindings{b}, keymap.WithLogger(log))
package keymap
