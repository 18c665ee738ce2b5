package keymap

import (
	"github.com/rs/zerolog"
)

// Table names used in warnings and errors.
const (
	TableShortcuts = "shortcuts"
	TableKeys      = "keys"
	TableMouse     = "mouse"
	TableSelection = "selection"
)

// Entry is the set of binding types that can be held in a Table.
type Entry interface {
	Shortcut | EscapeBinding | MouseShortcut
	rule() rule
}

// Table is an immutable ordered list of bindings.
// A nil *Table behaves as an empty table.
type Table[E Entry] struct {
	name    string
	entries []E
}

// ShortcutTable holds key shortcuts.
type ShortcutTable = Table[Shortcut]

// EscapeTable holds escape-sequence key bindings.
type EscapeTable = Table[EscapeBinding]

// MouseTable holds mouse shortcuts.
type MouseTable = Table[MouseShortcut]

// Option configures table construction.
type Option func(*options)

type options struct {
	report func([]Warning)
	logger *zerolog.Logger
}

// WithValidation runs the validation pass at construction and passes the
// warnings (possibly none) to report.
func WithValidation(report func([]Warning)) Option {
	return func(o *options) {
		o.report = report
	}
}

// WithLogger runs the validation pass at construction and logs every
// warning at warn level.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) validating() bool {
	return o.report != nil || o.logger != nil
}

func (o options) emit(warnings []Warning) {
	if o.logger != nil {
		for _, w := range warnings {
			o.logger.Warn().
				Str("table", w.Table).
				Ints("indices", w.Indices).
				Str("reason", string(w.Reason)).
				Msg("binding table defect")
		}
	}
	if o.report != nil {
		o.report(warnings)
	}
}

// NewTable creates a named table holding a copy of entries.
func NewTable[E Entry](name string, entries []E, opts ...Option) *Table[E] {
	t := &Table[E]{
		name:    name,
		entries: make([]E, len(entries)),
	}
	copy(t.entries, entries)

	if o := buildOptions(opts); o.validating() {
		o.emit(t.Validate())
	}
	return t
}

// NewShortcutTable creates the shortcut table.
func NewShortcutTable(entries []Shortcut, opts ...Option) *ShortcutTable {
	return NewTable(TableShortcuts, entries, opts...)
}

// NewEscapeTable creates the escape-sequence key table.
func NewEscapeTable(entries []EscapeBinding, opts ...Option) *EscapeTable {
	return NewTable(TableKeys, entries, opts...)
}

// NewMouseTable creates the mouse shortcut table.
func NewMouseTable(entries []MouseShortcut, opts ...Option) *MouseTable {
	return NewTable(TableMouse, entries, opts...)
}

// Name returns the table name.
func (t *Table[E]) Name() string {
	if t == nil {
		return ""
	}
	return t.name
}

// Len returns the number of entries.
func (t *Table[E]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// At returns the entry at position i. It panics if i is out of range.
func (t *Table[E]) At(i int) E {
	return t.entries[i]
}

// All returns a copy of the entries in definition order.
func (t *Table[E]) All() []E {
	if t == nil {
		return nil
	}
	out := make([]E, len(t.entries))
	copy(out, t.entries)
	return out
}

// Validate runs the validation pass over the table.
func (t *Table[E]) Validate() []Warning {
	if t == nil {
		return nil
	}
	rules := make([]rule, len(t.entries))
	for i, e := range t.entries {
		rules[i] = e.rule()
	}
	return validateRules(t.name, rules)
}

// Tables bundles every binding table used by the resolver. It is built once
// at startup and shared read-only.
type Tables struct {
	Shortcuts *ShortcutTable
	Keys      *EscapeTable
	Mouse     *MouseTable
	Selection SelectionMasks
}

// NewTables builds a Tables bundle. Validation options apply to the bundle
// as a whole.
func NewTables(shortcuts []Shortcut, keys []EscapeBinding, buttons []MouseShortcut, selection SelectionMasks, opts ...Option) *Tables {
	t := &Tables{
		Shortcuts: NewShortcutTable(shortcuts),
		Keys:      NewEscapeTable(keys),
		Mouse:     NewMouseTable(buttons),
		Selection: selection,
	}
	if o := buildOptions(opts); o.validating() {
		o.emit(t.Validate())
	}
	return t
}

// Validate runs the validation pass over every table.
func (t *Tables) Validate() []Warning {
	if t == nil {
		return nil
	}
	var warnings []Warning
	warnings = append(warnings, t.Shortcuts.Validate()...)
	warnings = append(warnings, t.Keys.Validate()...)
	warnings = append(warnings, t.Mouse.Validate()...)
	warnings = append(warnings, t.Selection.Validate()...)
	return warnings
}

// Overrides reports escape bindings that a shortcut takes precedence over
// in every mode. An override is often deliberate, so it is reported apart
// from Validate.
func (t *Tables) Overrides() []Warning {
	if t == nil {
		return nil
	}
	return validateOverrides(t.Shortcuts, t.Keys)
}
