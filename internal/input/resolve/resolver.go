package resolve

import (
	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Resolver maps input events to results using a fixed set of tables.
type Resolver struct {
	tables *keymap.Tables
	logger zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger traces every resolution at debug level.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver over tables. The tables are shared, not copied,
// and must not change afterwards. A nil tables resolves every event as
// Unhandled.
func New(tables *keymap.Tables, opts ...Option) *Resolver {
	if tables == nil {
		tables = &keymap.Tables{}
	}
	r := &Resolver{
		tables: tables,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tables returns the tables the resolver scans.
func (r *Resolver) Tables() *keymap.Tables {
	return r.tables
}

// ResolveKey resolves a key event. Shortcuts are consulted before escape
// bindings; within each table the first match wins. Release events are
// Unhandled.
func (r *Resolver) ResolveKey(ev key.Event, ctx mode.Context) Result {
	if ev.Release {
		return unhandled
	}

	effective := ev.Modifiers &^ ctx.Ignore

	shortcuts := r.tables.Shortcuts
	for i := 0; i < shortcuts.Len(); i++ {
		s := shortcuts.At(i)
		if s.Key != ev.Key || !key.Matches(s.Mask, effective) {
			continue
		}
		res := Result{
			Kind:   Action,
			Action: s.Action,
			Arg:    s.Arg,
			Table:  shortcuts.Name(),
			Index:  i,
		}
		r.trace(ev.String(), ctx, res)
		return res
	}

	keys := r.tables.Keys
	for i := 0; i < keys.Len(); i++ {
		e := keys.At(i)
		if e.Key != ev.Key || !key.Matches(e.Mask, effective) {
			continue
		}
		if !e.Keypad.Satisfied(ctx.KeypadApp) || !e.Cursor.Satisfied(ctx.CursorApp) {
			continue
		}
		res := Result{
			Kind:  Bytes,
			Bytes: []byte(e.Output),
			Table: keys.Name(),
			Index: i,
		}
		r.trace(ev.String(), ctx, res)
		return res
	}

	r.trace(ev.String(), ctx, unhandled)
	return unhandled
}

// ResolveMouse resolves a mouse event against the mouse table. The ignore
// mask is not applied to mouse modifiers.
func (r *Resolver) ResolveMouse(ev mouse.Event, ctx mode.Context) Result {
	buttons := r.tables.Mouse
	for i := 0; i < buttons.Len(); i++ {
		m := buttons.At(i)
		if m.Button != ev.Button || !key.Matches(m.Mask, ev.Modifiers) {
			continue
		}
		if !m.Phase.Accepts(ev.Release) {
			continue
		}
		res := Result{
			Kind:   Action,
			Action: m.Action,
			Arg:    m.Arg,
			Table:  buttons.Name(),
			Index:  i,
		}
		r.trace(ev.String(), ctx, res)
		return res
	}

	r.trace(ev.String(), ctx, unhandled)
	return unhandled
}

// ForcesSelection reports whether ev starts a forced selection: a press of
// the primary button with every forced selection modifier held. When it
// does, the mouse table must not be consulted for the event.
func (r *Resolver) ForcesSelection(ev mouse.Event, ctx mode.Context) bool {
	force := ctx.ForceSelect & key.ModAll
	if force == key.ModNone || ev.Release || ev.Button != mouse.ButtonPrimary {
		return false
	}
	return ev.Modifiers&force == force
}

// HandleMouse resolves a mouse event after applying the forced selection
// rule. A forced selection yields a Selection result carrying the variant.
func (r *Resolver) HandleMouse(ev mouse.Event, ctx mode.Context) Result {
	if r.ForcesSelection(ev, ctx) {
		res := Result{
			Kind:    Selection,
			Variant: r.Variant(ev, ctx),
			Table:   keymap.TableSelection,
			Index:   -1,
		}
		r.trace(ev.String(), ctx, res)
		return res
	}
	return r.ResolveMouse(ev, ctx)
}

// Variant picks the selection variant for a selection started by ev.
func (r *Resolver) Variant(ev mouse.Event, ctx mode.Context) keymap.SelectionVariant {
	return SelectionVariantFor(ev, ctx, r.tables.Selection)
}

func (r *Resolver) trace(event string, ctx mode.Context, res Result) {
	r.logger.Debug().
		Str("event", event).
		Bool("keypad", ctx.KeypadApp).
		Bool("cursor", ctx.CursorApp).
		Str("result", res.String()).
		Msg("resolved")
}
