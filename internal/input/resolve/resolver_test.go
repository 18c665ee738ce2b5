package resolve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

func defaultResolver() *Resolver {
	return New(keymap.DefaultTables())
}

func defaultContext() mode.Context {
	return mode.Context{
		Ignore:      keymap.DefaultIgnoreMod,
		ForceSelect: keymap.DefaultForceMouseMod,
	}
}

func TestResolveKeyScenarios(t *testing.T) {
	r := defaultResolver()

	tests := []struct {
		name   string
		key    key.Key
		mods   key.Modifier
		cursor bool
		want   string
	}{
		{"shift up concrete entry", key.KeyUp, key.ModShift, false, "\033[1;2A"},
		{"up in application cursor mode", key.KeyUp, key.ModNone, true, "\033OA"},
		{"up in normal cursor mode", key.KeyUp, key.ModNone, false, "\033[A"},
		{"shift up ignores cursor mode", key.KeyUp, key.ModShift, true, "\033[1;2A"},
		{"control option shift down", key.KeyDown, key.ModControl | key.ModOption | key.ModShift, false, "\033[1;8B"},
		{"command left falls to any", key.KeyLeft, key.ModCommand, false, "\033[D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := defaultContext().WithCursor(tt.cursor)
			got := r.ResolveKey(key.NewEvent(tt.key, tt.mods), ctx)
			if got.Kind != Bytes {
				t.Fatalf("ResolveKey() kind = %v, want %v", got.Kind, Bytes)
			}
			if string(got.Bytes) != tt.want {
				t.Errorf("ResolveKey() bytes = %q, want %q", got.Bytes, tt.want)
			}
		})
	}
}

func TestResolveKeyShortcuts(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()

	tests := []struct {
		name   string
		key    key.Key
		mods   key.Modifier
		action string
		arg    keymap.Argument
	}{
		{"copy", key.KeyC, key.ModCommand, keymap.ActionClipCopy, keymap.IntArg(0)},
		{"paste", key.KeyV, key.ModCommand, keymap.ActionClipPaste, keymap.IntArg(0)},
		{"zoom in", key.KeyEqual, key.ModCommand, keymap.ActionZoom, keymap.FloatArg(1)},
		{"zoom out", key.KeyMinus, key.ModCommand, keymap.ActionZoom, keymap.FloatArg(-1)},
		{"zoom reset", key.Key0, key.ModCommand, keymap.ActionZoomReset, keymap.FloatArg(0)},
		{"selection paste", key.KeyY, key.ModControl | key.ModShift, keymap.ActionSelPaste, keymap.IntArg(0)},
		{"shift help wins over escape table", key.KeyHelp, key.ModShift, keymap.ActionSelPaste, keymap.IntArg(0)},
		{"numlock", key.KeyKeypadClear, key.ModControl | key.ModShift, keymap.ActionNumLock, keymap.IntArg(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveKey(key.NewEvent(tt.key, tt.mods), ctx)
			if got.Kind != Action {
				t.Fatalf("ResolveKey() = %v, want action", got)
			}
			if got.Action != tt.action || got.Arg != tt.arg {
				t.Errorf("ResolveKey() = %s(%s), want %s(%s)", got.Action, got.Arg, tt.action, tt.arg)
			}
			if got.Table != keymap.TableShortcuts {
				t.Errorf("Table = %q, want %q", got.Table, keymap.TableShortcuts)
			}
		})
	}
}

func TestResolveKeyExactMask(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()

	// Command+Shift+C is not Command+C, and the key table has no C entry.
	got := r.ResolveKey(key.NewEvent(key.KeyC, key.ModCommand|key.ModShift), ctx)
	if got.Kind != Unhandled {
		t.Errorf("ResolveKey(D-S-C) = %v, want unhandled", got)
	}

	// Delete has a None entry, so a bare Delete matches it but Shift+Delete
	// matches nothing.
	got = r.ResolveKey(key.NewEvent(key.KeyDelete, key.ModNone), ctx)
	if string(got.Bytes) != "\177" {
		t.Errorf("ResolveKey(Delete) = %v, want DEL", got)
	}
	got = r.ResolveKey(key.NewEvent(key.KeyDelete, key.ModShift), ctx)
	if got.Kind != Unhandled {
		t.Errorf("ResolveKey(S-Delete) = %v, want unhandled", got)
	}
}

func TestResolveKeyUnhandled(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()

	got := r.ResolveKey(key.NewEvent(key.KeyQ, key.ModNone), ctx)
	if got.Kind != Unhandled || got.Index != -1 || got.IsHandled() {
		t.Errorf("ResolveKey(q) = %+v, want unhandled", got)
	}

	got = r.ResolveKey(key.NewReleaseEvent(key.KeyUp, key.ModShift), ctx)
	if got.Kind != Unhandled {
		t.Errorf("ResolveKey(release) = %v, want unhandled", got)
	}
}

func TestResolveKeyIgnoreMask(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()
	ctx.Ignore = key.ModCommand

	got := r.ResolveKey(key.NewEvent(key.KeyUp, key.ModShift|key.ModCommand), ctx)
	if string(got.Bytes) != "\033[1;2A" {
		t.Errorf("ResolveKey(D-S-Up) with command ignored = %v, want shift entry", got)
	}

	// Ignoring Command also hides the Command shortcuts.
	got = r.ResolveKey(key.NewEvent(key.KeyC, key.ModCommand), ctx)
	if got.Kind == Action {
		t.Errorf("ResolveKey(D-C) with command ignored = %v, want no action", got)
	}
}

func TestResolveKeyDeterministic(t *testing.T) {
	r := defaultResolver()

	for _, keypad := range []bool{false, true} {
		for _, cursor := range []bool{false, true} {
			ctx := defaultContext().WithKeypad(keypad).WithCursor(cursor)
			for k := key.KeyEscape; k <= key.KeyMinus; k++ {
				for mods := key.ModNone; mods <= key.ModAll; mods++ {
					ev := key.NewEvent(k, mods)
					first := r.ResolveKey(ev, ctx)
					second := r.ResolveKey(ev, ctx)
					if first.String() != second.String() {
						t.Fatalf("ResolveKey(%v, %v) not deterministic: %v then %v", ev, ctx, first, second)
					}
				}
			}
		}
	}
}

func TestResolveKeyPositionalPrecedence(t *testing.T) {
	tables := keymap.NewTables(nil, []keymap.EscapeBinding{
		{Key: key.KeyUp, Mask: key.MaskAny, Output: "generic"},
		{Key: key.KeyUp, Mask: key.MaskOf(key.ModShift), Output: "specific"},
	}, nil, keymap.SelectionMasks{})
	r := New(tables)

	got := r.ResolveKey(key.NewEvent(key.KeyUp, key.ModShift), defaultContext())
	if string(got.Bytes) != "generic" || got.Index != 0 {
		t.Errorf("ResolveKey() = %v, want the earlier Any entry", got)
	}
}

func TestResolveKeyShortcutsBeforeEscapes(t *testing.T) {
	tables := keymap.NewTables(
		[]keymap.Shortcut{{Mask: key.MaskOf(key.ModShift), Key: key.KeyUp, Action: "scroll"}},
		[]keymap.EscapeBinding{{Key: key.KeyUp, Mask: key.MaskOf(key.ModShift), Output: "\033[1;2A"}},
		nil, keymap.SelectionMasks{})
	r := New(tables)

	got := r.ResolveKey(key.NewEvent(key.KeyUp, key.ModShift), defaultContext())
	if got.Kind != Action || got.Action != "scroll" {
		t.Errorf("ResolveKey() = %v, want the shortcut", got)
	}
}

func TestResolveKeyModeExclusivity(t *testing.T) {
	r := defaultResolver()

	// Help+Control has a RequireOff and a RequireOn keypad entry.
	tests := []struct {
		keypad bool
		want   string
	}{
		{false, "\033[L"},
		{true, "\033[2;5~"},
	}

	for _, tt := range tests {
		ctx := defaultContext().WithKeypad(tt.keypad)
		got := r.ResolveKey(key.NewEvent(key.KeyHelp, key.ModControl), ctx)
		if string(got.Bytes) != tt.want {
			t.Errorf("keypad=%v: ResolveKey(C-Help) = %v, want %q", tt.keypad, got, tt.want)
		}
	}

	// Each gated pair selects exactly one entry in every mode.
	for _, keypad := range []bool{false, true} {
		for _, cursor := range []bool{false, true} {
			matched := 0
			for _, e := range keymap.DefaultEscapeBindings() {
				if e.Key != key.KeyUp || !e.Mask.IsAny() {
					continue
				}
				if e.Keypad.Satisfied(keypad) && e.Cursor.Satisfied(cursor) {
					matched++
				}
			}
			if matched != 1 {
				t.Errorf("keypad=%v cursor=%v: %d Any entries for Up selectable, want 1", keypad, cursor, matched)
			}
		}
	}
}

func TestResolveKeyByteExact(t *testing.T) {
	outputs := []string{"\033[1;2A", "\x00", "\177", "\033\r", "plain", "\xff\xfe"}

	for _, out := range outputs {
		tables := keymap.NewTables(nil, []keymap.EscapeBinding{
			{Key: key.KeyF5, Mask: key.MaskNone, Output: out},
		}, nil, keymap.SelectionMasks{})
		got := New(tables).ResolveKey(key.NewEvent(key.KeyF5, key.ModNone), defaultContext())
		if !bytes.Equal(got.Bytes, []byte(out)) {
			t.Errorf("ResolveKey() bytes = %q, want %q", got.Bytes, out)
		}
	}
}

func TestResolveKeyBytesOwned(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()
	ev := key.NewEvent(key.KeyUp, key.ModShift)

	first := r.ResolveKey(ev, ctx)
	first.Bytes[0] = 'X'

	second := r.ResolveKey(ev, ctx)
	if string(second.Bytes) != "\033[1;2A" {
		t.Errorf("ResolveKey() after mutation = %q", second.Bytes)
	}
}

func TestResolveMouse(t *testing.T) {
	r := defaultResolver()
	ctx := defaultContext()

	tests := []struct {
		name   string
		ev     mouse.Event
		kind   Kind
		action string
		arg    string
	}{
		{"shift scroll up", mouse.NewPress(mouse.ButtonScrollUp, key.ModShift), Action, keymap.ActionTTYSend, "\033[5;2~"},
		{"scroll up", mouse.NewPress(mouse.ButtonScrollUp, key.ModNone), Action, keymap.ActionTTYSend, "\031"},
		{"control scroll up", mouse.NewPress(mouse.ButtonScrollUp, key.ModControl), Action, keymap.ActionTTYSend, "\031"},
		{"shift scroll down", mouse.NewPress(mouse.ButtonScrollDown, key.ModShift), Action, keymap.ActionTTYSend, "\033[6;2~"},
		{"scroll down", mouse.NewPress(mouse.ButtonScrollDown, key.ModNone), Action, keymap.ActionTTYSend, "\005"},
		{"middle release", mouse.NewRelease(mouse.ButtonMiddle, key.ModNone), Action, keymap.ActionSelPaste, ""},
		{"middle press", mouse.NewPress(mouse.ButtonMiddle, key.ModNone), Unhandled, "", ""},
		{"right press", mouse.NewPress(mouse.ButtonRight, key.ModNone), Unhandled, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.ResolveMouse(tt.ev, ctx)
			if got.Kind != tt.kind {
				t.Fatalf("ResolveMouse() = %v, want kind %v", got, tt.kind)
			}
			if got.Action != tt.action {
				t.Errorf("Action = %q, want %q", got.Action, tt.action)
			}
			if s, ok := got.Arg.Str(); ok && s != tt.arg {
				t.Errorf("Arg = %q, want %q", s, tt.arg)
			}
		})
	}
}

func TestResolveMouseIgnoresIgnoreMask(t *testing.T) {
	tables := keymap.NewTables(nil, nil, []keymap.MouseShortcut{
		{Mask: key.MaskOf(key.ModShift), Button: mouse.ButtonRight, Action: "menu"},
	}, keymap.SelectionMasks{})
	r := New(tables)

	ctx := defaultContext()
	ctx.Ignore = key.ModCommand

	got := r.ResolveMouse(mouse.NewPress(mouse.ButtonRight, key.ModShift|key.ModCommand), ctx)
	if got.Kind != Unhandled {
		t.Errorf("ResolveMouse() = %v, want unhandled with the ignore mask not applied", got)
	}
}

func TestForcesSelection(t *testing.T) {
	r := defaultResolver()

	tests := []struct {
		name  string
		ev    mouse.Event
		force key.Modifier
		want  bool
	}{
		{"shift left press", mouse.NewPress(mouse.ButtonLeft, key.ModShift), key.ModShift, true},
		{"shift option left press", mouse.NewPress(mouse.ButtonLeft, key.ModShift|key.ModOption), key.ModShift, true},
		{"left press without shift", mouse.NewPress(mouse.ButtonLeft, key.ModNone), key.ModShift, false},
		{"shift left release", mouse.NewRelease(mouse.ButtonLeft, key.ModShift), key.ModShift, false},
		{"shift middle press", mouse.NewPress(mouse.ButtonMiddle, key.ModShift), key.ModShift, false},
		{"forcing disabled", mouse.NewPress(mouse.ButtonLeft, key.ModShift), key.ModNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := defaultContext()
			ctx.ForceSelect = tt.force
			if got := r.ForcesSelection(tt.ev, ctx); got != tt.want {
				t.Errorf("ForcesSelection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHandleMouseForcedSelectionBypassesTable(t *testing.T) {
	tables := keymap.NewTables(nil, nil, []keymap.MouseShortcut{
		{Mask: key.MaskAny, Button: mouse.ButtonLeft, Action: "swallow"},
	}, keymap.DefaultSelectionMasks())
	r := New(tables)
	ctx := defaultContext()

	got := r.HandleMouse(mouse.NewPress(mouse.ButtonLeft, key.ModShift), ctx)
	if got.Kind != Selection || got.Variant != keymap.SelectNormal {
		t.Errorf("HandleMouse(S-left) = %v, want normal selection", got)
	}

	got = r.HandleMouse(mouse.NewPress(mouse.ButtonLeft, key.ModShift|key.ModOption), ctx)
	if got.Kind != Selection || got.Variant != keymap.SelectRectangular {
		t.Errorf("HandleMouse(S-O-left) = %v, want rectangular selection", got)
	}

	got = r.HandleMouse(mouse.NewPress(mouse.ButtonLeft, key.ModNone), ctx)
	if got.Kind != Action || got.Action != "swallow" {
		t.Errorf("HandleMouse(left) = %v, want the table entry", got)
	}
}

func TestSelectionVariant(t *testing.T) {
	masks := keymap.DefaultSelectionMasks()

	tests := []struct {
		held key.Modifier
		want keymap.SelectionVariant
	}{
		{key.ModOption, keymap.SelectRectangular},
		{key.ModShift, keymap.SelectNormal},
		{key.ModNone, keymap.SelectNormal},
		{key.ModOption | key.ModControl, keymap.SelectNormal},
	}

	for _, tt := range tests {
		if got := SelectionVariant(tt.held, masks); got != tt.want {
			t.Errorf("SelectionVariant(%v) = %v, want %v", tt.held, got, tt.want)
		}
	}

	if got := SelectionVariant(key.ModOption, keymap.SelectionMasks{}); got != keymap.SelectNormal {
		t.Errorf("SelectionVariant() with no masks = %v, want normal", got)
	}
}

func TestNilTables(t *testing.T) {
	r := New(nil)
	ctx := defaultContext()

	if got := r.ResolveKey(key.NewEvent(key.KeyUp, key.ModNone), ctx); got.Kind != Unhandled {
		t.Errorf("ResolveKey() = %v, want unhandled", got)
	}
	if got := r.HandleMouse(mouse.NewPress(mouse.ButtonLeft, key.ModShift), ctx); got.Variant != keymap.SelectNormal {
		t.Errorf("HandleMouse() = %v, want normal selection", got)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	r := New(keymap.DefaultTables(), WithLogger(logger))

	r.ResolveKey(key.NewEvent(key.KeyUp, key.ModShift), defaultContext())

	if !strings.Contains(buf.String(), `"message":"resolved"`) {
		t.Errorf("log output = %q, want a resolved trace", buf.String())
	}
}

func TestResultString(t *testing.T) {
	tests := []struct {
		res  Result
		want string
	}{
		{unhandled, "unhandled"},
		{Result{Kind: Bytes, Bytes: []byte("\033[A"), Table: "keys", Index: 11}, `keys[11]: bytes "\x1b[A"`},
		{Result{Kind: Action, Action: "zoom", Arg: keymap.FloatArg(-1), Table: "shortcuts", Index: 3}, "shortcuts[3]: action zoom(-1)"},
		{Result{Kind: Selection, Variant: keymap.SelectRectangular}, "selection rectangular"},
	}

	for _, tt := range tests {
		if got := tt.res.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
