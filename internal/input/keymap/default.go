package keymap

import (
	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Action names bound by the default tables.
const (
	ActionClipCopy  = "clipcopy"
	ActionClipPaste = "clippaste"
	ActionSelPaste  = "selpaste"
	ActionZoom      = "zoom"
	ActionZoomReset = "zoomreset"
	ActionNumLock   = "numlock"
	ActionTTYSend   = "ttysend"
)

// Defaults for the mode context.
const (
	// DefaultIgnoreMod is the set of modifiers ignored on the key path.
	DefaultIgnoreMod = key.ModNone

	// DefaultForceMouseMod forces selection when held with the primary button.
	DefaultForceMouseMod = key.ModShift
)

var (
	maskShift              = key.MaskOf(key.ModShift)
	maskControl            = key.MaskOf(key.ModControl)
	maskOption             = key.MaskOf(key.ModOption)
	maskCommand            = key.MaskOf(key.ModCommand)
	maskShiftControl       = key.MaskOf(key.ModShift | key.ModControl)
	maskShiftOption        = key.MaskOf(key.ModShift | key.ModOption)
	maskControlOption      = key.MaskOf(key.ModControl | key.ModOption)
	maskShiftControlOption = key.MaskOf(key.ModShift | key.ModControl | key.ModOption)
	maskTerm               = maskShiftControl
)

// DefaultTables returns the built-in tables.
func DefaultTables() *Tables {
	return &Tables{
		Shortcuts: NewShortcutTable(DefaultShortcuts()),
		Keys:      NewEscapeTable(DefaultEscapeBindings()),
		Mouse:     NewMouseTable(DefaultMouseShortcuts()),
		Selection: DefaultSelectionMasks(),
	}
}

// DefaultMouseShortcuts returns the built-in mouse shortcuts.
func DefaultMouseShortcuts() []MouseShortcut {
	return []MouseShortcut{
		{Mask: key.MaskAny, Button: mouse.ButtonMiddle, Action: ActionSelPaste, Arg: IntArg(0), Phase: mouse.PhaseRelease},
		{Mask: maskShift, Button: mouse.ButtonScrollUp, Action: ActionTTYSend, Arg: StringArg("\033[5;2~")},
		{Mask: key.MaskAny, Button: mouse.ButtonScrollUp, Action: ActionTTYSend, Arg: StringArg("\031")},
		{Mask: maskShift, Button: mouse.ButtonScrollDown, Action: ActionTTYSend, Arg: StringArg("\033[6;2~")},
		{Mask: key.MaskAny, Button: mouse.ButtonScrollDown, Action: ActionTTYSend, Arg: StringArg("\005")},
	}
}

// DefaultShortcuts returns the built-in key shortcuts.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Mask: maskCommand, Key: key.KeyC, Action: ActionClipCopy, Arg: IntArg(0)},
		{Mask: maskCommand, Key: key.KeyV, Action: ActionClipPaste, Arg: IntArg(0)},
		{Mask: maskCommand, Key: key.KeyEqual, Action: ActionZoom, Arg: FloatArg(+1)},
		{Mask: maskCommand, Key: key.KeyMinus, Action: ActionZoom, Arg: FloatArg(-1)},
		{Mask: maskCommand, Key: key.Key0, Action: ActionZoomReset, Arg: FloatArg(0)},
		{Mask: maskTerm, Key: key.KeyY, Action: ActionSelPaste, Arg: IntArg(0)},
		{Mask: maskShift, Key: key.KeyHelp, Action: ActionSelPaste, Arg: IntArg(0)},
		{Mask: maskTerm, Key: key.KeyKeypadClear, Action: ActionNumLock, Arg: IntArg(0)},
	}
}

// DefaultEscapeBindings returns the built-in key table. Entries for a key
// with an Any mask come after that key's other entries.
func DefaultEscapeBindings() []EscapeBinding {
	return []EscapeBinding{
		{key.KeyKeypadClear, maskShift, "\033[2J", Ignore, RequireOff},
		{key.KeyKeypadClear, maskShift, "\033[1;2H", Ignore, RequireOn},
		{key.KeyKeypadClear, key.MaskAny, "\033[H", Ignore, RequireOff},
		{key.KeyKeypadClear, key.MaskAny, "\033[1~", Ignore, RequireOn},
		{key.KeyUp, maskShift, "\033[1;2A", Ignore, Ignore},
		{key.KeyUp, maskOption, "\033[1;3A", Ignore, Ignore},
		{key.KeyUp, maskShiftOption, "\033[1;4A", Ignore, Ignore},
		{key.KeyUp, maskControl, "\033[1;5A", Ignore, Ignore},
		{key.KeyUp, maskShiftControl, "\033[1;6A", Ignore, Ignore},
		{key.KeyUp, maskControlOption, "\033[1;7A", Ignore, Ignore},
		{key.KeyUp, maskShiftControlOption, "\033[1;8A", Ignore, Ignore},
		{key.KeyUp, key.MaskAny, "\033[A", Ignore, RequireOff},
		{key.KeyUp, key.MaskAny, "\033OA", Ignore, RequireOn},
		{key.KeyDown, maskShift, "\033[1;2B", Ignore, Ignore},
		{key.KeyDown, maskOption, "\033[1;3B", Ignore, Ignore},
		{key.KeyDown, maskShiftOption, "\033[1;4B", Ignore, Ignore},
		{key.KeyDown, maskControl, "\033[1;5B", Ignore, Ignore},
		{key.KeyDown, maskShiftControl, "\033[1;6B", Ignore, Ignore},
		{key.KeyDown, maskControlOption, "\033[1;7B", Ignore, Ignore},
		{key.KeyDown, maskShiftControlOption, "\033[1;8B", Ignore, Ignore},
		{key.KeyDown, key.MaskAny, "\033[B", Ignore, RequireOff},
		{key.KeyDown, key.MaskAny, "\033OB", Ignore, RequireOn},
		{key.KeyLeft, maskShift, "\033[1;2D", Ignore, Ignore},
		{key.KeyLeft, maskOption, "\033[1;3D", Ignore, Ignore},
		{key.KeyLeft, maskShiftOption, "\033[1;4D", Ignore, Ignore},
		{key.KeyLeft, maskControl, "\033[1;5D", Ignore, Ignore},
		{key.KeyLeft, maskShiftControl, "\033[1;6D", Ignore, Ignore},
		{key.KeyLeft, maskControlOption, "\033[1;7D", Ignore, Ignore},
		{key.KeyLeft, maskShiftControlOption, "\033[1;8D", Ignore, Ignore},
		{key.KeyLeft, key.MaskAny, "\033[D", Ignore, RequireOff},
		{key.KeyLeft, key.MaskAny, "\033OD", Ignore, RequireOn},
		{key.KeyRight, maskShift, "\033[1;2C", Ignore, Ignore},
		{key.KeyRight, maskOption, "\033[1;3C", Ignore, Ignore},
		{key.KeyRight, maskShiftOption, "\033[1;4C", Ignore, Ignore},
		{key.KeyRight, maskControl, "\033[1;5C", Ignore, Ignore},
		{key.KeyRight, maskShiftControl, "\033[1;6C", Ignore, Ignore},
		{key.KeyRight, maskControlOption, "\033[1;7C", Ignore, Ignore},
		{key.KeyRight, maskShiftControlOption, "\033[1;8C", Ignore, Ignore},
		{key.KeyRight, key.MaskAny, "\033[C", Ignore, RequireOff},
		{key.KeyRight, key.MaskAny, "\033OC", Ignore, RequireOn},
		{key.KeyEscape, key.MaskAny, "\033", Ignore, Ignore},
		{key.KeyTab, maskShift, "\033[Z", Ignore, Ignore},
		{key.KeyTab, key.MaskAny, "\t", Ignore, Ignore},
		{key.KeyReturn, maskOption, "\033\r", Ignore, Ignore},
		{key.KeyReturn, key.MaskAny, "\r", Ignore, Ignore},
		{key.KeyHelp, maskShift, "\033[4l", RequireOff, Ignore},
		{key.KeyHelp, maskShift, "\033[2;2~", RequireOn, Ignore},
		{key.KeyHelp, maskControl, "\033[L", RequireOff, Ignore},
		{key.KeyHelp, maskControl, "\033[2;5~", RequireOn, Ignore},
		{key.KeyHelp, key.MaskAny, "\033[4h", RequireOff, Ignore},
		{key.KeyHelp, key.MaskAny, "\033[2~", RequireOn, Ignore},
		{key.KeyForwardDelete, maskControl, "\033[M", RequireOff, Ignore},
		{key.KeyForwardDelete, maskControl, "\033[3;5~", RequireOn, Ignore},
		{key.KeyForwardDelete, maskShift, "\033[2K", RequireOff, Ignore},
		{key.KeyForwardDelete, maskShift, "\033[3;2~", RequireOn, Ignore},
		{key.KeyForwardDelete, key.MaskAny, "\033[P", RequireOff, Ignore},
		{key.KeyForwardDelete, key.MaskAny, "\033[3~", RequireOn, Ignore},
		{key.KeyDelete, key.MaskNone, "\177", Ignore, Ignore},
		{key.KeyDelete, maskOption, "\033\177", Ignore, Ignore},
		{key.KeyHome, maskShift, "\033[2J", Ignore, RequireOff},
		{key.KeyHome, maskShift, "\033[1;2H", Ignore, RequireOn},
		{key.KeyHome, key.MaskAny, "\033[H", Ignore, RequireOff},
		{key.KeyHome, key.MaskAny, "\033[1~", Ignore, RequireOn},
		{key.KeyEnd, maskControl, "\033[J", RequireOff, Ignore},
		{key.KeyEnd, maskControl, "\033[1;5F", RequireOn, Ignore},
		{key.KeyEnd, maskShift, "\033[K", RequireOff, Ignore},
		{key.KeyEnd, maskShift, "\033[1;2F", RequireOn, Ignore},
		{key.KeyEnd, key.MaskAny, "\033[4~", Ignore, Ignore},
		{key.KeyPageUp, maskControl, "\033[5;5~", Ignore, Ignore},
		{key.KeyPageUp, maskShift, "\033[5;2~", Ignore, Ignore},
		{key.KeyPageUp, key.MaskAny, "\033[5~", Ignore, Ignore},
		{key.KeyPageDown, maskControl, "\033[6;5~", Ignore, Ignore},
		{key.KeyPageDown, maskShift, "\033[6;2~", Ignore, Ignore},
		{key.KeyPageDown, key.MaskAny, "\033[6~", Ignore, Ignore},
		{key.KeyF1, key.MaskNone, "\033OP", Ignore, Ignore},
		{key.KeyF1, maskShift, "\033[1;2P", Ignore, Ignore},
		{key.KeyF1, maskControl, "\033[1;5P", Ignore, Ignore},
		{key.KeyF1, maskOption, "\033[1;3P", Ignore, Ignore},
		{key.KeyF2, key.MaskNone, "\033OQ", Ignore, Ignore},
		{key.KeyF2, maskShift, "\033[1;2Q", Ignore, Ignore},
		{key.KeyF2, maskControl, "\033[1;5Q", Ignore, Ignore},
		{key.KeyF2, maskOption, "\033[1;3Q", Ignore, Ignore},
		{key.KeyF3, key.MaskNone, "\033OR", Ignore, Ignore},
		{key.KeyF3, maskShift, "\033[1;2R", Ignore, Ignore},
		{key.KeyF3, maskControl, "\033[1;5R", Ignore, Ignore},
		{key.KeyF3, maskOption, "\033[1;3R", Ignore, Ignore},
		{key.KeyF4, key.MaskNone, "\033OS", Ignore, Ignore},
		{key.KeyF4, maskShift, "\033[1;2S", Ignore, Ignore},
		{key.KeyF4, maskControl, "\033[1;5S", Ignore, Ignore},
		{key.KeyF4, maskOption, "\033[1;3S", Ignore, Ignore},
		{key.KeyF5, key.MaskNone, "\033[15~", Ignore, Ignore},
		{key.KeyF5, maskShift, "\033[15;2~", Ignore, Ignore},
		{key.KeyF5, maskControl, "\033[15;5~", Ignore, Ignore},
		{key.KeyF5, maskOption, "\033[15;3~", Ignore, Ignore},
		{key.KeyF6, key.MaskNone, "\033[17~", Ignore, Ignore},
		{key.KeyF6, maskShift, "\033[17;2~", Ignore, Ignore},
		{key.KeyF6, maskControl, "\033[17;5~", Ignore, Ignore},
		{key.KeyF6, maskOption, "\033[17;3~", Ignore, Ignore},
		{key.KeyF7, key.MaskNone, "\033[18~", Ignore, Ignore},
		{key.KeyF7, maskShift, "\033[18;2~", Ignore, Ignore},
		{key.KeyF7, maskControl, "\033[18;5~", Ignore, Ignore},
		{key.KeyF7, maskOption, "\033[18;3~", Ignore, Ignore},
		{key.KeyF8, key.MaskNone, "\033[19~", Ignore, Ignore},
		{key.KeyF8, maskShift, "\033[19;2~", Ignore, Ignore},
		{key.KeyF8, maskControl, "\033[19;5~", Ignore, Ignore},
		{key.KeyF8, maskOption, "\033[19;3~", Ignore, Ignore},
		{key.KeyF9, key.MaskNone, "\033[20~", Ignore, Ignore},
		{key.KeyF9, maskShift, "\033[20;2~", Ignore, Ignore},
		{key.KeyF9, maskControl, "\033[20;5~", Ignore, Ignore},
		{key.KeyF9, maskOption, "\033[20;3~", Ignore, Ignore},
		{key.KeyF10, key.MaskNone, "\033[21~", Ignore, Ignore},
		{key.KeyF10, maskShift, "\033[21;2~", Ignore, Ignore},
		{key.KeyF10, maskControl, "\033[21;5~", Ignore, Ignore},
		{key.KeyF10, maskOption, "\033[21;3~", Ignore, Ignore},
		{key.KeyF11, key.MaskNone, "\033[23~", Ignore, Ignore},
		{key.KeyF11, maskShift, "\033[23;2~", Ignore, Ignore},
		{key.KeyF11, maskControl, "\033[23;5~", Ignore, Ignore},
		{key.KeyF11, maskOption, "\033[23;3~", Ignore, Ignore},
		{key.KeyF12, key.MaskNone, "\033[24~", Ignore, Ignore},
		{key.KeyF12, maskShift, "\033[24;2~", Ignore, Ignore},
		{key.KeyF12, maskControl, "\033[24;5~", Ignore, Ignore},
		{key.KeyF12, maskOption, "\033[24;3~", Ignore, Ignore},
		{key.KeyF13, key.MaskNone, "\033[1;2P", Ignore, Ignore},
		{key.KeyF14, key.MaskNone, "\033[1;2Q", Ignore, Ignore},
		{key.KeyF15, key.MaskNone, "\033[1;2R", Ignore, Ignore},
		{key.KeyF16, key.MaskNone, "\033[1;2S", Ignore, Ignore},
		{key.KeyF17, key.MaskNone, "\033[15;2~", Ignore, Ignore},
		{key.KeyF18, key.MaskNone, "\033[17;2~", Ignore, Ignore},
		{key.KeyF19, key.MaskNone, "\033[18;2~", Ignore, Ignore},
		{key.KeyF20, key.MaskNone, "\033[19;2~", Ignore, Ignore},
	}
}

// DefaultSelectionMasks returns the built-in selection masks.
func DefaultSelectionMasks() SelectionMasks {
	return NewSelectionMasks(map[SelectionVariant]key.Mask{
		SelectRectangular: maskOption,
	})
}
