package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vtkeys/internal/input/key"
	"github.com/dshills/vtkeys/internal/input/mouse"
)

// Terminal implements Source using tcell.
type Terminal struct {
	screen tcell.Screen
	mouse  MouseTracker
	mu     sync.Mutex
}

// NewTerminal creates a source reading the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen creates a source over an existing screen, such as
// a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) PollEvent() (Event, bool) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, false
	}
	return t.convertEvent(ev), true
}

func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// convertEvent converts tcell events to our Event type.
func (t *Terminal) convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		k, mods, ok := ConvertKey(e)
		if !ok {
			if e.Key() == tcell.KeyRune {
				return Event{Type: EventText, Rune: e.Rune()}
			}
			return Event{Type: EventNone}
		}
		return Event{
			Type: EventKey,
			Key:  key.Event{Key: k, Modifiers: mods, Timestamp: e.When()},
		}

	case *tcell.EventMouse:
		t.mu.Lock()
		events := t.mouse.Translate(e)
		t.mu.Unlock()
		return Event{Type: EventMouse, Mouse: events}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventPaste:
		return Event{Type: EventPaste, Start: e.Start()}

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}

	default:
		return Event{Type: EventNone}
	}
}

// namedKeys maps tcell keys with a fixed identifier. Backspace, Tab,
// Enter and Escape share codes with Ctrl-H, Ctrl-I, Ctrl-M and Ctrl-[ and
// are always reported as the named key.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:    key.KeyEscape,
	tcell.KeyEnter:     key.KeyReturn,
	tcell.KeyTab:       key.KeyTab,
	tcell.KeyBackspace: key.KeyDelete,
	tcell.KeyDelete:    key.KeyForwardDelete,
	tcell.KeyInsert:    key.KeyHelp,
	tcell.KeyHelp:      key.KeyHelp,
	tcell.KeyHome:      key.KeyHome,
	tcell.KeyEnd:       key.KeyEnd,
	tcell.KeyPgUp:      key.KeyPageUp,
	tcell.KeyPgDn:      key.KeyPageDown,
	tcell.KeyUp:        key.KeyUp,
	tcell.KeyDown:      key.KeyDown,
	tcell.KeyLeft:      key.KeyLeft,
	tcell.KeyRight:     key.KeyRight,
	tcell.KeyClear:     key.KeyKeypadClear,
}

// ConvertKey converts a tcell key event to a key identifier and the
// modifiers held. It returns false for characters with no identifier.
func ConvertKey(ev *tcell.EventKey) (key.Key, key.Modifier, bool) {
	mods := ConvertMod(ev.Modifiers())
	k := ev.Key()

	if named, ok := namedKeys[k]; ok {
		return named, mods, true
	}

	switch {
	case k == tcell.KeyBacktab:
		return key.KeyTab, mods | key.ModShift, true
	case k >= tcell.KeyF1 && k <= tcell.KeyF20:
		return key.KeyF1 + key.Key(k-tcell.KeyF1), mods, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.KeyA + key.Key(k-tcell.KeyCtrlA), mods | key.ModControl, true
	case k == tcell.KeyRune:
		return convertRune(ev.Rune(), mods)
	}
	return key.KeyNone, mods, false
}

// convertRune maps a character to the key that types it on a US layout.
// Capital letters add Shift.
func convertRune(r rune, mods key.Modifier) (key.Key, key.Modifier, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return key.KeyA + key.Key(r-'a'), mods, true
	case r >= 'A' && r <= 'Z':
		return key.KeyA + key.Key(r-'A'), mods | key.ModShift, true
	case r >= '0' && r <= '9':
		return key.Key0 + key.Key(r-'0'), mods, true
	case r == ' ':
		return key.KeySpace, mods, true
	case r == '=':
		return key.KeyEqual, mods, true
	case r == '+':
		return key.KeyEqual, mods | key.ModShift, true
	case r == '-':
		return key.KeyMinus, mods, true
	case r == '_':
		return key.KeyMinus, mods | key.ModShift, true
	}
	return key.KeyNone, mods, false
}

// ConvertMod converts a tcell modifier mask. Alt is the Option key and
// Meta is the Command key.
func ConvertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModControl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModOption
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModCommand
	}
	return result
}

// buttonMap pairs tcell buttons that are held with our buttons.
var buttonMap = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.Button1, mouse.ButtonLeft},
	{tcell.Button3, mouse.ButtonMiddle},
	{tcell.Button2, mouse.ButtonRight},
}

// wheelMap pairs tcell wheel motions with our scroll buttons.
var wheelMap = []struct {
	mask   tcell.ButtonMask
	button mouse.Button
}{
	{tcell.WheelUp, mouse.ButtonScrollUp},
	{tcell.WheelDown, mouse.ButtonScrollDown},
	{tcell.WheelLeft, mouse.ButtonScrollLeft},
	{tcell.WheelRight, mouse.ButtonScrollRight},
}

// MouseTracker turns tcell button state reports into press and release
// events. tcell reports which buttons are down; a change from the last
// report is a transition.
type MouseTracker struct {
	held tcell.ButtonMask
}

// Translate returns the transitions in ev: releases, then presses, then
// one press per wheel motion.
func (m *MouseTracker) Translate(ev *tcell.EventMouse) []mouse.Event {
	x, y := ev.Position()
	pos := mouse.Position{X: x, Y: y}
	mods := ConvertMod(ev.Modifiers())
	when := ev.When()
	buttons := ev.Buttons()

	var events []mouse.Event
	for _, b := range buttonMap {
		if m.held&b.mask != 0 && buttons&b.mask == 0 {
			events = append(events, mouse.Event{Position: pos, Button: b.button, Modifiers: mods, Release: true, Timestamp: when})
		}
	}
	for _, b := range buttonMap {
		if m.held&b.mask == 0 && buttons&b.mask != 0 {
			events = append(events, mouse.Event{Position: pos, Button: b.button, Modifiers: mods, Timestamp: when})
		}
	}
	for _, w := range wheelMap {
		if buttons&w.mask != 0 {
			events = append(events, mouse.Event{Position: pos, Button: w.button, Modifiers: mods, Timestamp: when})
		}
	}

	m.held = buttons & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	return events
}

// Reset forgets the held buttons.
func (m *MouseTracker) Reset() {
	m.held = 0
}
