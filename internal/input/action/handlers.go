package action

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dshills/vtkeys/internal/input/keymap"
	"github.com/dshills/vtkeys/internal/input/mode"
)

// Bracketed paste delimiters.
const (
	pasteStart = "\033[200~"
	pasteEnd   = "\033[201~"
)

// SelectionSource returns the current selection text and whether there is
// a selection.
type SelectionSource func() (string, bool)

// TTYSend writes a string argument to w verbatim.
func TTYSend(w io.Writer) Handler {
	return func(_ context.Context, arg keymap.Argument) error {
		s, ok := arg.Str()
		if !ok {
			return fmt.Errorf("%w: ttysend needs a string, got %s", ErrBadArgument, arg.Kind())
		}
		_, err := io.WriteString(w, s)
		return err
	}
}

// ClipCopy copies the current selection to cb.
func ClipCopy(sel SelectionSource, cb Clipboard) Handler {
	return func(_ context.Context, _ keymap.Argument) error {
		text, ok := sel()
		if !ok {
			return ErrNoSelection
		}
		return cb.WriteAll(text)
	}
}

// ClipPaste writes the clipboard text to w. When bracketed reports true
// the text is wrapped in bracketed paste delimiters.
func ClipPaste(w io.Writer, cb Clipboard, bracketed func() bool) Handler {
	return func(_ context.Context, _ keymap.Argument) error {
		text, err := cb.ReadAll()
		if err != nil {
			return err
		}
		return paste(w, text, bracketed)
	}
}

// SelPaste writes the current selection to w.
func SelPaste(w io.Writer, sel SelectionSource, bracketed func() bool) Handler {
	return func(_ context.Context, _ keymap.Argument) error {
		text, ok := sel()
		if !ok {
			return ErrNoSelection
		}
		return paste(w, text, bracketed)
	}
}

func paste(w io.Writer, text string, bracketed func() bool) error {
	if bracketed != nil && bracketed() {
		text = pasteStart + text + pasteEnd
	}
	_, err := io.WriteString(w, text)
	return err
}

// NumLock toggles the numlock flag.
func NumLock(flags *mode.Flags) Handler {
	return func(_ context.Context, _ keymap.Argument) error {
		flags.Toggle(mode.FlagNumLock)
		return nil
	}
}

// Zoom tracks the font size changed by the zoom actions.
type Zoom struct {
	mu       sync.Mutex
	base     float64
	size     float64
	min      float64
	onChange func(size float64)
}

// NewZoom creates a zoom tracker starting at base points. onChange, if not
// nil, is called with every new size.
func NewZoom(base float64, onChange func(size float64)) *Zoom {
	return &Zoom{
		base:     base,
		size:     base,
		min:      1,
		onChange: onChange,
	}
}

// Size returns the current font size.
func (z *Zoom) Size() float64 {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.size
}

// Add changes the size by delta points. The size never drops below one.
func (z *Zoom) Add(delta float64) float64 {
	z.mu.Lock()
	z.size += delta
	if z.size < z.min {
		z.size = z.min
	}
	size := z.size
	z.mu.Unlock()

	z.notify(size)
	return size
}

// Reset restores the base size.
func (z *Zoom) Reset() float64 {
	z.mu.Lock()
	z.size = z.base
	size := z.size
	z.mu.Unlock()

	z.notify(size)
	return size
}

func (z *Zoom) notify(size float64) {
	if z.onChange != nil {
		z.onChange(size)
	}
}

// ZoomHandler adds the numeric argument to the font size.
func (z *Zoom) ZoomHandler() Handler {
	return func(_ context.Context, arg keymap.Argument) error {
		delta, ok := arg.Number()
		if !ok {
			return fmt.Errorf("%w: zoom needs a number, got %s", ErrBadArgument, arg.Kind())
		}
		z.Add(delta)
		return nil
	}
}

// ResetHandler restores the base font size.
func (z *Zoom) ResetHandler() Handler {
	return func(_ context.Context, _ keymap.Argument) error {
		z.Reset()
		return nil
	}
}

// Env holds the collaborators the standard handlers act on. Nil fields
// leave the matching actions unregistered.
type Env struct {
	// TTY receives bytes for the controlled process.
	TTY io.Writer
	// Clipboard is the system clipboard.
	Clipboard Clipboard
	// Selection returns the current selection.
	Selection SelectionSource
	// Bracketed reports whether bracketed paste mode is on.
	Bracketed func() bool
	// Zoom tracks the font size.
	Zoom *Zoom
	// Flags holds the terminal mode flags.
	Flags *mode.Flags
}

// RegisterDefaults registers the standard handlers available in env.
func RegisterDefaults(r *Registry, env Env) {
	if env.TTY != nil {
		r.Register(keymap.ActionTTYSend, TTYSend(env.TTY))
		if env.Clipboard != nil {
			r.Register(keymap.ActionClipPaste, ClipPaste(env.TTY, env.Clipboard, env.Bracketed))
		}
		if env.Selection != nil {
			r.Register(keymap.ActionSelPaste, SelPaste(env.TTY, env.Selection, env.Bracketed))
		}
	}
	if env.Clipboard != nil && env.Selection != nil {
		r.Register(keymap.ActionClipCopy, ClipCopy(env.Selection, env.Clipboard))
	}
	if env.Zoom != nil {
		r.Register(keymap.ActionZoom, env.Zoom.ZoomHandler())
		r.Register(keymap.ActionZoomReset, env.Zoom.ResetHandler())
	}
	if env.Flags != nil {
		r.Register(keymap.ActionNumLock, NumLock(env.Flags))
	}
}
