package action

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// SystemClipboard is the platform clipboard.
type SystemClipboard struct{}

// ReadAll returns the clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", errors.New("system clipboard unsupported")
	}
	return clipboard.ReadAll()
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("system clipboard unsupported")
	}
	return clipboard.WriteAll(text)
}

// OSC52Clipboard copies by writing an OSC 52 sequence to the hosting
// terminal. It cannot read.
type OSC52Clipboard struct {
	// W is the hosting terminal.
	W io.Writer
	// Term is the hosting terminal's TERM value.
	Term string
	// Tmux wraps the sequence for tmux passthrough.
	Tmux bool
}

// ReadAll always fails; OSC 52 queries are not supported.
func (c OSC52Clipboard) ReadAll() (string, error) {
	return "", errors.New("osc52 clipboard is write-only")
}

// WriteAll writes the OSC 52 sequence for text.
func (c OSC52Clipboard) WriteAll(text string) error {
	seq := osc52.New(text)
	switch {
	case c.Tmux:
		seq = seq.Tmux()
	case strings.HasPrefix(strings.ToLower(c.Term), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.W)
	return err
}

// FallbackClipboard tries each clipboard in order.
type FallbackClipboard []Clipboard

var errNoClipboard = errors.New("no clipboard configured")

// ReadAll returns the text of the first clipboard that can be read.
func (f FallbackClipboard) ReadAll() (string, error) {
	if len(f) == 0 {
		return "", errNoClipboard
	}
	var errs []error
	for _, c := range f {
		text, err := c.ReadAll()
		if err == nil {
			return text, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("reading clipboard: %w", errors.Join(errs...))
}

// WriteAll writes to the first clipboard that accepts the text.
func (f FallbackClipboard) WriteAll(text string) error {
	if len(f) == 0 {
		return errNoClipboard
	}
	var errs []error
	for _, c := range f {
		err := c.WriteAll(text)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return fmt.Errorf("writing clipboard: %w", errors.Join(errs...))
}
