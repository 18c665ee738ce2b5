package keymap

import (
	"errors"
	"fmt"
)

// Errors returned while loading binding tables.
var (
	// ErrInvalidRequirement indicates a mode requirement that cannot be parsed.
	ErrInvalidRequirement = errors.New("invalid mode requirement")

	// ErrUnknownVariant indicates an unknown selection variant name.
	ErrUnknownVariant = errors.New("unknown selection variant")

	// ErrEmptyAction indicates a shortcut without an action reference.
	ErrEmptyAction = errors.New("empty action")

	// ErrAmbiguousArgument indicates more than one argument value was given.
	ErrAmbiguousArgument = errors.New("more than one argument value")

	// ErrInvalidSelectionMask indicates a selection mask that is not a
	// concrete modifier set.
	ErrInvalidSelectionMask = errors.New("selection mask must name modifiers")

	// ErrUnsupportedFormat indicates a bindings file format that is not supported.
	ErrUnsupportedFormat = errors.New("unsupported bindings format")
)

// EntryError reports a malformed entry in a bindings file.
type EntryError struct {
	// Table is the table the entry belongs to.
	Table string
	// Index is the position of the entry within its table.
	Index int
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	return fmt.Sprintf("%s entry %d: %v", e.Table, e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}

// ParseError represents an error while decoding a bindings file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
