package app

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyRunning is returned by Run while another Run is active.
	ErrAlreadyRunning = errors.New("event loop already running")

	// ErrNoSource is returned by Run when given a nil source.
	ErrNoSource = errors.New("no input source")
)

// InitError reports a component that failed during New.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// ComponentError reports a failed operation on a running component, such
// as a bindings reload.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("%s: %v", e.Component, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Component, e.Action, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }
