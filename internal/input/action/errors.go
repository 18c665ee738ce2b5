package action

import "errors"

// Dispatch errors.
var (
	// ErrUnknownAction indicates no handler is registered for an action.
	ErrUnknownAction = errors.New("action: no handler for action")

	// ErrNotAction indicates a result that is not an Action result.
	ErrNotAction = errors.New("action: result is not an action")

	// ErrBadArgument indicates an argument of the wrong kind for a handler.
	ErrBadArgument = errors.New("action: bad argument")

	// ErrPanic indicates the handler panicked.
	ErrPanic = errors.New("action: handler panic")

	// ErrNoSelection indicates there is no selection to copy or paste.
	ErrNoSelection = errors.New("action: no selection")
)
