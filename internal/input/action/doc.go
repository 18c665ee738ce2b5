// Package action dispatches resolved Action results to named handlers.
//
// A Registry maps action names to handlers. Dispatch runs the handler for
// an Action result with the entry's argument; any other result kind is
// rejected with ErrNotAction. Handlers run on the caller's goroutine and a
// panicking handler is reported as ErrPanic rather than crashing the
// input loop.
//
// The standard handlers cover the actions the default tables bind:
//
//	ttysend    write a string argument to the terminal verbatim
//	clipcopy   copy the current selection to the system clipboard
//	clippaste  write the system clipboard to the terminal
//	selpaste   write the current selection to the terminal
//	zoom       change the font size by a relative amount
//	zoomreset  restore the configured font size
//	numlock    toggle numlock
//
// RegisterDefaults wires them all from an Env.
package action
