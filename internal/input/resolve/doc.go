// Package resolve turns key and mouse events into actions, byte sequences
// or nothing.
//
// # Key Resolution
//
// ResolveKey removes the context's ignore mask from the observed modifiers,
// then scans two tables in definition order:
//
//  1. Shortcuts. The first entry matching the key and mask yields an
//     Action result.
//  2. Escape bindings. The first entry matching the key, the mask, and
//     both mode requirements yields a Bytes result holding the entry's
//     output verbatim.
//
// If neither table matches the result is Unhandled and the caller applies
// its default translation. Both tables are scanned in full on every call;
// nothing is cached, because a mode change can alter the winner for the
// same key and modifiers.
//
// # Mouse Resolution
//
// ResolveMouse scans the mouse table for the first entry matching button,
// mask and phase. The observed modifiers are used as-is; the ignore mask
// applies to keys only.
//
// A primary button press with the forced selection modifier held starts a
// selection regardless of the mouse table. HandleMouse applies that rule
// before ResolveMouse and reports the selection variant picked by the
// selection masks.
//
// A Resolver holds a read-only reference to its tables and no other state,
// so one Resolver can serve any number of goroutines.
package resolve
