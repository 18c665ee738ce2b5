// Package input handles keyboard and mouse input for the terminal.
//
// The input system turns events from the hosting window or terminal into
// one of three things: bytes for the controlled process, a named action,
// or the start of a selection. Events no table handles are returned
// Unhandled so the caller can apply its default translation.
//
// # Architecture
//
// The input system consists of several cooperating packages:
//
//   - key, mouse: normalized key and mouse events and modifier masks
//   - keymap: the ordered binding tables, their defaults, validation and
//     TOML/YAML loading
//   - mode: the application keypad and cursor flags owned by the VT
//     interpreter, snapshotted per event
//   - resolve: the first-match-wins resolver
//   - action: the registry of named action handlers
//
// Handler ties them together. For every event it snapshots the mode flags,
// resolves the event, writes bytes to the tty or dispatches actions, and
// classifies primary presses as single, double or triple clicks.
//
// # Usage
//
//	flags := mode.NewFlags()
//	registry := action.NewRegistry(logger)
//	action.RegisterDefaults(registry, action.Env{TTY: pty, Flags: flags})
//
//	handler := input.NewHandler(input.DefaultConfig(),
//	    resolve.New(keymap.DefaultTables()),
//	    input.WithState(flags),
//	    input.WithRegistry(registry),
//	    input.WithTTY(pty),
//	)
//
//	res, err := handler.HandleKey(ctx, key.NewEvent(key.KeyUp, key.ModNone))
//	if err == nil && !res.IsHandled() {
//	    // default translation
//	}
//
// # Hooks
//
// Hooks run in priority order before resolution and may consume an event.
// They also observe every result after delivery.
package input
