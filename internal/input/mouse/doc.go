// Package mouse provides mouse button identifiers and events for the input
// resolution engine.
//
// # Core Types
//
// Event represents a raw button press or release with the keyboard
// modifiers held at the time:
//
//	event := mouse.Event{
//	    Button:    mouse.ButtonScrollUp,
//	    Modifiers: key.ModShift,
//	    Timestamp: time.Now(),
//	}
//
// Phase restricts a binding to presses, releases, or both. Scroll wheel
// buttons only ever produce presses on most platforms.
//
// # Click Detection
//
// ClickTracker classifies successive presses of the selection button into
// single, double and triple clicks using separate double- and triple-click
// timeouts. The selection collaborator uses the result to snap a new
// selection to words or lines.
package mouse
