package mode

import (
	"sync"
)

// DEC private mode numbers that Flags understands.
const (
	// DECCKM selects application cursor keys.
	DECCKM = 1

	// DECNKM selects application keypad.
	DECNKM = 66
)

// Flags holds terminal mode flags and implements State.
// It is safe for concurrent use.
type Flags struct {
	mu sync.RWMutex

	// active holds the set flags.
	active Flag

	// callbacks are notified when a flag changes.
	callbacks []ChangeCallback
}

// ChangeCallback is called when a flag changes value.
type ChangeCallback func(flag Flag, active bool)

// NewFlags creates flags with every mode inactive.
func NewFlags() *Flags {
	return &Flags{}
}

// IsApplicationKeypadActive returns true in application keypad mode.
func (f *Flags) IsApplicationKeypadActive() bool {
	return f.Active(FlagKeypad)
}

// IsApplicationCursorActive returns true in application cursor mode.
func (f *Flags) IsApplicationCursorActive() bool {
	return f.Active(FlagCursor)
}

// NumLock returns true when numlock is on.
func (f *Flags) NumLock() bool {
	return f.Active(FlagNumLock)
}

// Active returns true if every flag in flag is set.
func (f *Flags) Active(flag Flag) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.active&flag == flag
}

// Set sets or clears flag. Callbacks run only if the value changed.
func (f *Flags) Set(flag Flag, active bool) {
	f.mu.Lock()
	changed, callbacks := f.setLocked(flag, active)
	f.mu.Unlock()

	notify(callbacks, changed, active)
}

// Toggle flips flag and returns its new value.
func (f *Flags) Toggle(flag Flag) bool {
	f.mu.Lock()
	active := f.active&flag != flag
	changed, callbacks := f.setLocked(flag, active)
	f.mu.Unlock()

	notify(callbacks, changed, active)
	return active
}

// setLocked updates the flags (must hold lock).
// Returns the flags that changed and the callbacks to notify.
func (f *Flags) setLocked(flag Flag, active bool) (Flag, []ChangeCallback) {
	old := f.active
	if active {
		f.active |= flag
	} else {
		f.active &^= flag
	}
	changed := old ^ f.active
	if changed == 0 {
		return 0, nil
	}

	// Copy callbacks to call outside of lock
	callbacks := make([]ChangeCallback, len(f.callbacks))
	copy(callbacks, f.callbacks)
	return changed, callbacks
}

func notify(callbacks []ChangeCallback, changed Flag, active bool) {
	for _, cb := range callbacks {
		if cb != nil {
			cb(changed, active)
		}
	}
}

// ApplyPrivateMode applies a DEC private mode set (DECSET) or reset
// (DECRST). It returns false for modes Flags does not track.
func (f *Flags) ApplyPrivateMode(mode int, set bool) bool {
	switch mode {
	case DECCKM:
		f.Set(FlagCursor, set)
	case DECNKM:
		f.Set(FlagKeypad, set)
	default:
		return false
	}
	return true
}

// ApplyEscape applies DECKPAM (ESC =) or DECKPNM (ESC >) given the final
// byte. It returns false for other bytes.
func (f *Flags) ApplyEscape(final byte) bool {
	switch final {
	case '=':
		f.Set(FlagKeypad, true)
	case '>':
		f.Set(FlagKeypad, false)
	default:
		return false
	}
	return true
}

// Reset clears every flag.
func (f *Flags) Reset() {
	f.Set(FlagKeypad|FlagCursor|FlagNumLock, false)
}

// OnChange registers a callback for flag changes.
// Returns a function to unregister the callback.
func (f *Flags) OnChange(callback ChangeCallback) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.callbacks = append(f.callbacks, callback)
	index := len(f.callbacks) - 1

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(f.callbacks) {
			f.callbacks[index] = nil
		}
	}
}
