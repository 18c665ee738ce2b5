package mouse

import "time"

// Default click timeouts.
const (
	DefaultDoubleClickTimeout = 300 * time.Millisecond
	DefaultTripleClickTimeout = 600 * time.Millisecond
)

// ClickType represents the type of click detected.
type ClickType uint8

const (
	// ClickSingle is a single click.
	ClickSingle ClickType = 1
	// ClickDouble is a double click. Selections snap to words.
	ClickDouble ClickType = 2
	// ClickTriple is a triple click. Selections snap to lines.
	ClickTriple ClickType = 3
)

// String returns a string representation of the click type.
func (c ClickType) String() string {
	switch c {
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	case ClickTriple:
		return "triple"
	default:
		return "unknown"
	}
}

// ClickTracker classifies presses of the selection button.
//
// A press within the triple-click timeout of the press before the previous
// one is a triple click; otherwise a press within the double-click timeout
// of the previous one is a double click. Not safe for concurrent use; it
// belongs to the single event loop that feeds it.
type ClickTracker struct {
	doubleTimeout time.Duration
	tripleTimeout time.Duration

	// last and prev are the timestamps of the two most recent presses.
	last time.Time
	prev time.Time
}

// NewClickTracker creates a click tracker. Non-positive timeouts fall back
// to the defaults.
func NewClickTracker(double, triple time.Duration) *ClickTracker {
	if double <= 0 {
		double = DefaultDoubleClickTimeout
	}
	if triple <= 0 {
		triple = DefaultTripleClickTimeout
	}
	return &ClickTracker{
		doubleTimeout: double,
		tripleTimeout: triple,
	}
}

// Record records a press and returns its click type.
// If timestamp is zero, uses time.Now() as fallback.
func (t *ClickTracker) Record(timestamp time.Time) ClickType {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	click := ClickSingle
	switch {
	case within(t.prev, timestamp, t.tripleTimeout):
		click = ClickTriple
	case within(t.last, timestamp, t.doubleTimeout):
		click = ClickDouble
	}

	t.prev = t.last
	t.last = timestamp
	return click
}

// Reset clears the click tracking state.
func (t *ClickTracker) Reset() {
	t.last = time.Time{}
	t.prev = time.Time{}
}

// within reports whether now is no more than limit after then.
// A zero then, or clock skew (now before then), never matches.
func within(then, now time.Time, limit time.Duration) bool {
	if then.IsZero() {
		return false
	}
	elapsed := now.Sub(then)
	return elapsed >= 0 && elapsed <= limit
}
