package key

import (
	"testing"
)

func TestNewEvent(t *testing.T) {
	e := NewEvent(KeyUp, ModShift)
	if e.Key != KeyUp || e.Modifiers != ModShift {
		t.Errorf("NewEvent = %#v", e)
	}
	if e.Release || !e.IsPress() {
		t.Error("NewEvent should be a press")
	}
	if e.Timestamp.IsZero() {
		t.Error("NewEvent should set a timestamp")
	}
}

func TestNewReleaseEvent(t *testing.T) {
	e := NewReleaseEvent(KeyTab, ModNone)
	if !e.Release || e.IsPress() {
		t.Error("NewReleaseEvent should be a release")
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{Event{Key: KeyUp}, "Up"},
		{Event{Key: KeyUp, Modifiers: ModShift}, "S-Up"},
		{Event{Key: KeyF1, Modifiers: ModControl | ModShift}, "C-S-F1"},
		{Event{Key: KeyTab, Release: true}, "Tab (release)"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("Event.String() = %q, want %q", got, tt.want)
		}
	}
}

func TestEventEquals(t *testing.T) {
	a := NewEvent(KeyHome, ModOption)
	b := Event{Key: KeyHome, Modifiers: ModOption, Repeat: true}
	if !a.Equals(b) {
		t.Error("events differing only by repeat/timestamp should be equal")
	}
	if a.Equals(a.WithModifier(ModShift)) {
		t.Error("WithModifier should change equality")
	}
	if a.Equals(NewReleaseEvent(KeyHome, ModOption)) {
		t.Error("press and release should differ")
	}
}

func TestEventIsModified(t *testing.T) {
	if (Event{Key: KeyA}).IsModified() {
		t.Error("unmodified event reported as modified")
	}
	if !(Event{Key: KeyA, Modifiers: ModCommand}).IsModified() {
		t.Error("Command event should be modified")
	}
}
