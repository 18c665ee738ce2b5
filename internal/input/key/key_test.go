package key

import (
	"errors"
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyReturn, "Return"},
		{KeyTab, "Tab"},
		{KeyDelete, "Delete"},
		{KeyForwardDelete, "ForwardDelete"},
		{KeyHelp, "Help"},
		{KeyUp, "Up"},
		{KeyRight, "Right"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{KeyF20, "F20"},
		{KeyKeypadClear, "KeypadClear"},
		{KeyA, "A"},
		{KeyZ, "Z"},
		{Key0, "0"},
		{Key9, "9"},
		{KeyEqual, "Equal"},
		{Key(9999), "Key(9999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyClassification(t *testing.T) {
	if !KeyF20.IsFunctionKey() || KeyEscape.IsFunctionKey() {
		t.Error("IsFunctionKey misclassified")
	}
	if !KeyLeft.IsArrowKey() || KeyHome.IsArrowKey() {
		t.Error("IsArrowKey misclassified")
	}
	if !KeyPageDown.IsNavigationKey() || KeyTab.IsNavigationKey() {
		t.Error("IsNavigationKey misclassified")
	}
	if !KeyKeypadClear.IsKeypadKey() || KeyC.IsKeypadKey() {
		t.Error("IsKeypadKey misclassified")
	}
	if KeyNone.IsValid() || keyCount.IsValid() || !KeyMinus.IsValid() {
		t.Error("IsValid misclassified")
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"up", KeyUp},
		{"Up", KeyUp},
		{"uparrow", KeyUp},
		{"escape", KeyEscape},
		{"esc", KeyEscape},
		{"return", KeyReturn},
		{"enter", KeyReturn},
		{"backspace", KeyDelete},
		{"forwarddelete", KeyForwardDelete},
		{"del", KeyForwardDelete},
		{"insert", KeyHelp},
		{"keypadclear", KeyKeypadClear},
		{"clear", KeyKeypadClear},
		{"f13", KeyF13},
		{" F20 ", KeyF20},
		{"c", KeyC},
		{"0", Key0},
		{"=", KeyEqual},
		{"minus", KeyMinus},
		{"unknown", KeyNone},
		{"", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestKeyNamesRoundTrip(t *testing.T) {
	for k := KeyNone + 1; k < keyCount; k++ {
		if got := KeyFromName(k.String()); got != k {
			t.Errorf("KeyFromName(%q) = %v, want %v", k.String(), got, k)
		}
	}
}

func TestParseKey(t *testing.T) {
	k, err := ParseKey("pageup")
	if err != nil || k != KeyPageUp {
		t.Errorf("ParseKey(pageup) = %v, %v", k, err)
	}

	_, err = ParseKey("hyper")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("ParseKey(hyper) error = %v, want ErrUnknownKey", err)
	}
}
