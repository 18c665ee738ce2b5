package key

import (
	"testing"
)

func TestModifierHas(t *testing.T) {
	tests := []struct {
		mod    Modifier
		check  Modifier
		expect bool
	}{
		{ModNone, ModControl, false},
		{ModControl, ModControl, true},
		{ModControl | ModOption, ModControl, true},
		{ModControl | ModOption, ModOption, true},
		{ModControl | ModOption, ModShift, false},
		{ModAll, ModCommand, true},
	}

	for _, tt := range tests {
		if got := tt.mod.Has(tt.check); got != tt.expect {
			t.Errorf("Modifier(%d).Has(%d) = %v, want %v", tt.mod, tt.check, got, tt.expect)
		}
	}
}

func TestModifierWithWithout(t *testing.T) {
	mod := ModNone.With(ModControl).With(ModShift)
	if !mod.HasControl() || !mod.HasShift() {
		t.Error("With should set Control and Shift")
	}

	mod = mod.Without(ModShift)
	if mod.HasShift() || !mod.HasControl() {
		t.Error("Without(ModShift) should remove only Shift")
	}
}

func TestModifierIsEmpty(t *testing.T) {
	if !ModNone.IsEmpty() {
		t.Error("ModNone should be empty")
	}
	if !Modifier(1 << 7).IsEmpty() {
		t.Error("bits outside ModAll should not count")
	}
	if ModOption.IsEmpty() {
		t.Error("ModOption should not be empty")
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModControl, "Control"},
		{ModOption, "Option"},
		{ModShift, "Shift"},
		{ModCommand, "Command"},
		{ModControl | ModShift, "Control+Shift"},
		{ModAll, "Control+Option+Shift+Command"},
	}

	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierShortString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModControl, "C"},
		{ModOption, "O"},
		{ModShift, "S"},
		{ModCommand, "D"},
		{ModAll, "C-O-S-D"},
	}

	for _, tt := range tests {
		if got := tt.mod.ShortString(); got != tt.want {
			t.Errorf("Modifier(%d).ShortString() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierFromName(t *testing.T) {
	tests := []struct {
		name string
		want Modifier
	}{
		{"ctrl", ModControl},
		{"Control", ModControl},
		{"option", ModOption},
		{"alt", ModOption},
		{"shift", ModShift},
		{"cmd", ModCommand},
		{"command", ModCommand},
		{"super", ModCommand},
		{"unknown", ModNone},
		{"", ModNone},
	}

	for _, tt := range tests {
		if got := ModifierFromName(tt.name); got != tt.want {
			t.Errorf("ModifierFromName(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		input string
		want  Modifier
	}{
		{"ctrl", ModControl},
		{"Control+Shift", ModControl | ModShift},
		{"C-S", ModControl | ModShift},
		{"shift|option", ModShift | ModOption},
		{"ctrl+bogus", ModControl},
		{"", ModNone},
	}

	for _, tt := range tests {
		if got := ParseModifiers(tt.input); got != tt.want {
			t.Errorf("ParseModifiers(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}
