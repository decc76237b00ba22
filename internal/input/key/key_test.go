package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyA, "A"},
		{KeyZ, "Z"},
		{Key1, "1"},
		{Key0, "0"},
		{KeyEnter, "Enter"},
		{KeyEscape, "Escape"},
		{KeySpace, "Space"},
		{KeyUp, "Up"},
		{KeyRight, "Right"},
		{KeyF1, "F1"},
		{KeyF12, "F12"},
		{CancelOn, "CancelOn"},
		{CancelRecoveryToggle, "CancelRecoveryToggle"},
		{Key(999), "Key(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyIsBasic(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyNone, false},
		{KeyA, true},
		{KeyZ, true},
		{Key0, true},
		{KeySpace, true},
		{KeyF12, true},
		{basicEnd, false},
		{CancelOn, false},
		{CancelRecoveryToggle, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsBasic(); got != tt.want {
				t.Errorf("Key.IsBasic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyIsAdministrative(t *testing.T) {
	admin := []Key{CancelOn, CancelOff, CancelToggle, CancelRecoveryOn, CancelRecoveryOff, CancelRecoveryToggle}
	for _, k := range admin {
		if !k.IsAdministrative() {
			t.Errorf("%s.IsAdministrative() = false, want true", k)
		}
		if k.IsBasic() {
			t.Errorf("%s.IsBasic() = true, want false", k)
		}
	}
	for _, k := range []Key{KeyNone, KeyA, KeyF12} {
		if k.IsAdministrative() {
			t.Errorf("%s.IsAdministrative() = true, want false", k)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"a", KeyA},
		{"A", KeyA},
		{"  w  ", KeyW},
		{"z", KeyZ},
		{"0", Key0},
		{"enter", KeyEnter},
		{"return", KeyEnter},
		{"cr", KeyEnter},
		{"esc", KeyEscape},
		{"escape", KeyEscape},
		{"bs", KeyBackspace},
		{"space", KeySpace},
		{"f10", KeyF10},
		{"cancelon", CancelOn},
		{"cancelrecoverytoggle", CancelRecoveryToggle},
		{"", KeyNone},
		{"bogus", KeyNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromName(tt.name); got != tt.want {
				t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Key
	}{
		{'a', KeyA},
		{'A', KeyA},
		{'z', KeyZ},
		{'1', Key1},
		{'9', Key9},
		{'0', Key0},
		{' ', KeySpace},
		{'!', KeyNone},
		{'\n', KeyNone},
	}

	for _, tt := range tests {
		if got := FromRune(tt.r); got != tt.want {
			t.Errorf("FromRune(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
