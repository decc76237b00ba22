package key

import (
	"fmt"
	"strings"
)

// Key identifies a keyboard key as reported by the matrix scanner.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Letter keys
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digit keys
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0

	// Control and whitespace keys
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// basicEnd marks the end of the basic keycode range.
	basicEnd
)

// Administrative keycodes are reserved virtual codes outside the basic range.
// They configure the cancellation feature and are recognized on press only.
const (
	// CancelOn enables key cancellation.
	CancelOn Key = 0x7C0 + iota

	// CancelOff disables key cancellation.
	CancelOff

	// CancelToggle toggles key cancellation.
	CancelToggle

	// CancelRecoveryOn enables key cancellation recovery.
	CancelRecoveryOn

	// CancelRecoveryOff disables key cancellation recovery.
	CancelRecoveryOff

	// CancelRecoveryToggle toggles key cancellation recovery.
	CancelRecoveryToggle
)

// IsBasic returns true if k is a basic keycode: a plain key that occupies a
// slot in the outgoing host report. Modifiers, system keys, and reserved
// virtual codes are not basic.
func (k Key) IsBasic() bool {
	return k > KeyNone && k < basicEnd
}

// IsAdministrative returns true if k is one of the reserved feature-control
// keycodes.
func (k Key) IsAdministrative() bool {
	return k >= CancelOn && k <= CancelRecoveryToggle
}

// keyNames maps basic keycodes to their canonical names, indexed by Key.
var keyNames = [...]string{
	KeyNone:      "None",
	KeyA:         "A",
	KeyB:         "B",
	KeyC:         "C",
	KeyD:         "D",
	KeyE:         "E",
	KeyF:         "F",
	KeyG:         "G",
	KeyH:         "H",
	KeyI:         "I",
	KeyJ:         "J",
	KeyK:         "K",
	KeyL:         "L",
	KeyM:         "M",
	KeyN:         "N",
	KeyO:         "O",
	KeyP:         "P",
	KeyQ:         "Q",
	KeyR:         "R",
	KeyS:         "S",
	KeyT:         "T",
	KeyU:         "U",
	KeyV:         "V",
	KeyW:         "W",
	KeyX:         "X",
	KeyY:         "Y",
	KeyZ:         "Z",
	Key1:         "1",
	Key2:         "2",
	Key3:         "3",
	Key4:         "4",
	Key5:         "5",
	Key6:         "6",
	Key7:         "7",
	Key8:         "8",
	Key9:         "9",
	Key0:         "0",
	KeyEnter:     "Enter",
	KeyEscape:    "Escape",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) && keyNames[k] != "" {
		return keyNames[k]
	}
	switch k {
	case CancelOn:
		return "CancelOn"
	case CancelOff:
		return "CancelOff"
	case CancelToggle:
		return "CancelToggle"
	case CancelRecoveryOn:
		return "CancelRecoveryOn"
	case CancelRecoveryOff:
		return "CancelRecoveryOff"
	case CancelRecoveryToggle:
		return "CancelRecoveryToggle"
	default:
		return fmt.Sprintf("Key(%d)", uint16(k))
	}
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = buildNameMap()

func buildNameMap() map[string]Key {
	m := make(map[string]Key, len(keyNames)+8)
	for k, name := range keyNames {
		if name != "" {
			m[strings.ToLower(name)] = Key(k)
		}
	}
	// Administrative codes are addressable by name so rule/config files can
	// bind them.
	for k := CancelOn; k <= CancelRecoveryToggle; k++ {
		m[strings.ToLower(k.String())] = k
	}
	// Common aliases
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	m["cr"] = KeyEnter
	m["bs"] = KeyBackspace
	return m
}

// FromName returns the Key for a given name (case-insensitive).
// Returns KeyNone if the name is not recognized.
func FromName(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNameMap[name]; ok {
		return k
	}
	return KeyNone
}

// FromRune returns the Key for a single printable character, or KeyNone if
// the character does not map to a basic keycode.
func FromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '1' && r <= '9':
		return Key1 + Key(r-'1')
	case r == '0':
		return Key0
	case r == ' ':
		return KeySpace
	default:
		return KeyNone
	}
}
