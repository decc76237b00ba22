package cancel

import "github.com/dshills/keycancel/internal/input/key"

// Rule pairs a press-side key with the key it forces released. While Press is
// held and cancellation is enabled, Unpress is kept out of the host report.
type Rule struct {
	// Press is the key that triggers the cancellation when pressed.
	Press key.Key

	// Unpress is the key forced released.
	Unpress key.Key
}

// Table is an ordered, read-only collection of cancellation rules. The engine
// never mutates a Table; it must not change for the engine's lifetime.
// Multiple rules may share the same press or unpress key.
type Table interface {
	// Len returns the number of rules.
	Len() int

	// At returns the rule at index i, 0 <= i < Len().
	At(i int) Rule
}

// Rules is a slice-backed Table.
type Rules []Rule

// Len implements Table.
func (r Rules) Len() int { return len(r) }

// At implements Table.
func (r Rules) At(i int) Rule { return r[i] }

// Opposing returns the two rules that make keys a and b mutually cancelling:
// pressing either forces the other released. This is the common authoring
// shape for opposing direction keys.
func Opposing(a, b key.Key) Rules {
	return Rules{{Press: a, Unpress: b}, {Press: b, Unpress: a}}
}

// hasPress reports whether k is the press side of at least one rule.
func hasPress(t Table, k key.Key) bool {
	for i := 0; i < t.Len(); i++ {
		if t.At(i).Press == k {
			return true
		}
	}
	return false
}
