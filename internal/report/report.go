// Package report implements the outgoing host report: the ordered set of
// keys currently asserted pressed toward the host. It provides the idempotent
// press/release primitives the cancellation engine drives and a byte
// rendering in the shape of a standard 6-key boot report.
package report

import "github.com/dshills/keycancel/internal/input/key"

// SlotCount is the number of key slots in the rendered boot report.
const SlotCount = 6

// State is the set of keys currently asserted pressed, in assertion order.
// Press and Release are idempotent; the zero value is ready to use.
//
// State is not safe for concurrent use; it lives on the same synchronous
// path as the engine that drives it.
type State struct {
	keys []key.Key
}

// New creates an empty report state.
func New() *State {
	return &State{}
}

// Press asserts k pressed. Re-pressing an asserted key is a no-op.
func (s *State) Press(k key.Key) {
	if k == key.KeyNone || s.Pressed(k) {
		return
	}
	s.keys = append(s.keys, k)
}

// Release asserts k released. Releasing an unasserted key is a no-op.
func (s *State) Release(k key.Key) {
	for i, cur := range s.keys {
		if cur == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}

// Pressed reports whether k is currently asserted.
func (s *State) Pressed(k key.Key) bool {
	for _, cur := range s.keys {
		if cur == k {
			return true
		}
	}
	return false
}

// Keys returns the asserted keys in assertion order.
func (s *State) Keys() []key.Key {
	out := make([]key.Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of asserted keys.
func (s *State) Len() int {
	return len(s.keys)
}

// Clear releases every asserted key.
func (s *State) Clear() {
	s.keys = s.keys[:0]
}

// Bytes renders the report as SlotCount key slots, oldest assertion first.
// Keys beyond SlotCount are dropped from the rendering, as a boot-protocol
// report would drop them. Keycodes are truncated to their low byte.
func (s *State) Bytes() []byte {
	out := make([]byte, SlotCount)
	for i, k := range s.keys {
		if i >= SlotCount {
			break
		}
		out[i] = byte(k)
	}
	return out
}
