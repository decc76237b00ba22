package cancel

import "github.com/dshills/keycancel/internal/input/key"

// BufferCap is the fixed capacity of the active press buffer. Press-side keys
// beyond this many held at once are simply not tracked (degraded mode:
// cancellation still fires for them, recovery cannot account for them).
const BufferCap = 10

// buffer is a bounded, order-preserving set of the press-side keys currently
// held. Insertion order is preserved; removal compacts so the first size
// slots are always contiguous.
type buffer struct {
	keys [BufferCap]key.Key
	size int
}

// contains reports whether k is currently tracked.
func (b *buffer) contains(k key.Key) bool {
	for i := 0; i < b.size; i++ {
		if b.keys[i] == k {
			return true
		}
	}
	return false
}

// insert appends k if it is not already tracked and there is room. At
// capacity the key is silently dropped.
func (b *buffer) insert(k key.Key) {
	if b.contains(k) {
		return
	}
	if b.size >= BufferCap {
		return
	}
	b.keys[b.size] = k
	b.size++
}

// remove deletes k, shifting later entries left by one. No-op if k is not
// tracked.
func (b *buffer) remove(k key.Key) {
	for i := 0; i < b.size; i++ {
		if b.keys[i] != k {
			continue
		}
		for j := i; j < b.size-1; j++ {
			b.keys[j] = b.keys[j+1]
		}
		b.size--
		return
	}
}

// clear drops all tracked keys.
func (b *buffer) clear() {
	b.size = 0
}

// snapshot copies the buffer's backing storage for one reconciliation pass.
// Index i in the snapshot corresponds to index i in the buffer for all
// indices below size at snapshot time.
func (b *buffer) snapshot() snapshot {
	return snapshot{keys: b.keys, size: b.size}
}

// snapshot is a transient working copy of the buffer. Slots are marked
// removed in place, without compaction, so positional correspondence with the
// buffer is preserved. A parallel mask records removal rather than a zeroed
// keycode, so a slot's original key remains readable after marking.
type snapshot struct {
	keys    [BufferCap]key.Key
	removed [BufferCap]bool
	size    int
}

// at returns the key at slot i, or KeyNone if the slot is marked removed.
func (s *snapshot) at(i int) key.Key {
	if s.removed[i] {
		return key.KeyNone
	}
	return s.keys[i]
}

// markRemoved marks the first unremoved slot holding k among slots [0, end).
func (s *snapshot) markRemoved(k key.Key, end int) {
	for i := 0; i < end; i++ {
		if !s.removed[i] && s.keys[i] == k {
			s.removed[i] = true
			return
		}
	}
}
