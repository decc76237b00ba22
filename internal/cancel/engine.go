package cancel

import (
	"io"
	"log/slog"

	"github.com/dshills/keycancel/internal/input/key"
)

// Flags holds the two independent feature switches. They are owned by the
// surrounding configuration subsystem; the engine reads them and writes them
// only in response to administrative keycodes.
type Flags struct {
	// Enabled turns the cancellation feature on.
	Enabled bool

	// RecoveryEnabled additionally tracks held press-side keys so that
	// suppressed keys are restored on release.
	RecoveryEnabled bool
}

// Report is the set of host-report primitives the engine drives. Both
// operations must be idempotent; the caller batches them into the actual
// outgoing report.
type Report interface {
	// Press asserts k pressed in the outgoing report.
	Press(k key.Key)

	// Release asserts k released in the outgoing report.
	Release(k key.Key)
}

// FlagStore persists the feature flags. Load is called once at engine
// construction; Save is called synchronously whenever an administrative event
// changes state. Save failures are opaque to the engine (fire-and-forget).
type FlagStore interface {
	Load() (Flags, error)
	Save(Flags) error
}

// AllowFunc is the user veto hook: returning false excludes the event from
// cancellation processing (the event is forwarded unmodified). The default
// hook allows everything.
type AllowFunc func(k key.Key, pressed bool) bool

// Engine applies cancellation rules to the event stream between the matrix
// scanner and host-report assembly.
//
// The engine is single-threaded by contract: it is invoked once per key event
// from the input-processing path, completes fully before returning, and is
// not reentrant. It performs no locking; a multi-threaded host must serialize
// calls at the boundary.
type Engine struct {
	table Table
	flags Flags
	buf   buffer

	report Report
	store  FlagStore
	allow  AllowFunc
	log    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithAllowFunc installs a veto hook consulted per event.
func WithAllowFunc(fn AllowFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.allow = fn
		}
	}
}

// WithFlagStore installs a persistence collaborator. The engine loads the
// initial flags from it and saves through it on administrative events.
func WithFlagStore(s FlagStore) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithFlags sets the initial flags. A FlagStore's loaded value takes
// precedence when both are supplied.
func WithFlags(f Flags) Option {
	return func(e *Engine) {
		e.flags = f
	}
}

// WithLogger installs a logger for debug traces of the reconciliation pass.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Engine over an externally authored rule table, driving the
// given host-report primitives.
func New(table Table, report Report, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		report: report,
		allow:  func(key.Key, bool) bool { return true },
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.store != nil {
		if f, err := e.store.Load(); err == nil {
			e.flags = f
		}
	}

	return e
}

// Process runs one key event through the filter. It returns true if the
// event should continue down the host's key pipeline, false if the engine
// consumed it (administrative keycodes only).
func (e *Engine) Process(ev key.Event) bool {
	if ev.Pressed() {
		switch ev.Key {
		case key.CancelOn:
			e.SetEnabled(true)
			return false
		case key.CancelOff:
			e.SetEnabled(false)
			return false
		case key.CancelToggle:
			e.SetEnabled(!e.flags.Enabled)
			return false
		case key.CancelRecoveryOn:
			e.SetRecoveryEnabled(true)
			return false
		case key.CancelRecoveryOff:
			e.SetRecoveryEnabled(false)
			return false
		case key.CancelRecoveryToggle:
			e.SetRecoveryEnabled(!e.flags.RecoveryEnabled)
			return false
		}
	}

	if !e.flags.Enabled {
		return true
	}

	// Only basic keycodes participate in rules.
	if !ev.Key.IsBasic() {
		return true
	}

	if !e.allow(ev.Key, ev.Pressed()) {
		return true
	}

	// Without recovery there is nothing to reconstruct on release: the engine
	// only ever forces releases on press.
	if !e.flags.RecoveryEnabled && !ev.Pressed() {
		return true
	}

	if e.flags.RecoveryEnabled {
		if hasPress(e.table, ev.Key) {
			if ev.Pressed() {
				e.buf.insert(ev.Key)
			} else {
				e.buf.remove(ev.Key)
			}
		}

		if e.buf.size == 0 {
			return true
		}
	}

	if ev.Pressed() {
		// Forward suppression is unconditional: holding the cancelling key
		// always keeps its partner released, tracked or not.
		for i := 0; i < e.table.Len(); i++ {
			r := e.table.At(i)
			if r.Press == ev.Key {
				e.report.Release(r.Unpress)
			}
		}
		return true
	}

	e.reconcile()
	return true
}

// reconcile decides, after a release has updated the buffer, which tracked
// keys must remain suppressed and which are restored. Walking newest to
// oldest gives the most recently added still-held press-side key priority;
// the position-by-position diff at the end avoids both resurrecting keys
// still suppressed by another held key and dropping keys that are still
// physically held.
func (e *Engine) reconcile() {
	snap := e.buf.snapshot()

	e.log.Debug("reconcile start", "tracked", e.buf.size)

	for j := e.buf.size - 1; j >= 0; j-- {
		for i := 0; i < e.table.Len(); i++ {
			r := e.table.At(i)
			if r.Press != snap.at(j) {
				continue
			}
			if !e.buf.contains(r.Unpress) {
				continue
			}
			// The unpress side is itself tracked: an overlapping chain. Mark
			// its slot removed, but only at positions older than the current
			// walk index.
			snap.markRemoved(r.Unpress, j)
		}
	}

	for i := 0; i < e.buf.size; i++ {
		if snap.removed[i] {
			e.log.Debug("reconcile release", "key", e.buf.keys[i])
			e.report.Release(e.buf.keys[i])
		} else {
			e.report.Press(e.buf.keys[i])
		}
	}
}

// Enabled reports whether cancellation is on.
func (e *Engine) Enabled() bool {
	return e.flags.Enabled
}

// RecoveryEnabled reports whether recovery is effective, which requires the
// feature itself to be on as well.
func (e *Engine) RecoveryEnabled() bool {
	return e.flags.Enabled && e.flags.RecoveryEnabled
}

// Flags returns the current flag values.
func (e *Engine) Flags() Flags {
	return e.flags
}

// SetEnabled sets the cancellation flag and requests persistence.
func (e *Engine) SetEnabled(v bool) {
	e.flags.Enabled = v
	e.persist()
}

// SetRecoveryEnabled sets the recovery flag and requests persistence.
func (e *Engine) SetRecoveryEnabled(v bool) {
	e.flags.RecoveryEnabled = v
	e.persist()
}

// Tracked returns the buffered press-side keys in insertion order.
func (e *Engine) Tracked() []key.Key {
	out := make([]key.Key, e.buf.size)
	copy(out, e.buf.keys[:e.buf.size])
	return out
}

// Reset drops all tracked keys. The engine never does this on its own: flag
// toggles retain the buffer, so entries held across a disable survive a
// re-enable. Hosts that want a clean slate call Reset explicitly.
func (e *Engine) Reset() {
	e.buf.clear()
}

// persist saves the flags through the store, if one is installed. The write
// is fire-and-forget; persistence failure is the store's concern.
func (e *Engine) persist() {
	if e.store != nil {
		if err := e.store.Save(e.flags); err != nil {
			e.log.Debug("flag save failed", "error", err)
		}
	}
}
