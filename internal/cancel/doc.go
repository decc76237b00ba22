// Package cancel implements the key-cancellation engine: a filter between the
// matrix scanner and host-report assembly that applies rules of the form
// "while P is held, U is forced released", with optional recovery of
// suppressed keys once their suppressors are released.
//
// The engine keeps a bounded, insertion-ordered buffer of the press-side keys
// currently held. On an eligible press it forces the paired keys released,
// unconditionally. On an eligible release, with recovery enabled, it
// reconciles: it snapshots the buffer, walks it newest to oldest marking
// still-suppressed entries in the working copy, then diffs working copy
// against buffer position by position, re-pressing unchanged slots and
// releasing marked ones.
//
// All collaborators are injected: the rule table, the host-report primitives,
// the flag persistence, and an optional veto hook. The engine itself is
// synchronous, non-blocking, and not safe for concurrent use.
package cancel
