// Package sched implements a deferred-execution scheduler for the
// synchronous input path: callbacks registered to run after a delay, driven
// entirely by the host loop calling Tick. No goroutines, no blocking; a
// callback reschedules itself by returning a positive delay.
package sched

import "time"

// Token identifies a scheduled callback for cancellation.
type Token uint32

// InvalidToken is returned when scheduling fails and never identifies a live
// callback.
const InvalidToken Token = 0

// Callback is a deferred callback. The return value is the delay until the
// next execution; zero or negative stops the callback.
type Callback func(now time.Time) time.Duration

type entry struct {
	token Token
	due   time.Time
	cb    Callback
}

// Scheduler holds pending callbacks. The zero value is ready to use.
//
// Scheduler is not safe for concurrent use; it belongs to the same
// single-threaded loop that drives the cancellation engine.
type Scheduler struct {
	entries []entry
	last    Token
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Defer schedules cb to run once delay has elapsed past now. It returns a
// token for cancellation, or InvalidToken if cb is nil or delay is not
// positive.
func (s *Scheduler) Defer(now time.Time, delay time.Duration, cb Callback) Token {
	if cb == nil || delay <= 0 {
		return InvalidToken
	}

	s.last++
	if s.last == InvalidToken {
		s.last++
	}
	s.entries = append(s.entries, entry{
		token: s.last,
		due:   now.Add(delay),
		cb:    cb,
	})
	return s.last
}

// Cancel removes a pending callback. It returns false if the token does not
// identify a live callback.
func (s *Scheduler) Cancel(tok Token) bool {
	idx := s.index(tok)
	if idx < 0 {
		return false
	}
	s.remove(idx)
	return true
}

// Tick runs every callback whose due time has arrived. Callbacks may cancel
// or schedule other callbacks from within Tick; a callback scheduled during
// this pass does not run until a later Tick.
func (s *Scheduler) Tick(now time.Time) {
	due := make([]Token, 0, len(s.entries))
	for _, e := range s.entries {
		if !e.due.After(now) {
			due = append(due, e.token)
		}
	}

	for _, tok := range due {
		idx := s.index(tok)
		if idx < 0 {
			continue // cancelled by an earlier callback this pass
		}
		next := s.entries[idx].cb(now)

		// The callback may have cancelled itself.
		idx = s.index(tok)
		if idx < 0 {
			continue
		}
		if next > 0 {
			s.entries[idx].due = now.Add(next)
		} else {
			s.remove(idx)
		}
	}
}

// Len returns the number of pending callbacks.
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// NextDue returns the earliest pending due time, if any. Hosts use it to
// bound how long they may sleep between Ticks.
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.entries) == 0 {
		return time.Time{}, false
	}
	earliest := s.entries[0].due
	for _, e := range s.entries[1:] {
		if e.due.Before(earliest) {
			earliest = e.due
		}
	}
	return earliest, true
}

func (s *Scheduler) index(tok Token) int {
	if tok == InvalidToken {
		return -1
	}
	for i, e := range s.entries {
		if e.token == tok {
			return i
		}
	}
	return -1
}

func (s *Scheduler) remove(idx int) {
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}
