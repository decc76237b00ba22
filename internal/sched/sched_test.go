package sched

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDeferValidation(t *testing.T) {
	s := New()
	if tok := s.Defer(t0, 10*time.Millisecond, nil); tok != InvalidToken {
		t.Error("nil callback accepted")
	}
	if tok := s.Defer(t0, 0, func(time.Time) time.Duration { return 0 }); tok != InvalidToken {
		t.Error("zero delay accepted")
	}
	if tok := s.Defer(t0, -time.Millisecond, func(time.Time) time.Duration { return 0 }); tok != InvalidToken {
		t.Error("negative delay accepted")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestTickRunsDueCallbacks(t *testing.T) {
	s := New()
	ran := 0
	s.Defer(t0, 10*time.Millisecond, func(time.Time) time.Duration {
		ran++
		return 0
	})

	s.Tick(t0.Add(5 * time.Millisecond))
	if ran != 0 {
		t.Fatal("callback ran before its due time")
	}

	s.Tick(t0.Add(10 * time.Millisecond))
	if ran != 1 {
		t.Fatalf("ran = %d, want 1", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after one-shot, want 0", s.Len())
	}

	// One-shot callbacks do not run again.
	s.Tick(t0.Add(time.Second))
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
}

func TestCallbackReschedulesByReturn(t *testing.T) {
	s := New()
	ran := 0
	s.Defer(t0, 10*time.Millisecond, func(time.Time) time.Duration {
		ran++
		if ran < 3 {
			return 10 * time.Millisecond
		}
		return 0
	})

	for i := 1; i <= 5; i++ {
		s.Tick(t0.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	if ran != 3 {
		t.Errorf("ran = %d, want 3", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestRescheduledNotRerunSameTick(t *testing.T) {
	s := New()
	ran := 0
	s.Defer(t0, time.Millisecond, func(time.Time) time.Duration {
		ran++
		return time.Millisecond
	})

	s.Tick(t0.Add(time.Hour))
	if ran != 1 {
		t.Errorf("ran = %d in one tick, want 1", ran)
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	tok := s.Defer(t0, time.Millisecond, func(time.Time) time.Duration {
		ran = true
		return 0
	})

	if !s.Cancel(tok) {
		t.Fatal("Cancel() = false for a live token")
	}
	if s.Cancel(tok) {
		t.Error("Cancel() = true for a dead token")
	}
	if s.Cancel(InvalidToken) {
		t.Error("Cancel(InvalidToken) = true")
	}

	s.Tick(t0.Add(time.Second))
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestCallbackCancelsSelf(t *testing.T) {
	s := New()
	var tok Token
	ran := 0
	tok = s.Defer(t0, time.Millisecond, func(time.Time) time.Duration {
		ran++
		s.Cancel(tok)
		return time.Millisecond // ignored: the entry is gone
	})

	s.Tick(t0.Add(time.Second))
	s.Tick(t0.Add(2 * time.Second))
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestCallbackCancelsPeer(t *testing.T) {
	// Callbacks run in registration order, so the canceller goes first.
	s := New()
	var peer Token
	var peerRan bool
	s.Defer(t0, time.Millisecond, func(time.Time) time.Duration {
		s.Cancel(peer)
		return 0
	})
	peer = s.Defer(t0, 2*time.Millisecond, func(time.Time) time.Duration {
		peerRan = true
		return 0
	})

	s.Tick(t0.Add(time.Second))
	if peerRan {
		t.Error("cancelled peer ran in the same pass")
	}
}

func TestCallbackDefersNewNotRunSamePass(t *testing.T) {
	s := New()
	var lateRan bool
	s.Defer(t0, time.Millisecond, func(now time.Time) time.Duration {
		s.Defer(now, time.Nanosecond, func(time.Time) time.Duration {
			lateRan = true
			return 0
		})
		return 0
	})

	s.Tick(t0.Add(time.Second))
	if lateRan {
		t.Error("callback scheduled mid-pass ran in the same pass")
	}
	s.Tick(t0.Add(2 * time.Second))
	if !lateRan {
		t.Error("callback scheduled mid-pass never ran")
	}
}

func TestNextDue(t *testing.T) {
	s := New()
	if _, ok := s.NextDue(); ok {
		t.Error("NextDue() = ok on empty scheduler")
	}

	s.Defer(t0, 20*time.Millisecond, func(time.Time) time.Duration { return 0 })
	s.Defer(t0, 10*time.Millisecond, func(time.Time) time.Duration { return 0 })

	due, ok := s.NextDue()
	if !ok {
		t.Fatal("NextDue() = !ok")
	}
	if want := t0.Add(10 * time.Millisecond); !due.Equal(want) {
		t.Errorf("NextDue() = %v, want %v", due, want)
	}
}

func TestTokensAreUnique(t *testing.T) {
	s := New()
	seen := map[Token]bool{}
	for i := 0; i < 100; i++ {
		tok := s.Defer(t0, time.Millisecond, func(time.Time) time.Duration { return 0 })
		if tok == InvalidToken {
			t.Fatal("valid Defer returned InvalidToken")
		}
		if seen[tok] {
			t.Fatalf("token %d issued twice", tok)
		}
		seen[tok] = true
	}
}
