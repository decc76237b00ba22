// Package turbo implements the turbo-click feature: a trigger keycode that
// toggles rapid, periodic press/release of a target key. It shares no state
// with the cancellation core; it only consumes its trigger key and drives the
// host report through the deferred-execution scheduler.
package turbo

import (
	"time"

	"github.com/dshills/keycancel/internal/cancel"
	"github.com/dshills/keycancel/internal/input/key"
	"github.com/dshills/keycancel/internal/sched"
)

// DefaultPeriod is the default full click period: one press plus one release.
const DefaultPeriod = 10 * time.Millisecond

// Clicker toggles periodic clicking of a target key when its trigger key is
// pressed. Not safe for concurrent use; it lives on the host's synchronous
// input loop.
type Clicker struct {
	trigger key.Key
	click   key.Key
	period  time.Duration

	sched  *sched.Scheduler
	report cancel.Report

	active     bool
	registered bool
	token      sched.Token
}

// Option configures a Clicker.
type Option func(*Clicker)

// WithPeriod sets the full click period (press plus release). Periods below
// one millisecond are raised to it so the host loop is not saturated.
func WithPeriod(d time.Duration) Option {
	return func(c *Clicker) {
		if d < time.Millisecond {
			d = time.Millisecond
		}
		c.period = d
	}
}

// New creates a Clicker that clicks the click key while toggled on by the
// trigger key.
func New(trigger, click key.Key, s *sched.Scheduler, r cancel.Report, opts ...Option) *Clicker {
	c := &Clicker{
		trigger: trigger,
		click:   click,
		period:  DefaultPeriod,
		sched:   s,
		report:  r,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active reports whether turbo clicking is currently toggled on.
func (c *Clicker) Active() bool {
	return c.active
}

// Process runs one key event through the feature. It returns true if the
// event should continue down the pipeline, false if it was the trigger key
// and was consumed. Both press and release of the trigger are consumed; only
// the press toggles.
func (c *Clicker) Process(ev key.Event, now time.Time) bool {
	if ev.Key != c.trigger {
		return true
	}
	if ev.Pressed() {
		c.active = !c.active
		if c.active {
			c.start(now)
		} else {
			c.stop()
		}
	}
	return false
}

// start fires the first half-click immediately and schedules the rest.
func (c *Clicker) start(now time.Time) {
	if c.token != sched.InvalidToken {
		return
	}
	next := c.step(now)
	c.token = c.sched.Defer(now, next, c.step)
}

// stop cancels the callback and releases the click key if it is mid-press.
func (c *Clicker) stop() {
	if c.token == sched.InvalidToken {
		return
	}
	c.sched.Cancel(c.token)
	c.token = sched.InvalidToken
	if c.registered {
		c.report.Release(c.click)
		c.registered = false
	}
}

// step alternates between pressing and releasing the click key, half a
// period apart.
func (c *Clicker) step(time.Time) time.Duration {
	if c.registered {
		c.report.Release(c.click)
		c.registered = false
	} else {
		c.registered = true
		c.report.Press(c.click)
	}
	return c.period / 2
}
