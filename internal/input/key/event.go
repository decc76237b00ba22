package key

import (
	"fmt"
	"time"
)

// Action distinguishes press events from release events.
type Action uint8

const (
	// Press indicates the key went down.
	Press Action = iota

	// Release indicates the key came up.
	Release
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		return fmt.Sprintf("Action(%d)", uint8(a))
	}
}

// Event represents a single key press or release as delivered by the matrix
// scanner.
type Event struct {
	// Key identifies the key.
	Key Key

	// Action is Press or Release.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewPress creates a press event with the current timestamp.
func NewPress(k Key) Event {
	return Event{Key: k, Action: Press, Timestamp: time.Now()}
}

// NewRelease creates a release event with the current timestamp.
func NewRelease(k Key) Event {
	return Event{Key: k, Action: Release, Timestamp: time.Now()}
}

// Pressed returns true for press events.
func (e Event) Pressed() bool {
	return e.Action == Press
}

// Equals returns true if two events carry the same key and action.
// Timestamps are not compared.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key && e.Action == other.Action
}

// String returns a canonical string representation like "W down" or "S up".
func (e Event) String() string {
	dir := "down"
	if !e.Pressed() {
		dir = "up"
	}
	return e.Key.String() + " " + dir
}
