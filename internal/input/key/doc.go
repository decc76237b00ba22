// Package key defines keycodes and key events for the cancellation filter.
//
// A Key is a small integer identifying a physical key. Basic keycodes
// (letters, digits, arrows, function keys) are the only kind eligible for
// cancellation rules; reserved administrative codes control the feature
// itself and never reach the host report.
//
// An Event pairs a Key with a press or release Action and a timestamp, and is
// the unit of work fed through the engine one at a time.
package key
