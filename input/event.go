// Package input reads key events from tag readers.
package input

import (
	"context"
	"errors"
)

// ErrDeviceAcquisition is returned when the reader cannot be opened for
// exclusive use.
var ErrDeviceAcquisition = errors.New("cannot acquire input device")

// EventType classifies a raw input event
type EventType uint8

const (
	EventOther EventType = iota
	EventKey
	EventSync
)

// Key event values as reported by the kernel
const (
	KeyRelease int32 = 0
	KeyPress   int32 = 1
	KeyRepeat  int32 = 2
)

// Event is a single raw event from a reader
type Event struct {
	Type  EventType
	Code  KeyCode
	Value int32
}

// IsKeyPress reports whether the event is a key going down. Releases and
// auto-repeats are not presses.
func (e Event) IsKeyPress() bool {
	return e.Type == EventKey && e.Value == KeyPress
}

// Press builds a key press event for code
func Press(code KeyCode) Event {
	return Event{Type: EventKey, Code: code, Value: KeyPress}
}

// Release builds a key release event for code
func Release(code KeyCode) Event {
	return Event{Type: EventKey, Code: code, Value: KeyRelease}
}

// Source delivers batches of events from a reader
type Source interface {
	// Fetch blocks until at least one event is available.
	Fetch(ctx context.Context) ([]Event, error)

	// Close releases the device. A blocked Fetch returns an error.
	Close() error
}
