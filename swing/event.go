// SPDX-License-Identifier: EPL-2.0

package swing

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2"
)

// EventType is the kind of a pattern event.
type EventType int

const (
	NoteOn EventType = iota
	NoteOff
	ControlChange
)

func (t EventType) String() string {
	switch t {
	case NoteOn:
		return "noteOn"
	case NoteOff:
		return "noteOff"
	case ControlChange:
		return "controlChange"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a timed pattern event. Time is in milliseconds from the start
// of the pattern.
type Event struct {
	Type       EventType
	Time       float64
	Note       uint8
	Velocity   uint8
	Controller uint8
	Value      uint8
}

// StepEvent is an Event placed on a sequencer step.
type StepEvent struct {
	Event
	StepIndex int
	// Duration and Gate are in milliseconds.
	Duration float64
	Gate     float64
}

// FromMessage converts a channel message received at timeMs.
func FromMessage(msg midi.Message, timeMs float64) (Event, error) {
	var ch, a, b uint8
	switch {
	case msg.GetNoteOn(&ch, &a, &b):
		return Event{Type: NoteOn, Time: timeMs, Note: a, Velocity: b}, nil
	case msg.GetNoteOff(&ch, &a, &b):
		return Event{Type: NoteOff, Time: timeMs, Note: a, Velocity: b}, nil
	case msg.GetControlChange(&ch, &a, &b):
		return Event{Type: ControlChange, Time: timeMs, Controller: a, Value: b}, nil
	default:
		return Event{}, fmt.Errorf("%w: %v", ErrUnsupportedMessage, msg)
	}
}

// Message returns the event as a channel message.
func (e Event) Message(channel uint8) midi.Message {
	switch e.Type {
	case NoteOn:
		return midi.NoteOn(channel, e.Note, e.Velocity)
	case NoteOff:
		return midi.NoteOffVelocity(channel, e.Note, e.Velocity)
	default:
		return midi.ControlChange(channel, e.Controller, e.Value)
	}
}
