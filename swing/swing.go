// SPDX-License-Identifier: EPL-2.0

package swing

import "math"

// Percentage bounds. Values at or below MinPercentage, or above
// MaxPercentage, apply no swing.
const (
	MinPercentage = 50
	MaxPercentage = 75

	// DefaultResolution is sixteen steps per beat.
	DefaultResolution = 16

	snapStep = 5
)

// Options parameterise a swing pass. Resolution is in steps per beat.
type Options struct {
	Percentage float64
	Resolution int
}

// Settings is the sequencer's swing state.
type Settings struct {
	Enabled    bool
	Percentage float64
	Resolution int
}

func (s Settings) Options() Options {
	return Options{Percentage: s.Percentage, Resolution: s.Resolution}
}

// Apply swings events when the settings are enabled, and copies them
// otherwise.
func (s Settings) Apply(events []Event) []Event {
	if !s.Enabled {
		return append([]Event(nil), events...)
	}
	return Apply(events, s.Options())
}

// active returns the grid size in milliseconds and the delay fraction, or
// ok=false when opts apply no swing.
func (o Options) active() (grid, amount float64, ok bool) {
	if o.Percentage <= MinPercentage || o.Percentage > MaxPercentage || o.Resolution <= 0 {
		return 0, 0, false
	}
	return 60000 / float64(o.Resolution), (o.Percentage - MinPercentage) / 50, true
}

// Delay returns time moved the way Apply moves a note-on at that time:
// note-ons on odd grid positions are pushed late by grid*amount. Times
// before zero are never moved.
func Delay(time float64, opts Options) float64 {
	grid, amount, ok := opts.active()
	if !ok {
		return time
	}
	return delay(time, grid, amount)
}

func delay(time, grid, amount float64) float64 {
	if int64(math.Floor(time/grid))%2 == 1 {
		return time + grid*amount
	}
	return time
}

// Apply returns a swung copy of events in the same order. Only note-ons
// move.
func Apply(events []Event, opts Options) []Event {
	out := make([]Event, len(events))
	copy(out, events)

	grid, amount, ok := opts.active()
	if !ok {
		return out
	}
	for i := range out {
		if out[i].Type == NoteOn {
			out[i].Time = delay(out[i].Time, grid, amount)
		}
	}
	return out
}

// ApplySteps is Apply for step events. Step index, duration and gate are
// kept.
func ApplySteps(events []StepEvent, opts Options) []StepEvent {
	out := make([]StepEvent, len(events))
	copy(out, events)

	grid, amount, ok := opts.active()
	if !ok {
		return out
	}
	for i := range out {
		if out[i].Type == NoteOn {
			out[i].Time = delay(out[i].Time, grid, amount)
		}
	}
	return out
}

// Snap clamps p into the swing range and rounds it to the nearest step of
// five, the values the swing screen can store.
func Snap(p float64) float64 {
	if math.IsNaN(p) {
		return MinPercentage
	}
	p = min(max(p, MinPercentage), MaxPercentage)
	return math.Round(p/snapStep) * snapStep
}
