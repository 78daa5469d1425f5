// SPDX-License-Identifier: EPL-2.0

package main

import (
	"time"

	"github.com/TerminallyLazy/mpc2000xl/playback"
	"github.com/TerminallyLazy/mpc2000xl/swing"
)

// General MIDI drum notes.
const (
	noteKick  = 36
	noteSnare = 38
	noteHiHat = 42
)

const (
	stepsPerBar = 16
	playTail    = 250 * time.Millisecond
)

// voiceLength is how long a sample of duration d sounds when tuned by
// semitones. Tuning changes the playback rate, so lower pitches last longer.
func voiceLength(d time.Duration, semitones float64) time.Duration {
	return time.Duration(float64(d) / playback.TuneRate(semitones))
}

// hatPattern is a sixteenth-note hi-hat over kick and snare, the pattern
// swing is easiest to hear on.
func hatPattern(bpm float64, bars int) []swing.Event {
	step := 60000 / bpm / 4
	gate := step / 2

	var events []swing.Event
	for i := range bars * stepsPerBar {
		at := float64(i) * step
		notes := []uint8{noteHiHat}
		switch i % stepsPerBar {
		case 0, 8:
			notes = append(notes, noteKick)
		case 4, 12:
			notes = append(notes, noteSnare)
		}
		for _, n := range notes {
			events = append(events,
				swing.Event{Type: swing.NoteOn, Time: at, Note: n, Velocity: 100},
				swing.Event{Type: swing.NoteOff, Time: at + gate, Note: n},
			)
		}
	}
	return events
}
