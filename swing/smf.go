// SPDX-License-Identifier: EPL-2.0

package swing

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"
)

const ticksPerQuarter = 960

// WriteSMF writes events as a single-track Standard MIDI File on channel 0
// at bpm. Events are ordered by time; events at the same time keep their
// order.
func WriteSMF(w io.Writer, events []Event, bpm float64) error {
	if !(bpm > 0) || math.IsInf(bpm, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidTempo, bpm)
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})

	ticks := smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))

	var last uint32
	for _, e := range sorted {
		at := ticks.Ticks(bpm, time.Duration(max(e.Time, 0)*float64(time.Millisecond)))
		track.Add(at-last, e.Message(0))
		last = at
	}
	track.Close(0)

	s := smf.New()
	s.TimeFormat = ticks
	if err := s.Add(track); err != nil {
		return fmt.Errorf("add track: %w", err)
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("write smf: %w", err)
	}
	return nil
}
