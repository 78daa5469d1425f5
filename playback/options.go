// SPDX-License-Identifier: EPL-2.0

package playback

import "math"

const (
	DefaultSampleRate = 44100
	DefaultChannels   = 2
)

// Option configures an Engine.
type Option func(*Engine)

// WithSampleRate sets the master output rate.
func WithSampleRate(rate int) Option {
	return func(e *Engine) {
		if rate > 0 {
			e.sampleRate = rate
		}
	}
}

// WithChannels sets the master channel count.
func WithChannels(channels int) Option {
	return func(e *Engine) {
		if channels > 0 {
			e.channels = channels
		}
	}
}

// PlayOption adjusts a sample before it is triggered. Adjustments stay on
// the sample for later plays.
type PlayOption func(*resource)

// WithTune pitches the sample by semitones.
func WithTune(semitones float64) PlayOption {
	return func(r *resource) {
		r.rate = TuneRate(semitones)
	}
}

// WithVolume sets the sample level on the 0..100 pad scale.
func WithVolume(volume float64) PlayOption {
	return func(r *resource) {
		r.gainDB = VolumeDB(volume)
	}
}

// TuneRate is the playback rate for a pitch change in semitones.
func TuneRate(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// VolumeDB converts a 0..100 volume to decibels. Zero is -Inf, silence.
func VolumeDB(volume float64) float64 {
	volume = min(max(volume, 0), 100)
	if volume == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(volume/100)
}

func dbToGain(db float64) float32 {
	if math.IsInf(db, -1) {
		return 0
	}
	return float32(math.Pow(10, db/20))
}
