// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/TerminallyLazy/mpc2000xl/utils"
)

// Resampler streams src at a different speed using cubic interpolation.
// It serves two jobs: sample rate conversion (NewResampler) and playback
// rate changes for pitched voices (NewRateResampler).
// Works on interleaved samples; preserves channel count.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames consumed per output frame
	channels int

	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	// real[i] is false when frames[i] is edge padding past either end
	real   [4]bool
	primed bool

	// fractional position between frames[1] and frames[2]
	pos float64

	srcBuf []float32
	eof    bool

	// one-pole low-pass used when the step skips source frames
	useFilter   bool
	filterInit  bool
	filterAlpha float32
	filterState []float32
}

// NewResampler converts src to dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	return newResampler(src, dstRate, float64(src.SampleRate())/float64(dstRate))
}

// NewRateResampler converts src to dstRate and additionally plays it
// rate times faster (rate 2 is one octave up, 0.5 one octave down).
func NewRateResampler(src Source, dstRate int, rate float64) (*Resampler, error) {
	if dstRate <= 0 || rate <= 0 || src.SampleRate() <= 0 {
		return nil, ErrInvalidRate
	}
	if src.Channels() <= 0 {
		return nil, ErrNoChannels
	}
	return newResampler(src, dstRate, float64(src.SampleRate())/float64(dstRate)*rate), nil
}

func newResampler(src Source, dstRate int, step float64) *Resampler {
	channels := src.Channels()

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		step:        step,
		channels:    channels,
		srcBuf:      make([]float32, max(channels, 1)),
		useFilter:   step > 1.0,
		filterState: make([]float32, max(channels, 0)),
	}
	if r.useFilter {
		r.filterAlpha = 0.5
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, max(channels, 0))
	}
	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

// Step reports how many source frames are consumed per output frame.
func (r *Resampler) Step() float64 { return r.step }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame reads one source frame into dst.
func (r *Resampler) readFrame(dst []float32) (bool, error) {
	if r.eof {
		return false, io.EOF
	}

	n, err := r.src.ReadSamples(r.srcBuf[:r.channels])
	got := n >= r.channels
	if got {
		copy(dst, r.srcBuf[:r.channels])
		if r.useFilter {
			if !r.filterInit {
				copy(r.filterState, dst)
				r.filterInit = true
			}
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
	}

	if err == io.EOF {
		r.eof = true
		return got, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w", err)
	}
	if !got {
		r.eof = true
	}
	return got, nil
}

// fill loads frames[i] from the source, holding the previous frame
// once the source is exhausted.
func (r *Resampler) fill(i int) error {
	ok, err := r.readFrame(r.frames[i])
	if err != nil && err != io.EOF {
		return err
	}
	r.real[i] = ok
	if !ok {
		copy(r.frames[i], r.frames[i-1])
	}
	return nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.frames[1])
	if err != nil && err != io.EOF {
		return err
	}
	if !ok {
		return io.EOF
	}
	r.real[1] = true
	copy(r.frames[0], r.frames[1])

	for i := 2; i < len(r.frames); i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}
	return nil
}

func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]
	return r.fill(3)
}

// ReadSamples produces interleaved samples at the destination rate.
// dst length must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if r.channels <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	written := 0
	want := len(dst) / r.channels

	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(
				r.frames[0][c], r.frames[1][c], r.frames[2][c], r.frames[3][c], alpha)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
