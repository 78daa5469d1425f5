// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/formats"
)

// Info describes a registered sample.
type Info struct {
	SampleRate int
	Channels   int
	Frames     int
	Duration   time.Duration
	Rate       float64
	GainDB     float64
}

type resource struct {
	buf    *audio.Buffer
	rate   float64
	gainDB float64
}

type voice struct {
	id       string
	src      audio.Source
	gain     float32
	channels int
	scratch  []float32
}

// Engine owns the playable samples and renders them into one master mix.
// It is an audio.Source: read it from an output device or a test to drive
// the voices, the transport clock and the recorder.
type Engine struct {
	decoders   *audio.Registry
	sampleRate int
	channels   int

	mtx       sync.Mutex
	resources map[string]*resource
	voices    []*voice
	transport transport
	recorder  *recorder
}

var _ audio.Source = (*Engine)(nil)

// NewEngine creates an idle engine. A nil registry uses the default
// decoders.
func NewEngine(decoders *audio.Registry, opts ...Option) *Engine {
	if decoders == nil {
		decoders = formats.NewRegistry()
	}
	e := &Engine{
		decoders:   decoders,
		sampleRate: DefaultSampleRate,
		channels:   DefaultChannels,
		resources:  make(map[string]*resource),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadSample decodes raw audio of any sniffable format and registers it
// under id.
func (e *Engine) LoadSample(id string, raw []byte) error {
	buf, err := formats.Decode(e.decoders, raw)
	if err != nil {
		return fmt.Errorf("load sample %v: %w", id, err)
	}
	return e.Register(id, buf)
}

// Register makes buf playable under id. An existing sample under id is
// disposed first, stopping its voices.
func (e *Engine) Register(id string, buf *audio.Buffer) error {
	if id == "" {
		return ErrEmptyID
	}
	if buf == nil {
		return ErrNilBuffer
	}
	if buf.Channels() == 0 {
		return fmt.Errorf("register %v: %w", id, audio.ErrNoChannels)
	}

	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.disposeLocked(id)
	e.resources[id] = &resource{buf: buf, rate: 1}
	return nil
}

// Play starts a new voice of id. Unknown ids are ignored and failures are
// logged, never returned.
func (e *Engine) Play(ctx context.Context, id string, opts ...PlayOption) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	res, ok := e.resources[id]
	if !ok {
		return
	}
	for _, opt := range opts {
		opt(res)
	}

	src, err := audio.NewRateResampler(res.buf.Source(), e.sampleRate, res.rate)
	if err != nil {
		logger.Wf(ctx, "play sample=%v rate=%v err %+v", id, res.rate, err)
		return
	}

	e.voices = append(e.voices, &voice{
		id:       id,
		src:      src,
		gain:     dbToGain(res.gainDB),
		channels: src.Channels(),
	})
}

// Dispose removes id and stops its voices. Unknown ids are ignored.
func (e *Engine) Dispose(id string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.disposeLocked(id)
}

// DisposeAll removes every sample and stops all voices.
func (e *Engine) DisposeAll() {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	for _, v := range e.voices {
		_ = v.src.Close()
	}
	e.voices = nil
	clear(e.resources)
}

func (e *Engine) disposeLocked(id string) {
	if _, ok := e.resources[id]; !ok {
		return
	}
	delete(e.resources, id)

	kept := e.voices[:0]
	for _, v := range e.voices {
		if v.id == id {
			_ = v.src.Close()
			continue
		}
		kept = append(kept, v)
	}
	clear(e.voices[len(kept):])
	e.voices = kept
}

// Sample reports the properties of id.
func (e *Engine) Sample(id string) (Info, bool) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	res, ok := e.resources[id]
	if !ok {
		return Info{}, false
	}
	return Info{
		SampleRate: res.buf.SampleRate,
		Channels:   res.buf.Channels(),
		Frames:     res.buf.Len(),
		Duration:   res.buf.Duration(),
		Rate:       res.rate,
		GainDB:     res.gainDB,
	}, true
}

// ActiveVoices returns the number of voices still sounding.
func (e *Engine) ActiveVoices() int {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return len(e.voices)
}

func (e *Engine) SampleRate() int { return e.sampleRate }
func (e *Engine) Channels() int   { return e.channels }
func (e *Engine) BufSize() int    { return 4096 }

// Close stops every voice and drops all samples.
func (e *Engine) Close() error {
	e.DisposeAll()
	return nil
}

// ReadSamples renders the next whole frames of the master mix into dst.
// It never reports io.EOF; an idle engine renders silence.
func (e *Engine) ReadSamples(dst []float32) (int, error) {
	frames := len(dst) / e.channels
	if len(dst) > 0 && frames == 0 {
		return 0, audio.ErrInvalidDstSize
	}
	n := frames * e.channels
	out := dst[:n]
	clear(out)

	e.mtx.Lock()
	defer e.mtx.Unlock()

	kept := e.voices[:0]
	for _, v := range e.voices {
		if e.mix(v, out, frames) {
			kept = append(kept, v)
		} else {
			_ = v.src.Close()
		}
	}
	clear(e.voices[len(kept):])
	e.voices = kept

	e.transport.advance(frames)
	if e.recorder != nil {
		e.recorder.write(out)
	}
	return n, nil
}

// mix adds up to frames frames of v into out and reports whether v has
// more to play.
func (e *Engine) mix(v *voice, out []float32, frames int) bool {
	want := frames * v.channels
	if cap(v.scratch) < want {
		v.scratch = make([]float32, want)
	}
	buf := v.scratch[:want]

	got := 0
	for got < want {
		n, err := v.src.ReadSamples(buf[got:])
		got += n
		if err != nil {
			e.add(v, out, buf[:got])
			return false
		}
		if n == 0 {
			break
		}
	}
	e.add(v, out, buf[:got])
	return true
}

func (e *Engine) add(v *voice, out, in []float32) {
	if v.gain == 0 {
		return
	}
	for i := range len(in) / v.channels {
		frame := in[i*v.channels : (i+1)*v.channels]
		if e.channels == 1 {
			var sum float32
			for _, s := range frame {
				sum += s
			}
			out[i] += v.gain * sum / float32(v.channels)
			continue
		}
		// mono voices go to every output; extra voice channels are dropped
		for c := range e.channels {
			out[i*e.channels+c] += v.gain * frame[min(c, v.channels-1)]
		}
	}
}
