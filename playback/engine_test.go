// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/formats"
	"github.com/TerminallyLazy/mpc2000xl/internal/audiotest"
)

func constantBuffer(channels, frames, sampleRate int, value float32) *audio.Buffer {
	buf := audio.NewBuffer(channels, frames, sampleRate)
	for c := range buf.Data {
		for i := range buf.Data[c] {
			buf.Data[c][i] = value
		}
	}
	return buf
}

// soundingFrames counts frames with any non-silent channel.
func soundingFrames(samples []float32, channels int) int {
	n := 0
	for i := 0; i+channels <= len(samples); i += channels {
		for c := range channels {
			if math.Abs(float64(samples[i+c])) > 1e-6 {
				n++
				break
			}
		}
	}
	return n
}

func TestEngine_RegisterAndSample(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	if err := e.Register("kick", constantBuffer(2, 22050, 44100, 0.1)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	info, ok := e.Sample("kick")
	if !ok {
		t.Fatal("Sample(kick) not found")
	}
	if info.SampleRate != 44100 || info.Channels != 2 || info.Frames != 22050 {
		t.Errorf("Sample() = %+v", info)
	}
	if info.Duration != 500*time.Millisecond {
		t.Errorf("Duration = %v, want 500ms", info.Duration)
	}
	if info.Rate != 1 || info.GainDB != 0 {
		t.Errorf("defaults rate=%v gain=%v, want 1 and 0", info.Rate, info.GainDB)
	}

	if _, ok := e.Sample("snare"); ok {
		t.Error("Sample(snare) found, want not found")
	}
}

func TestEngine_RegisterInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		buf  *audio.Buffer
		want error
	}{
		{"empty id", "", constantBuffer(1, 10, 8000, 0), ErrEmptyID},
		{"nil buffer", "x", nil, ErrNilBuffer},
		{"no channels", "x", &audio.Buffer{SampleRate: 8000}, audio.ErrNoChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if err := NewEngine(nil).Register(tt.id, tt.buf); !errors.Is(err, tt.want) {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEngine_LoadSample(t *testing.T) {
	t.Parallel()

	e := NewEngine(formats.NewRegistry())
	if err := e.LoadSample("tone", audiotest.SineWAV(22050, 2205, 440)); err != nil {
		t.Fatalf("LoadSample() error = %v", err)
	}
	info, ok := e.Sample("tone")
	if !ok || info.SampleRate != 22050 || info.Channels != 1 || info.Frames != 2205 {
		t.Errorf("Sample(tone) = %+v, %v", info, ok)
	}

	if err := e.LoadSample("junk", []byte("not audio at all")); !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("LoadSample(junk) error = %v, want ErrUnknownFormat", err)
	}
	if _, ok := e.Sample("junk"); ok {
		t.Error("failed load registered a sample")
	}
}

func TestEngine_PlayRendersVoice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := NewEngine(nil)
	if err := e.Register("hat", constantBuffer(1, 100, 44100, 0.5)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.Play(ctx, "hat")
	if e.ActiveVoices() != 1 {
		t.Fatalf("ActiveVoices() = %d, want 1", e.ActiveVoices())
	}

	out := make([]float32, 2*200)
	n, err := e.ReadSamples(out)
	if err != nil || n != len(out) {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}
	for i := range 100 {
		if math.Abs(float64(out[2*i]-0.5)) > 1e-5 || math.Abs(float64(out[2*i+1]-0.5)) > 1e-5 {
			t.Fatalf("frame %d = (%v, %v), want 0.5 on both channels", i, out[2*i], out[2*i+1])
		}
	}
	if got := soundingFrames(out, 2); got != 100 {
		t.Errorf("sounding frames = %d, want 100", got)
	}
	if e.ActiveVoices() != 0 {
		t.Errorf("ActiveVoices() after the sample ended = %d, want 0", e.ActiveVoices())
	}
}

func TestEngine_PlayOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []PlayOption
		level     float32
		minFrames int
		maxFrames int
	}{
		{"defaults", nil, 0.5, 400, 400},
		{"half volume", []PlayOption{WithVolume(50)}, 0.25, 400, 400},
		{"muted", []PlayOption{WithVolume(0)}, 0, 0, 0},
		{"octave up", []PlayOption{WithTune(12)}, 0.5, 195, 205},
		{"octave down", []PlayOption{WithTune(-12)}, 0.5, 790, 810},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine(nil, WithChannels(1), WithSampleRate(8000))
			if err := e.Register("pad", constantBuffer(1, 400, 8000, 0.5)); err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			e.Play(context.Background(), "pad", tt.opts...)

			out := make([]float32, 1000)
			if _, err := e.ReadSamples(out); err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}

			got := soundingFrames(out, 1)
			if got < tt.minFrames || got > tt.maxFrames {
				t.Errorf("sounding frames = %d, want [%d,%d]", got, tt.minFrames, tt.maxFrames)
			}
			if got > 0 && math.Abs(float64(out[got/2]-tt.level)) > 1e-3 {
				t.Errorf("level = %v, want %v", out[got/2], tt.level)
			}
		})
	}
}

func TestEngine_PlayOptionsPersist(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	if err := e.Register("bass", constantBuffer(1, 10, 44100, 0.1)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.Play(context.Background(), "bass", WithTune(12), WithVolume(10))
	e.Play(context.Background(), "bass")

	info, _ := e.Sample("bass")
	if math.Abs(info.Rate-2) > 1e-12 || math.Abs(info.GainDB+20) > 1e-12 {
		t.Errorf("Sample() rate=%v gain=%v, want 2 and -20", info.Rate, info.GainDB)
	}
}

func TestEngine_PlayUnknownIsNoop(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	e.Play(context.Background(), "missing", WithTune(3))
	if e.ActiveVoices() != 0 {
		t.Errorf("ActiveVoices() = %d, want 0", e.ActiveVoices())
	}
}

func TestEngine_MonoMasterAveragesStereo(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil, WithChannels(1))
	buf := audio.NewBuffer(2, 10, 44100)
	for i := range 10 {
		buf.Data[0][i] = 0.2
		buf.Data[1][i] = 0.6
	}
	if err := e.Register("wide", buf); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	e.Play(context.Background(), "wide")

	out := make([]float32, 10)
	if _, err := e.ReadSamples(out); err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if math.Abs(float64(out[0]-0.4)) > 1e-5 {
		t.Errorf("out[0] = %v, want 0.4", out[0])
	}
}

func TestEngine_ReplaceDisposesVoices(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	if err := e.Register("snare", constantBuffer(1, 44100, 44100, 0.3)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	e.Play(context.Background(), "snare")
	e.Play(context.Background(), "snare")

	if err := e.Register("snare", constantBuffer(1, 100, 44100, 0.1)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if e.ActiveVoices() != 0 {
		t.Errorf("ActiveVoices() after replace = %d, want 0", e.ActiveVoices())
	}
	if info, _ := e.Sample("snare"); info.Frames != 100 {
		t.Errorf("Frames = %d, want the replacement's 100", info.Frames)
	}
}

func TestEngine_DisposeIdempotent(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	for _, id := range []string{"a", "b"} {
		if err := e.Register(id, constantBuffer(1, 44100, 44100, 0.3)); err != nil {
			t.Fatalf("Register(%v) error = %v", id, err)
		}
		e.Play(context.Background(), id)
	}

	e.Dispose("a")
	e.Dispose("a")
	e.Dispose("never")
	if _, ok := e.Sample("a"); ok {
		t.Error("Sample(a) found after Dispose")
	}
	if e.ActiveVoices() != 1 {
		t.Errorf("ActiveVoices() = %d, want 1", e.ActiveVoices())
	}

	e.DisposeAll()
	e.DisposeAll()
	if _, ok := e.Sample("b"); ok || e.ActiveVoices() != 0 {
		t.Error("DisposeAll() left samples or voices behind")
	}
}

func TestEngine_ReadSamplesIdle(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	out := []float32{1, 1, 1, 1, 1}

	n, err := e.ReadSamples(out)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}
	for i := range 4 {
		if out[i] != 0 {
			t.Errorf("out[%d] = %v, want silence", i, out[i])
		}
	}

	if _, err := e.ReadSamples(make([]float32, 1)); !errors.Is(err, audio.ErrInvalidDstSize) {
		t.Errorf("ReadSamples(1) error = %v, want ErrInvalidDstSize", err)
	}
}

func TestEngine_ConcurrentPlayAndRender(t *testing.T) {
	t.Parallel()

	e := NewEngine(nil)
	if err := e.Register("tick", constantBuffer(1, 64, 44100, 0.01)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 200 {
			e.Play(context.Background(), "tick", WithVolume(90))
		}
	}()
	go func() {
		defer wg.Done()
		out := make([]float32, 256)
		for range 200 {
			if _, err := e.ReadSamples(out); err != nil {
				t.Errorf("ReadSamples() error = %v", err)
				return
			}
		}
	}()
	wg.Wait()

	out := make([]float32, 2*128)
	_, _ = e.ReadSamples(out)
	if e.ActiveVoices() != 0 {
		t.Errorf("ActiveVoices() = %d after draining, want 0", e.ActiveVoices())
	}
}

func TestTuneRateAndVolumeDB(t *testing.T) {
	t.Parallel()

	rates := []struct{ semitones, want float64 }{
		{0, 1},
		{12, 2},
		{-12, 0.5},
		{7, 1.4983070768766815},
	}
	for _, tt := range rates {
		if got := TuneRate(tt.semitones); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("TuneRate(%v) = %v, want %v", tt.semitones, got, tt.want)
		}
	}

	volumes := []struct{ volume, want float64 }{
		{100, 0},
		{10, -20},
		{150, 0},
	}
	for _, tt := range volumes {
		if got := VolumeDB(tt.volume); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("VolumeDB(%v) = %v, want %v", tt.volume, got, tt.want)
		}
	}
	for _, v := range []float64{0, -5} {
		if got := VolumeDB(v); !math.IsInf(got, -1) {
			t.Errorf("VolumeDB(%v) = %v, want -Inf", v, got)
		}
	}
	if dbToGain(math.Inf(-1)) != 0 {
		t.Error("dbToGain(-Inf) != 0")
	}
}

func BenchmarkEngine_Render(b *testing.B) {
	e := NewEngine(nil)
	_ = e.Register("loop", constantBuffer(2, 44100*60, 44100, 0.1))
	for range 8 {
		e.Play(context.Background(), "loop", WithTune(3))
	}
	out := make([]float32, 2*512)

	b.ReportAllocs()
	for range b.N {
		_, _ = e.ReadSamples(out)
	}
}
