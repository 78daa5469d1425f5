// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/TerminallyLazy/mpc2000xl/internal/audiotest"
)

func drain(t *testing.T, src Source, chunk int) []float32 {
	t.Helper()

	buf := make([]float32, chunk)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 1000), 8000)

	if r.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_SameRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 1, 500, func(sample, _ int) float32 {
		return float32(sample%50) / 50
	})
	out := drain(t, NewResampler(src, 8000), 64)

	if len(out) != 500 {
		t.Fatalf("len = %d, want 500", len(out))
	}
	for i, v := range out {
		want := float32(i%50) / 50
		if math.Abs(float64(v-want)) > 1e-6 {
			t.Fatalf("out[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestResampler_Lengths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		srcRate int
		dstRate int
		frames  int
		want    int
	}{
		{"downsample 44.1k to 8k", 44100, 8000, 44100, 8000},
		{"upsample 8k to 16k", 8000, 16000, 8000, 16000},
		{"upsample 22.05k to 44.1k", 22050, 44100, 22050, 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 440)
			out := drain(t, NewResampler(src, tt.dstRate), 1024)

			if diff := len(out) - tt.want; diff < -4 || diff > 4 {
				t.Errorf("len = %d, want %d±4", len(out), tt.want)
			}
		})
	}
}

func TestRateResampler_OctaveUpHalvesLength(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(44100, 2, 10000, 220)
	r, err := NewRateResampler(src, 44100, 2)
	if err != nil {
		t.Fatalf("NewRateResampler() error = %v", err)
	}
	if r.Step() != 2 {
		t.Errorf("Step() = %v, want 2", r.Step())
	}

	out := drain(t, r, 2048)
	frames := len(out) / 2
	if frames < 4998 || frames > 5002 {
		t.Errorf("frames = %d, want ≈5000", frames)
	}
}

func TestRateResampler_CombinesRateAndConversion(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(22050, 1, 100)
	r, err := NewRateResampler(src, 44100, 0.5)
	if err != nil {
		t.Fatalf("NewRateResampler() error = %v", err)
	}
	if r.Step() != 0.25 {
		t.Errorf("Step() = %v, want 0.25", r.Step())
	}
}

func TestRateResampler_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  Source
		dst  int
		rate float64
		want error
	}{
		{"zero rate", audiotest.NewSilentSource(8000, 1, 10), 8000, 0, ErrInvalidRate},
		{"negative dst", audiotest.NewSilentSource(8000, 1, 10), -1, 1, ErrInvalidRate},
		{"no channels", audiotest.NewSilentSource(8000, 0, 10), 8000, 1, ErrNoChannels},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := NewRateResampler(tt.src, tt.dst, tt.rate); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestResampler_StereoPreserved(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(44100, 2, 4410, func(_, channel int) float32 {
		if channel == 0 {
			return 0.5
		}
		return -0.5
	})
	out := drain(t, NewResampler(src, 22050), 512)

	for i := 0; i+1 < len(out); i += 2 {
		if math.Abs(float64(out[i]-0.5)) > 0.01 || math.Abs(float64(out[i+1]+0.5)) > 0.01 {
			t.Fatalf("frame %d = (%v, %v), channels mixed", i/2, out[i], out[i+1])
		}
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}

func TestResampler_VeryShortSource(t *testing.T) {
	t.Parallel()

	out := drain(t, NewResampler(audiotest.NewConstantSource(8000, 1, 1, 0.25), 8000), 16)
	if len(out) != 1 || out[0] != 0.25 {
		t.Errorf("out = %v, want [0.25]", out)
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 8000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_Downsample(b *testing.B) {
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 8000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
