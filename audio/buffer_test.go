// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/TerminallyLazy/mpc2000xl/internal/audiotest"
)

func TestReadAll_Stereo(t *testing.T) {
	t.Parallel()

	src := audiotest.NewMockSource(8000, 2, 5000, func(sample, channel int) float32 {
		if channel == 0 {
			return float32(sample) / 10000
		}
		return -float32(sample) / 10000
	})

	buf, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	if buf.Channels() != 2 {
		t.Fatalf("Channels() = %d, want 2", buf.Channels())
	}
	if buf.Len() != 5000 {
		t.Fatalf("Len() = %d, want 5000", buf.Len())
	}
	for _, i := range []int{0, 1, 4095, 4096, 4999} {
		if buf.Data[0][i] != float32(i)/10000 || buf.Data[1][i] != -float32(i)/10000 {
			t.Errorf("frame %d = (%v, %v), channels not de-interleaved", i, buf.Data[0][i], buf.Data[1][i])
		}
	}
}

func TestReadAll_NoChannels(t *testing.T) {
	t.Parallel()

	_, err := ReadAll(audiotest.NewSilentSource(8000, 0, 10))
	if !errors.Is(err, ErrNoChannels) {
		t.Errorf("ReadAll() error = %v, want ErrNoChannels", err)
	}
}

func TestBuffer_SourceRoundTrip(t *testing.T) {
	t.Parallel()

	in := NewBuffer(3, 1000, 22050)
	for c := range 3 {
		for i := range 1000 {
			in.Data[c][i] = float32(c+1) * float32(i) / 1000
		}
	}

	out, err := ReadAll(in.Source())
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if out.SampleRate != 22050 || out.Len() != 1000 || out.Channels() != 3 {
		t.Fatalf("shape = %d Hz, %d frames, %d ch", out.SampleRate, out.Len(), out.Channels())
	}
	for c := range 3 {
		for i := range 1000 {
			if out.Data[c][i] != in.Data[c][i] {
				t.Fatalf("Data[%d][%d] = %v, want %v", c, i, out.Data[c][i], in.Data[c][i])
			}
		}
	}
}

func TestBuffer_SourceInvalidDst(t *testing.T) {
	t.Parallel()

	src := NewBuffer(2, 10, 8000).Source()
	if _, err := src.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestBuffer_Mono(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(2, 6000, 8000)
	for i := range 6000 {
		buf.Data[0][i] = 0.2
		buf.Data[1][i] = 0.6
	}

	mono, err := buf.Mono()
	if err != nil {
		t.Fatalf("Mono() error = %v", err)
	}
	if len(mono) != 6000 {
		t.Fatalf("len(Mono()) = %d, want 6000", len(mono))
	}
	for i, v := range mono {
		if math.Abs(float64(v-0.4)) > 1e-6 {
			t.Fatalf("mono[%d] = %v, want 0.4", i, v)
		}
	}
}

func TestBuffer_DurationAndClone(t *testing.T) {
	t.Parallel()

	buf := NewBuffer(1, 44100, 44100)
	if buf.Duration() != time.Second {
		t.Errorf("Duration() = %v, want 1s", buf.Duration())
	}

	clone := buf.Clone()
	clone.Data[0][0] = 1
	if buf.Data[0][0] != 0 {
		t.Error("Clone() shares memory with the original")
	}

	empty := &Buffer{}
	if empty.Len() != 0 || empty.Duration() != 0 {
		t.Errorf("empty buffer Len=%d Duration=%v", empty.Len(), empty.Duration())
	}
}

func TestBufferSource_EOF(t *testing.T) {
	t.Parallel()

	src := NewBuffer(1, 4, 8000).Source()
	dst := make([]float32, 8)

	n, err := src.ReadSamples(dst)
	if n != 4 || err != io.EOF {
		t.Errorf("first ReadSamples() = %d, %v; want 4, EOF", n, err)
	}
	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("second ReadSamples() = %d, %v; want 0, EOF", n, err)
	}
}
