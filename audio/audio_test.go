// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/TerminallyLazy/mpc2000xl/internal/audiotest"
)

type silentDecoder struct {
	frames int
}

func (d silentDecoder) Decode(r io.Reader) (Source, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return audiotest.NewSilentSource(44100, 2, d.frames), nil
}

var errDecodeFailed = errors.New("decode failed")

type failingDecoder struct{}

func (failingDecoder) Decode(io.Reader) (Source, error) {
	return nil, errDecodeFailed
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", silentDecoder{frames: 10})

	if _, ok := registry.Get("wav"); !ok {
		t.Fatal("Registry.Get() failed to retrieve registered decoder")
	}
	if _, ok := registry.Get("mp3"); ok {
		t.Error("Registry.Get() returned ok=true for non-existent format")
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", silentDecoder{})
	registry.Register("aiff", silentDecoder{})
	registry.Register("mp3", silentDecoder{})

	got := registry.Formats()
	want := []string{"aiff", "mp3", "wav"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistry_DecodeBuffer(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Register("wav", silentDecoder{frames: 300})
	registry.Register("bad", failingDecoder{})

	buf, err := registry.DecodeBuffer("wav", bytes.NewReader([]byte("x")))
	if err != nil {
		t.Fatalf("DecodeBuffer() error = %v", err)
	}
	if buf.Len() != 300 || buf.Channels() != 2 || buf.SampleRate != 44100 {
		t.Errorf("DecodeBuffer() shape = %d frames, %d ch, %d Hz", buf.Len(), buf.Channels(), buf.SampleRate)
	}

	if _, err := registry.DecodeBuffer("bad", bytes.NewReader(nil)); !errors.Is(err, errDecodeFailed) {
		t.Errorf("DecodeBuffer(bad) error = %v, want %v", err, errDecodeFailed)
	}
	if _, err := registry.DecodeBuffer("flac", bytes.NewReader(nil)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("DecodeBuffer(flac) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(string(rune('a'+i%26)), silentDecoder{})
		}()
		go func() {
			defer wg.Done()
			registry.Get("a")
		}()
	}
	wg.Wait()

	if got := len(registry.Formats()); got != 26 {
		t.Errorf("len(Formats()) = %d, want 26", got)
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register("wav", silentDecoder{})

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		registry.Get("wav")
	}
}
