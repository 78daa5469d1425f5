// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"testing"
	"time"

	"github.com/TerminallyLazy/mpc2000xl/formats"
)

func TestTransport(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := NewEngine(nil)
	out := make([]float32, 2*4410)

	_, _ = e.ReadSamples(out)
	if e.Position() != 0 || e.Running() {
		t.Fatalf("stopped transport at %v running=%v", e.Position(), e.Running())
	}

	e.StartTransport(ctx)
	_, _ = e.ReadSamples(out)
	_, _ = e.ReadSamples(out)
	if e.Position() != 200*time.Millisecond {
		t.Errorf("Position() = %v, want 200ms", e.Position())
	}

	e.StartTransport(ctx)
	if !e.Running() || e.Position() != 200*time.Millisecond {
		t.Errorf("restart moved the clock to %v", e.Position())
	}

	e.StopTransport(ctx)
	if e.Running() || e.Position() != 0 {
		t.Errorf("after stop running=%v position=%v", e.Running(), e.Position())
	}
}

func TestRecorder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := NewEngine(nil)
	if err := e.Register("chord", constantBuffer(2, 500, 44100, 0.25)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	e.StartRecording(ctx)
	e.Play(ctx, "chord")
	_, _ = e.ReadSamples(make([]float32, 2*600))
	_, _ = e.ReadSamples(make([]float32, 2*400))

	rec, err := e.StopRecording(ctx)
	if err != nil {
		t.Fatalf("StopRecording() error = %v", err)
	}
	if rec.ID == "" {
		t.Error("recording has no id")
	}
	if want := 1000 * time.Second / 44100; (rec.Duration - want).Abs() > time.Microsecond {
		t.Errorf("Duration = %v, want %v", rec.Duration, want)
	}

	buf, err := formats.Decode(formats.NewRegistry(), rec.Blob)
	if err != nil {
		t.Fatalf("Decode(blob) error = %v", err)
	}
	if buf.Channels() != 2 || buf.Len() != 1000 || buf.SampleRate != 44100 {
		t.Fatalf("blob = %d ch, %d frames, %d Hz", buf.Channels(), buf.Len(), buf.SampleRate)
	}
	if d := buf.Data[1][10] - 0.25; d > 1e-3 || d < -1e-3 {
		t.Errorf("blob frame 10 = %v, want 0.25", buf.Data[1][10])
	}
	if buf.Data[0][700] != 0 {
		t.Errorf("blob frame 700 = %v, want silence", buf.Data[0][700])
	}

	again, err := e.StopRecording(ctx)
	if err != nil || again.ID != "" || again.Blob != nil {
		t.Errorf("second StopRecording() = %+v, %v; want empty", again, err)
	}
}

func TestRecorder_StopWithoutStart(t *testing.T) {
	t.Parallel()

	rec, err := NewEngine(nil).StopRecording(context.Background())
	if err != nil {
		t.Fatalf("StopRecording() error = %v", err)
	}
	if rec.ID != "" || len(rec.Blob) != 0 || rec.Duration != 0 {
		t.Errorf("StopRecording() = %+v, want empty", rec)
	}
}
