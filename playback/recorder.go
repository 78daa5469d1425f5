// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/formats/wav"
)

// Recording is a capture of the master mix.
type Recording struct {
	ID string
	// Blob is a 16-bit PCM WAV file.
	Blob     []byte
	Duration time.Duration
}

// recorder taps the master output. Samples are kept interleaved.
type recorder struct {
	recording bool
	data      []float32
}

func (r *recorder) write(samples []float32) {
	if r.recording {
		r.data = append(r.data, samples...)
	}
}

// StartRecording starts capturing the master mix, discarding any capture
// that was never stopped.
func (e *Engine) StartRecording(ctx context.Context) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.recorder == nil {
		e.recorder = &recorder{}
	}
	e.recorder.recording = true
	e.recorder.data = e.recorder.data[:0]
	logger.Tf(ctx, "recording start rate=%v channels=%v", e.sampleRate, e.channels)
}

// StopRecording ends the capture and returns it as WAV. Stopping when
// nothing is recording returns an empty Recording.
func (e *Engine) StopRecording(ctx context.Context) (Recording, error) {
	e.mtx.Lock()
	if e.recorder == nil || !e.recorder.recording {
		e.mtx.Unlock()
		return Recording{}, nil
	}
	data := e.recorder.data
	e.recorder.data = nil
	e.recorder.recording = false
	e.mtx.Unlock()

	buf := audio.NewBuffer(e.channels, len(data)/e.channels, e.sampleRate)
	for i, s := range data {
		buf.Data[i%e.channels][i/e.channels] = s
	}

	blob, err := wav.Bytes(buf)
	if err != nil {
		return Recording{}, fmt.Errorf("encode recording: %w", err)
	}

	rec := Recording{ID: uuid.NewString(), Blob: blob, Duration: buf.Duration()}
	logger.Tf(ctx, "recording stop id=%v duration=%v bytes=%v", rec.ID, rec.Duration, len(blob))
	return rec, nil
}
