// SPDX-License-Identifier: EPL-2.0

package speaker

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/TerminallyLazy/mpc2000xl/audio"
)

var ErrNotReady = errors.New("speaker: audio device not ready")

// readyTimeout bounds the wait for the device to come up.
const readyTimeout = 5 * time.Second

// Speaker plays an audio.Source on the default output device.
type Speaker struct {
	ctx    *oto.Context
	player oto.Player
	src    audio.Source
}

// Open starts streaming src to the device. oto allows one context per
// process, so open a single Speaker and feed it a mixing source such as a
// playback.Engine.
func Open(ctx context.Context, src audio.Source) (*Speaker, error) {
	otoCtx, ready, err := oto.NewContext(src.SampleRate(), src.Channels(), oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}

	select {
	case <-ready:
	case <-time.After(readyTimeout):
		return nil, ErrNotReady
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	s := &Speaker{ctx: otoCtx, src: src}
	s.player = otoCtx.NewPlayer(&reader{ctx: ctx, src: src})
	s.player.Play()

	logger.Tf(ctx, "speaker open rate=%v channels=%v", src.SampleRate(), src.Channels())
	return s, nil
}

// Close stops playback. The source is not closed.
func (s *Speaker) Close() error {
	return s.player.Close()
}

// reader adapts a Source to the little-endian float32 byte stream oto
// pulls from.
type reader struct {
	ctx     context.Context
	src     audio.Source
	samples []float32
}

func (r *reader) Read(p []byte) (int, error) {
	want := len(p) / 4
	want -= want % r.src.Channels()
	if want == 0 {
		return 0, nil
	}
	if cap(r.samples) < want {
		r.samples = make([]float32, want)
	}
	buf := r.samples[:want]

	n, err := r.src.ReadSamples(buf)
	for i, v := range buf[:n] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(v))
	}
	if err != nil && !errors.Is(err, io.EOF) {
		logger.Wf(r.ctx, "speaker read err %+v", err)
	}
	if n == 0 && err != nil {
		return 0, io.EOF
	}
	return n * 4, nil
}
