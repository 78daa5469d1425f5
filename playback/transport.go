// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"time"

	"github.com/ossrs/go-oryx-lib/logger"
)

// transport is the shared clock. It advances with rendered frames.
type transport struct {
	running bool
	frames  int64
}

func (t *transport) advance(frames int) {
	if t.running {
		t.frames += int64(frames)
	}
}

// StartTransport runs the clock from its current position.
func (e *Engine) StartTransport(ctx context.Context) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if !e.transport.running {
		logger.Tf(ctx, "transport start position=%v", e.positionLocked())
	}
	e.transport.running = true
}

// StopTransport stops the clock and rewinds it to zero.
func (e *Engine) StopTransport(ctx context.Context) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.transport.running {
		logger.Tf(ctx, "transport stop position=%v", e.positionLocked())
	}
	e.transport = transport{}
}

// Running reports whether the transport clock is running.
func (e *Engine) Running() bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.transport.running
}

// Position is the transport time rendered since the last start from zero.
func (e *Engine) Position() time.Duration {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.positionLocked()
}

func (e *Engine) positionLocked() time.Duration {
	return time.Duration(e.transport.frames) * time.Second / time.Duration(e.sampleRate)
}
