// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"fmt"
	"math"

	"github.com/TerminallyLazy/mpc2000xl/audio"
)

// Ratio bounds in percent of the original duration's speed.
const (
	MinRatio = 50
	MaxRatio = 200
)

// Request selects an algorithm and a ratio. Ratio 200 halves the duration,
// 50 doubles it.
type Request struct {
	Quality        Quality
	Ratio          float64
	AlgorithmIndex int
}

// Engine holds the algorithm menu. It keeps no per-call state and is safe
// for concurrent use.
type Engine struct {
	algorithms []Algorithm
	tiers      map[Quality][]int
}

func NewEngine() *Engine {
	e := &Engine{
		algorithms: buildTable(),
		tiers:      make(map[Quality][]int),
	}
	for i, a := range e.algorithms {
		e.tiers[a.Quality] = append(e.tiers[a.Quality], i)
	}
	return e
}

// Algorithms lists the menu, grouped by tier.
func (e *Engine) Algorithms() []Algorithm {
	return append([]Algorithm(nil), e.algorithms...)
}

// Lookup returns the index-th algorithm of the quality tier.
func (e *Engine) Lookup(q Quality, index int) (Algorithm, error) {
	tier, ok := e.tiers[q]
	if !ok {
		return Algorithm{}, fmt.Errorf("%w: unknown quality %v", ErrInvalidAlgorithmIndex, q)
	}
	if index < 0 || index >= len(tier) {
		return Algorithm{}, fmt.Errorf("%w: %d not in [0,%d) for %v", ErrInvalidAlgorithmIndex, index, len(tier), q)
	}
	return e.algorithms[tier[index]], nil
}

// Process returns a new buffer holding buf stretched per req. Requests are
// validated before any processing; buf is never modified.
func (e *Engine) Process(buf *audio.Buffer, req Request) (*audio.Buffer, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}
	if math.IsNaN(req.Ratio) || req.Ratio < MinRatio || req.Ratio > MaxRatio {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidRatio, req.Ratio)
	}

	alg, err := e.Lookup(req.Quality, req.AlgorithmIndex)
	if err != nil {
		return nil, err
	}

	frames := OutputFrames(buf.Len(), req.Ratio)
	if buf.Channels() == 0 || frames == 0 {
		return audio.NewBuffer(buf.Channels(), frames, buf.SampleRate), nil
	}

	return alg.stretch(buf, frames, req.Ratio), nil
}
