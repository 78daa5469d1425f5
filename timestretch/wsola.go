// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"math"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/utils"
)

// wsola stretches by waveform similarity overlap-add: every frame is taken
// from within ±p.Search of its nominal input position, at the offset whose
// waveform best continues the previously placed frame.
func wsola(in *audio.Buffer, frames int, ratio float64, p Params) *audio.Buffer {
	mono, err := in.Mono()
	if err != nil {
		mono = in.Data[0]
	}

	s := &similaritySearch{
		mono:        mono,
		window:      p.Window,
		hop:         p.Hop,
		analysisHop: float64(p.Hop) * ratio / 100,
		tolerance:   p.Search,
		coarse:      max(1, p.Search/64),
		stride:      max(1, p.Window/1024),
	}
	return overlapAdd(in, frames, utils.Hann(p.Window), p.Hop, s.position)
}

// similaritySearch picks analysis positions for WSOLA. Scores are computed
// on the mono mix so every channel uses the same offset.
type similaritySearch struct {
	mono        []float32
	window      int
	hop         int
	analysisHop float64
	tolerance   int
	// coarse is the offset step of the first search pass; stride
	// decimates the correlation sum.
	coarse int
	stride int

	prev int
}

func (s *similaritySearch) position(k int) float64 {
	nominal := int(math.Round(float64(k) * s.analysisHop))
	if k <= 0 {
		s.prev = nominal
		return float64(nominal)
	}

	// the input that would naturally follow the previous frame
	target := s.prev + s.hop
	s.prev = nominal + s.bestOffset(target, nominal)
	return float64(s.prev)
}

func (s *similaritySearch) bestOffset(target, nominal int) int {
	best := 0
	score := s.similarity(target, nominal)

	try := func(d int) {
		// strictly better, so ties keep the smaller move
		if c := s.similarity(target, nominal+d); c > score+1e-9 {
			best, score = d, c
		}
	}

	for d := -s.tolerance; d <= s.tolerance; d += s.coarse {
		if d != 0 {
			try(d)
		}
	}

	center := best
	for d := center - s.coarse + 1; d < center+s.coarse; d++ {
		if d != center && d >= -s.tolerance && d <= s.tolerance {
			try(d)
		}
	}

	return best
}

// similarity is the normalised cross-correlation of the windows starting
// at a and b. Samples outside the input count as silence.
func (s *similaritySearch) similarity(a, b int) float64 {
	var xy, xx, yy float64
	for j := 0; j < s.window; j += s.stride {
		x := s.sample(a + j)
		y := s.sample(b + j)
		xy += x * y
		xx += x * x
		yy += y * y
	}
	if xx == 0 || yy == 0 {
		return 0
	}
	return xy / math.Sqrt(xx*yy)
}

func (s *similaritySearch) sample(i int) float64 {
	if i < 0 || i >= len(s.mono) {
		return 0
	}
	return float64(s.mono[i])
}

// resample is WSOLA framing without the search: analysis positions fall
// between input samples and are read by cubic interpolation.
func resample(in *audio.Buffer, frames int, ratio float64, p Params) *audio.Buffer {
	analysisHop := float64(p.Hop) * ratio / 100
	return overlapAdd(in, frames, utils.Hann(p.Window), p.Hop, func(k int) float64 {
		return float64(k) * analysisHop
	})
}
