// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"math"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/utils"
)

// positioner returns the analysis start, in input frames, of synthesis
// frame k. It is called with increasing k, starting below zero.
type positioner func(k int) float64

// overlapAdd writes frames output frames by placing window-weighted
// analysis frames hop apart. Each output sample is divided by the window
// weight that landed on it from inside the input, so the result keeps the
// input level at any overlap and at the buffer edges.
func overlapAdd(in *audio.Buffer, frames int, window []float64, hop int, pos positioner) *audio.Buffer {
	channels := in.Channels()
	length := in.Len()
	n := len(window)

	acc := make([][]float64, channels)
	for c := range acc {
		acc[c] = make([]float64, frames)
	}
	weight := make([]float64, frames)

	// start early enough that sample 0 sees every overlapping frame
	for k := -((n - 1) / hop); k*hop < frames; k++ {
		start := k * hop
		p := pos(k)
		whole := p == math.Trunc(p)

		for j := range n {
			t := start + j
			if t < 0 {
				continue
			}
			if t >= frames {
				break
			}

			x := p + float64(j)
			if x < 0 || x > float64(length-1) {
				continue
			}

			w := window[j]
			weight[t] += w
			for c := range channels {
				var v float32
				if whole {
					v = in.Data[c][int(x)]
				} else {
					v = interpolate(in.Data[c], x)
				}
				acc[c][t] += w * float64(v)
			}
		}
	}

	return normalize(acc, weight, in.SampleRate)
}

func normalize(acc [][]float64, weight []float64, sampleRate int) *audio.Buffer {
	out := audio.NewBuffer(len(acc), len(weight), sampleRate)
	for c := range acc {
		for i, w := range weight {
			if w > 1e-9 {
				out.Data[c][i] = float32(acc[c][i] / w)
			}
		}
	}
	return out
}

// interpolate reads ch at a fractional position with Catmull-Rom
// interpolation, holding the edge samples.
func interpolate(ch []float32, x float64) float32 {
	i := int(math.Floor(x))
	frac := float32(x - float64(i))
	last := len(ch) - 1

	at := func(k int) float32 {
		return ch[min(max(k, 0), last)]
	}
	return utils.CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), frac)
}

// OutputFrames returns the stretched length of a buffer of frames input
// frames at ratio percent.
func OutputFrames(frames int, ratio float64) int {
	return int(math.Floor(float64(frames) * 100 / ratio))
}
