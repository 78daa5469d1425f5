// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"math"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/utils"
)

// phaseVocoder is the framing-only vocoder: Hann frames of p.Window are
// re-spaced to the synthesis hop and emitted unchanged.
func phaseVocoder(in *audio.Buffer, frames int, ratio float64, p Params) *audio.Buffer {
	return overlapAdd(in, frames, utils.Hann(p.Window), p.Hop, func(k int) float64 {
		return math.Floor(float64(k*p.Hop) * ratio / 100)
	})
}

// granular scatters short raised-cosine grains. The input advances by a
// whole number of frames per grain.
func granular(in *audio.Buffer, frames int, ratio float64, p Params) *audio.Buffer {
	step := math.Floor(float64(p.Hop) * ratio / 100)
	return overlapAdd(in, frames, utils.RaisedCosine(p.Window), p.Hop, func(k int) float64 {
		return float64(k) * step
	})
}

// hybrid crossfades linearly from the WSOLA rendering to the vocoder
// rendering over the output.
func hybrid(in *audio.Buffer, frames int, ratio float64, a, b Params) *audio.Buffer {
	from := wsola(in, frames, ratio, a)
	to := phaseVocoder(in, frames, ratio, b)

	out := audio.NewBuffer(in.Channels(), frames, in.SampleRate)
	for c := range out.Data {
		for i := range frames {
			x := float32(i) / float32(frames)
			out.Data[c][i] = from.Data[c][i]*(1-x) + to.Data[c][i]*x
		}
	}
	return out
}
