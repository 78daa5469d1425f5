// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/utils"
)

// spectral is a full phase vocoder. Each bin keeps its magnitude and has
// its phase advanced by the instantaneous frequency measured between
// consecutive analysis frames, scaled to the synthesis hop.
func spectral(in *audio.Buffer, frames int, ratio float64, p Params) *audio.Buffer {
	n := p.Window
	hop := p.Hop
	analysisHop := float64(hop) * ratio / 100
	window := utils.Hann(n)
	fft := fourier.NewFFT(n)
	bins := n/2 + 1
	first := -((n - 1) / hop)

	acc := make([][]float64, in.Channels())
	weight := make([]float64, frames)

	// synthesis windows overlap identically for every channel
	for k := first; k*hop < frames; k++ {
		for j := range n {
			if t := k*hop + j; t >= 0 && t < frames {
				weight[t] += window[j] * window[j]
			}
		}
	}

	frame := make([]float64, n)
	out := make([]float64, n)
	var coeff []complex128

	for c, ch := range in.Data {
		acc[c] = make([]float64, frames)
		lastPhase := make([]float64, bins)
		phase := make([]float64, bins)
		prevStart := 0

		for k := first; k*hop < frames; k++ {
			start := int(math.Round(float64(k) * analysisHop))
			for j := range n {
				frame[j] = 0
				if x := start + j; x >= 0 && x < len(ch) {
					frame[j] = float64(ch[x]) * window[j]
				}
			}

			coeff = fft.Coefficients(coeff, frame)
			advance := float64(start - prevStart)

			for b := range bins {
				mag, ph := cmplx.Abs(coeff[b]), cmplx.Phase(coeff[b])
				if k == first {
					phase[b] = ph
				} else {
					omega := 2 * math.Pi * float64(b) / float64(n)
					deviation := wrapPhase(ph - lastPhase[b] - omega*advance)
					phase[b] += (omega + deviation/advance) * float64(hop)
				}
				lastPhase[b] = ph
				coeff[b] = cmplx.Rect(mag, phase[b])
			}
			prevStart = start

			out = fft.Sequence(out, coeff)
			for j := range n {
				t := k*hop + j
				if t < 0 {
					continue
				}
				if t >= frames {
					break
				}
				// gonum leaves the inverse transform unscaled
				acc[c][t] += out[j] / float64(n) * window[j]
			}
		}
	}

	return normalize(acc, weight, in.SampleRate)
}

// wrapPhase maps a phase into (-pi, pi].
func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x <= 0 {
		x += 2 * math.Pi
	}
	return x - math.Pi
}
