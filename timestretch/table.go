// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"fmt"

	"github.com/TerminallyLazy/mpc2000xl/audio"
)

// Params are the framing parameters of an algorithm, in frames.
type Params struct {
	// Window is the analysis window, FFT size or grain length.
	Window int
	// Hop is the synthesis hop.
	Hop int
	// Search is the WSOLA offset tolerance, zero for families that do not search.
	Search int
}

type stretchFunc func(in *audio.Buffer, frames int, ratio float64) *audio.Buffer

// Algorithm is one entry of the time stretch menu.
type Algorithm struct {
	Name    string
	Quality Quality
	Family  Family
	// Index is the position in Engine.Algorithms.
	Index int
	// TierIndex selects the algorithm through Request.AlgorithmIndex.
	TierIndex int
	Params    Params

	stretch stretchFunc
}

// Every tier doubles the window and the hop divisor of the one below it,
// so the synthesis hop stays fixed while overlap grows.
func tierParams(q Quality) (wsolaP, vocoderP, grainP Params) {
	shift := uint(q)

	window := 1024 << shift
	wsolaP = Params{Window: window, Hop: window / (4 << shift), Search: window / 4}

	fftSize := 2048 << shift
	vocoderP = Params{Window: fftSize, Hop: fftSize / (4 << shift)}

	grain := 256 << shift
	grainP = Params{Window: grain, Hop: grain / (4 << shift)}
	return
}

func buildTable() []Algorithm {
	var table []Algorithm

	for _, q := range []Quality{Standard, Enhanced, Premium} {
		wp, vp, gp := tierParams(q)

		entries := []struct {
			family  Family
			params  Params
			stretch stretchFunc
		}{
			{WSOLA, wp, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return wsola(in, n, r, wp) }},
			{PhaseVocoder, vp, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return phaseVocoder(in, n, r, vp) }},
			{Granular, gp, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return granular(in, n, r, gp) }},
			{Resampling, Params{Window: wp.Window, Hop: wp.Hop}, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return resample(in, n, r, wp) }},
			{Spectral, vp, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return spectral(in, n, r, vp) }},
			{Hybrid, wp, func(in *audio.Buffer, n int, r float64) *audio.Buffer { return hybrid(in, n, r, wp, vp) }},
		}

		for i, e := range entries {
			table = append(table, Algorithm{
				Name:      fmt.Sprintf("%s %s", q, e.family),
				Quality:   q,
				Family:    e.family,
				Index:     len(table),
				TierIndex: i,
				Params:    e.params,
				stretch:   e.stretch,
			})
		}
	}

	return table
}
