// SPDX-License-Identifier: EPL-2.0

// Package timestretch changes the duration of decoded samples without
// changing their pitch.
//
// The Engine exposes a menu of eighteen algorithms: six families in each
// of three quality tiers. Families share two primitives. Time-domain
// overlap-add (WSOLA, granular, resampling and the framing-only vocoder)
// places windowed input frames at a fixed synthesis hop; the spectral
// family runs a phase vocoder on gonum's FFT. Tiers only change framing
// parameters:
//
//	tier      WSOLA window/hop/search   vocoder FFT/hop   grain/hop
//	Standard  1024/256/±256             2048/512          256/64
//	Enhanced  2048/256/±512             4096/512          512/64
//	Premium   4096/256/±1024            8192/512          1024/64
//
// A request picks a tier and an index within it, matching the machine's
// time stretch screen:
//
//	out, err := timestretch.NewEngine().Process(buf, timestretch.Request{
//	    Quality:        timestretch.Enhanced,
//	    Ratio:          150,
//	    AlgorithmIndex: 0,
//	})
//
// The output has floor(frames*100/ratio) frames, the channel count and the
// sample rate of the input.
package timestretch
