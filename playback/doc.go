// SPDX-License-Identifier: EPL-2.0

// Package playback plays decoded samples.
//
// An Engine keeps one resource per sample id. Play starts a voice that
// reads the resource through a rate resampler, so tune changes pitch and
// speed together the way a sampler does. The engine is an audio.Source:
// whatever reads it (the speaker package, a test, a bounce to disk) pulls
// the master mix of every active voice, and the same reads advance the
// transport clock and feed the recorder.
//
//	eng := playback.NewEngine(nil)
//	_ = eng.LoadSample("tr-808-kick", raw)
//	eng.Play(ctx, "tr-808-kick", playback.WithTune(-2), playback.WithVolume(80))
package playback
