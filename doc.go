// SPDX-License-Identifier: EPL-2.0

// Package mpc2000xl is the sample engine of an MPC2000XL style sampler.
//
// A Machine wires the engines together without package-level state:
//
//   - catalog lists the sound banks (factory banks or a bank server)
//   - bank fetches, decodes and budgets the samples of a bank
//   - playback plays registered samples into a master mix, runs the
//     transport clock and records the output
//   - timestretch changes sample duration without changing pitch
//   - swing retimes note events
//
// # Quick Start
//
//	cfg, _ := config.Load()
//	m, err := mpc2000xl.New(cfg)
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	if err := m.LoadBank(ctx, catalog.TR808); err != nil {
//	    return err
//	}
//	m.PlayAsset(ctx, "tr-808-kick")
//
// The Machine's Output is an audio.Source; hand it to speaker.Open to
// hear it, or read it directly to render offline.
//
// # Supported Formats
//
// Samples may be WAV, AIFF, MP3 or Ogg Vorbis; the format is sniffed from
// the payload, see package formats.
package mpc2000xl
