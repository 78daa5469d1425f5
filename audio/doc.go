// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM primitives shared by the sample engine.
//
// # Sources and buffers
//
// A Source streams interleaved float32 samples in [-1,1]. Decoders in the
// formats subpackages produce Sources; ReadAll drains one into a Buffer,
// the channel-separated representation the loader, the time-stretch
// engine and the playback engine work on:
//
//	buf, err := audio.ReadAll(src)
//	left := buf.Data[0]
//
// Buffer.Source turns a Buffer back into a stream, which is how playback
// voices are built.
//
// # Resampling and playback rate
//
// Resampler changes sample rate with Catmull-Rom interpolation.
// NewRateResampler also applies a playback rate, so a voice tuned up by
// an octave at 44.1 kHz into a 48 kHz mix is a single Resampler:
//
//	r, err := audio.NewRateResampler(buf.Source(), 48000, 2)
//
// # Channel mixing
//
// MonoMixer averages every frame down to one channel. Buffer.Mono uses it
// to build the guide signal for correlation searches.
//
// # Decoder registry
//
// Registry maps a format key to a Decoder. DecodeBuffer decodes a whole
// payload in one call:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	buf, err := reg.DecodeBuffer("wav", bytes.NewReader(raw))
//
// # Errors
//
// Sources return io.EOF when the stream is finished. Other errors are
// wrapped and can be matched with errors.Is against the sentinels in this
// package.
package audio
