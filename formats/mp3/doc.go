// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III audio using github.com/hajimehoshi/go-mp3.
//
// The decoder always produces interleaved stereo at the stream's native
// sample rate; mono files are duplicated to both channels by go-mp3.
// Samples are normalised to float32 in [-1, 1).
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.ReadAll(src)
package mp3
