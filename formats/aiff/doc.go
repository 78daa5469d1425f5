// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files, the
// format most vintage sample libraries were archived in.
//
// Integer PCM at 8, 16, 24 and 32 bits is supported with any number of
// channels and any sample rate. AIFF samples are big-endian and signed at
// every width; the decoder normalises them to float32 in [-1, 1).
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF stream
//	}
//
// Readers that do not implement io.Seeker are read fully into memory
// first, since go-audio needs random access to the chunk table.
package aiff
