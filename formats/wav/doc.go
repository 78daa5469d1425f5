// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files on top of github.com/go-audio/wav.
//
// # Decoding
//
// The Decoder accepts integer PCM at 8, 16, 24 and 32 bits with any number
// of channels. Samples are normalised to float32 in [-1, 1):
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
// Readers that cannot seek are buffered in memory first, since the RIFF
// parser has to skip chunks it does not know.
//
// # Encoding
//
// Encode writes an audio.Buffer as 16-bit PCM to any io.WriteSeeker.
// Bytes does the same into memory, which is how recordings are rendered:
//
//	blob, err := wav.Bytes(buf)
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrOnlyPCMSupported: compressed or floating point payloads
//   - ErrUnsupportedBitDepth: bit depths other than 8, 16, 24 or 32
package wav
