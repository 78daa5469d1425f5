// SPDX-License-Identifier: EPL-2.0

// Package formats wires the codec packages into an audio.Registry and
// recognises payloads by their magic bytes.
package formats

import (
	"bytes"
	"fmt"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/formats/aiff"
	"github.com/TerminallyLazy/mpc2000xl/formats/mp3"
	"github.com/TerminallyLazy/mpc2000xl/formats/vorbis"
	"github.com/TerminallyLazy/mpc2000xl/formats/wav"
)

// Registry keys.
const (
	WAV  = "wav"
	AIFF = "aiff"
	MP3  = "mp3"
	OGG  = "ogg"
)

// NewRegistry returns a registry with every supported decoder registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(WAV, wav.Decoder{})
	r.Register(AIFF, aiff.Decoder{})
	r.Register(MP3, mp3.Decoder{})
	r.Register(OGG, vorbis.Decoder{})
	return r
}

// Sniff returns the registry key for data, or "" when the container is
// not recognised.
func Sniff(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return WAV
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("FORM")) &&
		(bytes.Equal(data[8:12], []byte("AIFF")) || bytes.Equal(data[8:12], []byte("AIFC"))):
		return AIFF
	case bytes.HasPrefix(data, []byte("OggS")):
		return OGG
	case bytes.HasPrefix(data, []byte("ID3")):
		return MP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// bare MPEG audio frame sync
		return MP3
	}
	return ""
}

// Decode sniffs data and decodes it with the matching decoder in r.
func Decode(r *audio.Registry, data []byte) (*audio.Buffer, error) {
	format := Sniff(data)
	if format == "" {
		return nil, audio.ErrUnknownFormat
	}

	buf, err := r.DecodeBuffer(format, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("decoding %s: %w", format, ErrEmptyAudio)
	}
	return buf, nil
}
