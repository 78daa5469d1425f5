// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/TerminallyLazy/mpc2000xl/audio"
	"github.com/TerminallyLazy/mpc2000xl/utils"
)

const encodeChunkFrames = 4096

// Encode writes buf to w as a 16-bit PCM WAV file.
// The writer is not closed.
func Encode(w io.WriteSeeker, buf *audio.Buffer) error {
	channels := buf.Channels()
	if channels == 0 {
		return ErrNothingToEncode
	}

	enc := wav.NewEncoder(w, buf.SampleRate, 16, channels, wavFormatPCM)

	format := &goaudio.Format{NumChannels: channels, SampleRate: buf.SampleRate}
	frames := buf.Len()
	chunk := &goaudio.IntBuffer{
		Data:           make([]int, 0, encodeChunkFrames*channels),
		Format:         format,
		SourceBitDepth: 16,
	}

	// the data chunk header is only emitted on the first Write
	for start := 0; start < frames || start == 0; start += encodeChunkFrames {
		end := min(start+encodeChunkFrames, frames)
		chunk.Data = chunk.Data[:0]
		for i := start; i < end; i++ {
			for c := range channels {
				chunk.Data = append(chunk.Data, int(utils.Float32ToInt16(buf.Data[c][i])))
			}
		}
		if err := enc.Write(chunk); err != nil {
			return fmt.Errorf("writing wav frames: %w", err)
		}
		if frames == 0 {
			break
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalising wav header: %w", err)
	}
	return nil
}

// Bytes encodes buf into an in-memory 16-bit PCM WAV file.
func Bytes(buf *audio.Buffer) ([]byte, error) {
	f := &memFile{}
	if err := Encode(f, buf); err != nil {
		return nil, err
	}
	return f.data, nil
}

// memFile is an in-memory io.WriteSeeker.
type memFile struct {
	data   []byte
	offset int64
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.offset + int64(len(p))
	if end > int64(len(f.data)) {
		if end > int64(cap(f.data)) {
			grown := make([]byte, end, max(end, 2*int64(cap(f.data))))
			copy(grown, f.data)
			f.data = grown
		} else {
			f.data = f.data[:end]
		}
	}
	copy(f.data[f.offset:], p)
	f.offset = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.offset + offset
	case io.SeekEnd:
		next = int64(len(f.data)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}

	if next < 0 {
		return 0, errors.New("negative position")
	}

	f.offset = next
	return next, nil
}
