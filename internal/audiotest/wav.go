// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// WAV builds a canonical 16-bit PCM WAV file from interleaved samples.
func WAV(sampleRate, channels int, samples []int16) []byte {
	buf := new(bytes.Buffer)

	blockAlign := uint16(channels * 2)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(channels))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate)*uint32(blockAlign))
	_ = binary.Write(buf, binary.LittleEndian, blockAlign)
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// SineWAV renders frames of a mono sine tone as a WAV file.
// The file is 44 + 2*frames bytes long.
func SineWAV(sampleRate, frames int, frequency float64) []byte {
	samples := make([]int16, frames)
	for i := range samples {
		v := math.Sin(2 * math.Pi * frequency * float64(i) / float64(sampleRate))
		samples[i] = int16(v * 16000)
	}
	return WAV(sampleRate, 1, samples)
}

// SizedWAV returns a mono WAV file of exactly size bytes (size >= 46, even).
func SizedWAV(sampleRate, size int) []byte {
	return SineWAV(sampleRate, (size-44)/2, 440)
}
