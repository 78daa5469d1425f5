// SPDX-License-Identifier: EPL-2.0

package mpc2000xl

import (
	"fmt"

	"github.com/TerminallyLazy/mpc2000xl/audio"
)

// Bounce renders buf at targetRate with cubic interpolation, mixing it down
// to one channel when mono is set. The input is not modified.
//
//	out, err := mpc2000xl.Bounce(stretched, 8000, true)
//	// out is mono at 8kHz
func Bounce(buf *audio.Buffer, targetRate int, mono bool) (*audio.Buffer, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("bounce to %d Hz: %w", targetRate, audio.ErrInvalidRate)
	}

	// resample -> mono
	var src audio.Source = audio.NewResampler(buf.Source(), targetRate)
	if mono {
		src = audio.NewMonoMixer(src)
	}
	defer src.Close()

	out, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("bounce: %w", err)
	}
	return out, nil
}
