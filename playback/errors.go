// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	ErrNilBuffer = errors.New("playback: nil buffer")
	ErrEmptyID   = errors.New("playback: empty sample id")
)
