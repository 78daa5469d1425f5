// SPDX-License-Identifier: EPL-2.0

package swing

import "errors"

var (
	ErrUnsupportedMessage = errors.New("swing: unsupported midi message")
	ErrInvalidTempo       = errors.New("swing: tempo must be positive")
)
