// SPDX-License-Identifier: EPL-2.0

package timestretch

import "errors"

var (
	ErrNilBuffer             = errors.New("time stretch: nil buffer")
	ErrInvalidRatio          = errors.New("time stretch: ratio must be between 50 and 200 percent")
	ErrInvalidAlgorithmIndex = errors.New("time stretch: algorithm index outside the quality tier")
	ErrInvalidQuality        = errors.New("time stretch: unknown quality")
)
