// SPDX-License-Identifier: EPL-2.0

package timestretch

import (
	"fmt"
	"strings"
)

// Quality is a parameter tier. Higher tiers use longer windows and denser
// hops at a higher compute cost.
type Quality int

const (
	Standard Quality = iota
	Enhanced
	Premium
)

var qualityNames = [...]string{"Standard", "Enhanced", "Premium"}

// Letter codes used on the machine's time stretch screen.
var qualityLetters = [...]string{"A", "B", "C"}

func (q Quality) Valid() bool { return q >= Standard && q <= Premium }

func (q Quality) String() string {
	if !q.Valid() {
		return fmt.Sprintf("Quality(%d)", int(q))
	}
	return qualityNames[q]
}

// Letter returns the A/B/C code of the tier.
func (q Quality) Letter() string {
	if !q.Valid() {
		return "?"
	}
	return qualityLetters[q]
}

// ParseQuality accepts a tier name or letter, case-insensitively.
func ParseQuality(s string) (Quality, error) {
	s = strings.TrimSpace(s)
	for i := range qualityNames {
		if strings.EqualFold(s, qualityNames[i]) || strings.EqualFold(s, qualityLetters[i]) {
			return Quality(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidQuality, s)
}

// Family names the DSP approach an algorithm is built on.
type Family int

const (
	WSOLA Family = iota
	PhaseVocoder
	Granular
	Resampling
	Spectral
	Hybrid
)

var familyNames = [...]string{"WSOLA", "Phase Vocoder", "Granular", "Resampling", "Spectral", "Hybrid"}

func (f Family) String() string {
	if f < WSOLA || f > Hybrid {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}
