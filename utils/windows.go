// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Hann returns a periodic Hann window of length n:
// w[i] = 0.5 * (1 - cos(2*pi*i/n)).
func Hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// RaisedCosine returns a window of length n that fades in over the first
// half and out over the second. It is the symmetric Hann shape used for
// overlap-add fades.
func RaisedCosine(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}
