// Package pitch maps semitone offsets to audio resampling factors.
package pitch

import "math"

// Semitone shift bounds accepted by the service, inclusive.
const (
	MinShift = -12
	MaxShift = 12
)

// Factor returns the sample-rate multiplier for a shift of the given
// number of equal-tempered semitones. Factor(0) is exactly 1.
func Factor(semitones int) float64 {
	return math.Pow(2, float64(semitones)/12)
}

// InRange reports whether a shift is within the accepted bounds
func InRange(semitones int) bool {
	return semitones >= MinShift && semitones <= MaxShift
}
