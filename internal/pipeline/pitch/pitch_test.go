package pitch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactor(t *testing.T) {
	tests := []struct {
		name      string
		semitones int
		want      float64
	}{
		{name: "no shift is exactly 1", semitones: 0, want: 1},
		{name: "octave up doubles the rate", semitones: 12, want: 2},
		{name: "octave down halves the rate", semitones: -12, want: 0.5},
		{name: "perfect fifth up", semitones: 7, want: math.Pow(2, 7.0/12)},
		{name: "one semitone up", semitones: 1, want: math.Pow(2, 1.0/12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Factor(tt.semitones))
		})
	}
}

func TestFactorZeroIsExact(t *testing.T) {
	// Exact equality, not approximate: a zero shift must not touch audio
	assert.True(t, Factor(0) == 1.0)
}

func TestFactorAcrossFullRange(t *testing.T) {
	for p := MinShift; p <= MaxShift; p++ {
		assert.InDelta(t, math.Pow(2, float64(p)/12), Factor(p), 1e-12, "semitones=%d", p)
	}
}

func TestInRange(t *testing.T) {
	tests := []struct {
		semitones int
		want      bool
	}{
		{semitones: -12, want: true},
		{semitones: 12, want: true},
		{semitones: 0, want: true},
		{semitones: -13, want: false},
		{semitones: 13, want: false},
		{semitones: 20, want: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InRange(tt.semitones), "semitones=%d", tt.semitones)
	}
}
