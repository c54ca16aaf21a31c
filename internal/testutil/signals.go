package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine returns amplitude*sin(2*pi*freqHz*n/sampleRate), n >= 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)

	w := 2 * math.Pi * freqHz / sampleRate
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}

	return out
}

// DeterministicNoise returns uniform white noise in [-amplitude, amplitude)
// drawn from seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([]float64, length)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}

	return out
}

// Impulse returns a unit impulse at pos. An out-of-range pos yields silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns length copies of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for n := range out {
		out[n] = value
	}

	return out
}
