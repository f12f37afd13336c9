package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine of freqHz sampled at sampleRate.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates uniform noise in [-amplitude, amplitude]
// from a fixed seed.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PositiveSpectrum generates a strictly positive magnitude spectrum of
// nBins bins: a smooth spectral tilt with a few resonances plus seeded
// ripple, loosely shaped like a voiced speech frame.
func PositiveSpectrum(seed int64, nBins int) []float64 {
	ripple := DeterministicNoise(seed, 0.2, nBins)
	out := make([]float64, nBins)
	for k := range out {
		x := float64(k) / float64(nBins)
		v := math.Exp(-3*x) + 0.6*resonance(x, 0.12, 0.02) + 0.3*resonance(x, 0.35, 0.03)
		out[k] = v * (1 + ripple[k])
	}
	return out
}

func resonance(x, center, width float64) float64 {
	d := (x - center) / width
	return math.Exp(-0.5 * d * d)
}

// Ramp returns [0, 1, ..., n-1].
func Ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return DC(1.0, n)
}

// Frames repeats row n times into a frame matrix.
func Frames(row []float64, n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = append([]float64(nil), row...)
	}
	return out
}
