package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeSine
	TypeBartlett
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	case TypeSine:
		return "sine"
	case TypeBartlett:
		return "bartlett"
	default:
		return fmt.Sprintf("window(%d)", int(t))
	}
}

// ParseType maps a window name to its Type.
func ParseType(name string) (Type, error) {
	for _, t := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeSine, TypeBartlett} {
		if t.String() == name {
			return t, nil
		}
	}
	if name == "hanning" {
		return TypeHann, nil
	}

	return 0, fmt.Errorf("window: %w: unknown window %q", core.ErrInvalidParameter, name)
}

var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
)

// Option configures window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures periodic form (FFT framing) instead of symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Func builds a window of length n. It is the shape every framing and
// filterbank routine accepts, so callers may pass their own.
type Func func(n int) []float64

// Of returns a Func generating windows of type t.
func Of(t Type, opts ...Option) Func {
	return func(n int) []float64 {
		return Generate(t, n, opts...)
	}
}

// Hanning returns a symmetric Hann window of length n.
func Hanning(n int) []float64 { return Generate(TypeHann, n) }

// Hamming returns a symmetric Hamming window of length n.
func Hamming(n int) []float64 { return Generate(TypeHamming, n) }

// Blackman returns a symmetric Blackman window of length n.
func Blackman(n int) []float64 { return Generate(TypeBlackman, n) }

// Rectangular returns n ones.
func Rectangular(n int) []float64 { return Generate(TypeRectangular, n) }

// Sine returns sin(pi*k/(n-1)), the square root of a Hann window.
func Sine(n int) []float64 { return Generate(TypeSine, n) }

// Generate returns window coefficients of the given length.
//
// Cosine-sum windows of length 1 are [1], matching numpy.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	if length == 1 && t != TypeSine {
		out[0] = 1
		return out
	}

	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Apply multiplies buf in-place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeRectangular:
		return 1
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeBlackman:
		return cosineFromCoeffs(x, blackmanCoeffs)
	case TypeSine:
		return math.Sin(math.Pi * x)
	case TypeBartlett:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
