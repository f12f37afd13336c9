package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Kind tells [Expand] how to synthesise the redundant half.
type Kind int

const (
	// KindMagnitude mirrors the interior bins.
	KindMagnitude Kind = iota
	// KindPhase zeroes the DC and Nyquist bins and mirrors the interior with
	// a sign flip.
	KindPhase
	// KindZeros appends zeros in place of the mirrored bins.
	KindZeros
	// KindComplex is the complex form; use [ExpandComplex].
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindMagnitude:
		return "magnitude"
	case KindPhase:
		return "phase"
	case KindZeros:
		return "zeros"
	case KindComplex:
		return "complex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Expand rebuilds the full nFFT-bin spectrum from a half spectrum of
// nFFT/2+1 bins. The input is not modified.
func Expand(half []float64, kind Kind) ([]float64, error) {
	n := len(half)
	if n < 2 {
		return nil, fmt.Errorf("spectrum: %w: half spectrum needs at least 2 bins: %d", core.ErrShapeMismatch, n)
	}

	out := make([]float64, 2*n-2)
	copy(out, half)

	switch kind {
	case KindMagnitude:
		for k := 1; k < n-1; k++ {
			out[2*n-2-k] = half[k]
		}
	case KindPhase:
		out[0] = 0
		out[n-1] = 0
		for k := 1; k < n-1; k++ {
			out[2*n-2-k] = -half[k]
		}
	case KindZeros:
	default:
		return nil, fmt.Errorf("spectrum: %w: cannot expand real data as %v", core.ErrInvalidParameter, kind)
	}

	return out, nil
}

// ExpandComplex rebuilds a full Hermitian spectrum: the real part is mirrored
// as a magnitude, the imaginary part as a phase.
func ExpandComplex(half []complex128) ([]complex128, error) {
	n := len(half)
	if n < 2 {
		return nil, fmt.Errorf("spectrum: %w: half spectrum needs at least 2 bins: %d", core.ErrShapeMismatch, n)
	}

	out := make([]complex128, 2*n-2)
	out[0] = complex(real(half[0]), 0)
	out[n-1] = complex(real(half[n-1]), 0)
	for k := 1; k < n-1; k++ {
		out[k] = half[k]
		out[2*n-2-k] = complex(real(half[k]), -imag(half[k]))
	}

	return out, nil
}

// Reduce keeps the first floor(n/2)+1 bins of a full spectrum. It works for
// even and odd n.
func Reduce(full []float64) []float64 {
	if len(full) == 0 {
		return nil
	}
	return append([]float64(nil), full[:len(full)/2+1]...)
}

// ReduceComplex is the complex form of [Reduce].
func ReduceComplex(full []complex128) []complex128 {
	if len(full) == 0 {
		return nil
	}
	return append([]complex128(nil), full[:len(full)/2+1]...)
}

// ExpandFrames applies [Expand] to every frame.
func ExpandFrames(frames [][]float64, kind Kind) ([][]float64, error) {
	if _, _, err := core.CheckMatrix(frames); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	out := make([][]float64, len(frames))
	for i, fr := range frames {
		full, err := Expand(fr, kind)
		if err != nil {
			return nil, err
		}
		out[i] = full
	}

	return out, nil
}

// ReduceFrames applies [Reduce] to every frame.
func ReduceFrames(frames [][]float64) ([][]float64, error) {
	if _, _, err := core.CheckMatrix(frames); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	out := make([][]float64, len(frames))
	for i, fr := range frames {
		out[i] = Reduce(fr)
	}

	return out, nil
}
