package conv

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Errors returned by convolution functions. Both match
// core.ErrShapeMismatch with errors.Is.
var (
	ErrEmptyInput  = fmt.Errorf("conv: %w: empty input", core.ErrShapeMismatch)
	ErrEmptyKernel = fmt.Errorf("conv: %w: empty kernel", core.ErrShapeMismatch)
)

// Mode specifies the output portion of a convolution.
type Mode int

const (
	// ModeFull returns the full result of length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns len(a) samples centred on the full result.
	ModeSame

	// ModeValid returns only the samples where the inputs fully overlap,
	// max(len(a), len(b)) - min(len(a), len(b)) + 1 of them.
	ModeValid
)

// Direct returns the linear convolution of a and b, of length
// len(a)+len(b)-1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo convolves a and b into dst, which must have length
// len(a)+len(b)-1.
func DirectTo(dst, a, b []float64) {
	n, m := len(a), len(b)

	for i := range dst {
		dst[i] = 0
	}

	// vecmath pays off once the kernel spans a few samples.
	const blockThreshold = 4
	if m < blockThreshold {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				dst[i+j] += a[i] * b[j]
			}
		}
		return
	}

	temp := make([]float64, m)
	for i := 0; i < n; i++ {
		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// ConvolveMode convolves a and b and trims the result to mode, like
// numpy's convolve.
func ConvolveMode(a, b []float64, mode Mode) ([]float64, error) {
	if mode < ModeFull || mode > ModeValid {
		return nil, fmt.Errorf("conv: %w: unknown mode %d", core.ErrInvalidParameter, mode)
	}

	full, err := Direct(a, b)
	if err != nil {
		return nil, err
	}

	return trimToMode(full, len(a), len(b), mode), nil
}

func trimToMode(full []float64, lenA, lenB int, mode Mode) []float64 {
	switch mode {
	case ModeSame:
		start := (lenB - 1) / 2
		return full[start : start+lenA]
	case ModeValid:
		if lenA >= lenB {
			return full[lenB-1 : lenA]
		}
		return full[lenA-1 : lenB]
	default:
		return full
	}
}
