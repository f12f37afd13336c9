package window

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Asymmetric builds a window whose rising side spans leftLen samples and
// whose falling side spans rightLen samples around a single shared peak.
//
// The rising side is the first leftLen+1 samples of fn(2*leftLen+1), the
// falling side the first rightLen+1 samples of fn(2*rightLen+1) reversed,
// with the duplicated peak dropped. The result has leftLen+rightLen+1
// samples. With normalize set it is scaled to sum to one.
func Asymmetric(leftLen, rightLen int, fn Func, normalize bool) ([]float64, error) {
	if leftLen < 0 || rightLen < 0 {
		return nil, fmt.Errorf("window: %w: asymmetric lengths must be >= 0: %d, %d", core.ErrInvalidParameter, leftLen, rightLen)
	}
	if fn == nil {
		fn = Hanning
	}

	left := fn(2*leftLen + 1)
	right := fn(2*rightLen + 1)
	if len(left) != 2*leftLen+1 || len(right) != 2*rightLen+1 {
		return nil, fmt.Errorf("window: %w: window function returned wrong length", core.ErrShapeMismatch)
	}

	out := make([]float64, 0, leftLen+rightLen+1)
	out = append(out, left[:leftLen+1]...)
	for i := rightLen - 1; i >= 0; i-- {
		out = append(out, right[i])
	}

	if normalize {
		sum := 0.0
		for _, v := range out {
			sum += v
		}
		if sum == 0 {
			return nil, fmt.Errorf("window: %w: cannot normalise a zero-sum window", core.ErrInvalidParameter)
		}
		for i := range out {
			out[i] /= sum
		}
	}

	return out, nil
}

// Centered places an asymmetric window inside a buffer of totalLen samples
// so that its peak sits at totalLen/2 (the first sample of the second half
// for even lengths). Samples outside the window are zero, or the window's
// first sample when fillBoundary is set.
func Centered(leftLen, rightLen, totalLen int, fn Func, fillBoundary bool) ([]float64, error) {
	short, err := Asymmetric(leftLen, rightLen, fn, false)
	if err != nil {
		return nil, err
	}

	start := totalLen/2 - leftLen
	if start < 0 || start+len(short) > totalLen {
		return nil, fmt.Errorf("window: %w: window %d+%d does not fit centered in %d samples",
			core.ErrShapeMismatch, leftLen, rightLen, totalLen)
	}

	out := make([]float64, totalLen)
	if fillBoundary {
		for i := range out {
			out[i] = short[0]
		}
	}
	copy(out[start:], short)

	return out, nil
}
