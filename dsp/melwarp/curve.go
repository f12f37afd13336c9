package melwarp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// DefaultAlpha is the all-pass coefficient commonly used at 16 kHz.
const DefaultAlpha = 0.77

// WarpCurve maps n frequencies spaced uniformly over [0, pi] through the
// all-pass bilinear transform
//
//	theta' = atan((1-a^2) sin(theta) / ((1+a^2) cos(theta) - 2a))
//
// with negative results shifted by pi, and scales the result to [0, amp].
// The curve is non-decreasing for |alpha| < 1; alpha = 0 yields a straight
// ramp.
func WarpCurve(alpha float64, n int, amp float64) ([]float64, error) {
	if !(math.Abs(alpha) < 1) {
		return nil, fmt.Errorf("melwarp: %w: |alpha| must be < 1: %v", core.ErrInvalidParameter, alpha)
	}
	if n < 1 {
		return nil, fmt.Errorf("melwarp: %w: curve length must be > 0: %d", core.ErrInvalidParameter, n)
	}

	theta := make([]float64, n)
	if n > 1 {
		floats.Span(theta, 0, math.Pi)
	}

	a2 := alpha * alpha
	out := make([]float64, n)
	for i, th := range theta {
		w := math.Atan((1 - a2) * math.Sin(th) / ((1+a2)*math.Cos(th) - 2*alpha))
		if w < 0 {
			w += math.Pi
		}
		out[i] = w * amp / math.Pi
	}

	return out, nil
}
