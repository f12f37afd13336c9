package mix

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// UnvoicedMode selects how [InterpolateUnvoiced] fills unvoiced frames.
type UnvoicedMode int

const (
	// UnvoicedLinear interpolates linearly between the surrounding voiced
	// frames and holds the first and last voiced frame at the edges.
	UnvoicedLinear UnvoicedMode = iota
	// UnvoicedZeros zeroes unvoiced frames.
	UnvoicedZeros
)

// InterpolateUnvoiced replaces the frames whose voicing value is not
// positive. Voiced frames are copied unchanged.
func InterpolateUnvoiced(frames [][]float64, voicing []float64, mode UnvoicedMode) ([][]float64, error) {
	rows, _, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("mix: %w", err)
	}
	if len(voicing) != rows {
		return nil, fmt.Errorf("mix: %w: %d voicing values for %d frames", core.ErrShapeMismatch, len(voicing), rows)
	}

	out := core.CloneMatrix(frames)
	switch mode {
	case UnvoicedZeros:
		for i, v := range voicing {
			if !(v > 0) {
				clear(out[i])
			}
		}
		return out, nil
	case UnvoicedLinear:
	default:
		return nil, fmt.Errorf("mix: %w: unknown unvoiced mode %d", core.ErrInvalidParameter, mode)
	}

	var voiced []int
	for i, v := range voicing {
		if v > 0 {
			voiced = append(voiced, i)
		}
	}
	if rows > 0 && len(voiced) == 0 {
		return nil, fmt.Errorf("mix: %w: no voiced frames to interpolate from", core.ErrInvalidParameter)
	}

	next := 0
	for t := range out {
		for next < len(voiced) && voiced[next] < t {
			next++
		}
		switch {
		case next < len(voiced) && voiced[next] == t:
			continue
		case next == 0:
			copy(out[t], frames[voiced[0]])
		case next == len(voiced):
			copy(out[t], frames[voiced[len(voiced)-1]])
		default:
			a, b := voiced[next-1], voiced[next]
			w := float64(t-a) / float64(b-a)
			for k := range out[t] {
				out[t][k] = (1-w)*frames[a][k] + w*frames[b][k]
			}
		}
	}

	return out, nil
}
