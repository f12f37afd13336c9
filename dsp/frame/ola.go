package frame

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// OverlapAdd reconstructs a signal from frames placed every shift samples.
// Overlapping regions accumulate. The output has (n-1)*shift + frameLen
// samples.
func OverlapAdd(frames [][]float64, shift int) ([]float64, error) {
	if shift <= 0 {
		return nil, fmt.Errorf("frame: %w: shift must be > 0: %d", core.ErrInvalidParameter, shift)
	}

	n, frameLen, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if n == 0 {
		return []float64{}, nil
	}

	out := make([]float64, (n-1)*shift+frameLen)
	for i, fr := range frames {
		addAt(out, fr, i*shift)
	}

	return out, nil
}

// OverlapAddPitchSync reconstructs a signal from frames placed at the
// cumulative positions of a per-frame shift sequence. Frame i starts at
// sum(shifts[1..i]); the first frame starts at zero.
func OverlapAddPitchSync(frames [][]float64, shifts []int) ([]float64, error) {
	n, frameLen, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}
	if len(shifts) != n {
		return nil, fmt.Errorf("frame: %w: %d shifts for %d frames", core.ErrShapeMismatch, len(shifts), n)
	}
	if n == 0 {
		return []float64{}, nil
	}

	pm := ShiftToPM(shifts)
	for i := 1; i < n; i++ {
		if shifts[i] < 0 {
			return nil, fmt.Errorf("frame: %w: negative shift %d at frame %d", core.ErrInvalidParameter, shifts[i], i)
		}
	}

	last := pm[n-1] - pm[0]
	out := make([]float64, last+frameLen)
	for i, fr := range frames {
		addAt(out, fr, pm[i]-pm[0])
	}

	return out, nil
}

func addAt(dst, src []float64, offset int) {
	vecmath.AddBlockInPlace(dst[offset:offset+len(src)], src)
}
