package frame

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/conv"
	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Smooth convolves v with win normalised to unit sum. Both ends are
// extended with the boundary value so the output keeps len(v) samples.
// win must have odd length and may not be longer than v; windows shorter
// than three samples return a copy of v.
func Smooth(v, win []float64) ([]float64, error) {
	wl := len(win)
	if wl < 3 {
		return append([]float64(nil), v...), nil
	}
	if wl%2 == 0 {
		return nil, fmt.Errorf("frame: %w: smoothing window length must be odd: %d", core.ErrInvalidParameter, wl)
	}
	if len(v) < wl {
		return nil, fmt.Errorf("frame: %w: %d samples shorter than window of %d", core.ErrShapeMismatch, len(v), wl)
	}

	sum := 0.0
	for _, w := range win {
		sum += w
	}
	if sum == 0 {
		return nil, fmt.Errorf("frame: %w: smoothing window sums to zero", core.ErrInvalidParameter)
	}

	norm := make([]float64, wl)
	for i, w := range win {
		norm[i] = w / sum
	}

	half := (wl - 1) / 2
	ext := make([]float64, 0, len(v)+2*half)
	for i := 0; i < half; i++ {
		ext = append(ext, v[0])
	}
	ext = append(ext, v...)
	for i := 0; i < half; i++ {
		ext = append(ext, v[len(v)-1])
	}

	out, err := conv.ConvolveMode(ext, norm, conv.ModeValid)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}

	return out, nil
}

// SmoothColumns applies [Smooth] along time to every column of a frame
// matrix.
func SmoothColumns(frames [][]float64, win []float64) ([][]float64, error) {
	n, cols, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("frame: %w", err)
	}

	out := core.NewMatrix(n, cols)
	col := make([]float64, n)
	for c := 0; c < cols; c++ {
		for r := 0; r < n; r++ {
			col[r] = frames[r][c]
		}
		sm, err := Smooth(col, win)
		if err != nil {
			return nil, err
		}
		for r := 0; r < n; r++ {
			out[r][c] = sm[r]
		}
	}

	return out, nil
}
