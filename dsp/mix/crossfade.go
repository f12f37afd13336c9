package mix

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/window"
)

// CrossfadeWindows returns the weights applied to the left (low-frequency)
// and right (high-frequency) spectra by [SpectralCrossfade] for half
// spectra of nHalf bins. The transition spans cutoffHz +- bwHz/2, shaped by
// the two halves of fn(2*width+1); a nil fn selects a Hann window.
//
// With a zero bandwidth both weights are 1 at the cutoff bin.
func CrossfadeWindows(nHalf int, cutoffHz, bwHz, fs float64, fn window.Func) (left, right []float64, err error) {
	if nHalf < 2 {
		return nil, nil, fmt.Errorf("mix: %w: need at least 2 bins: %d", core.ErrInvalidParameter, nHalf)
	}
	if bwHz < 0 || fs <= 0 {
		return nil, nil, fmt.Errorf("mix: %w: bandwidth must be >= 0 and sample rate > 0: %v, %v",
			core.ErrInvalidParameter, bwHz, fs)
	}
	if fn == nil {
		fn = window.Hanning
	}

	nFFT := (nHalf - 1) * 2
	binL := core.RoundToInt(core.HzToBin(cutoffHz-bwHz/2, nFFT, fs))
	binR := core.RoundToInt(core.HzToBin(cutoffHz+bwHz/2, nFFT, fs))
	if binL < 0 || binR > nHalf-1 {
		return nil, nil, fmt.Errorf("mix: %w: transition bins [%d, %d] outside [0, %d]",
			core.ErrInvalidParameter, binL, binR, nHalf-1)
	}

	width := binR - binL
	short := fn(2*width + 1)
	if len(short) != 2*width+1 {
		return nil, nil, fmt.Errorf("mix: %w: window function returned %d samples, want %d",
			core.ErrShapeMismatch, len(short), 2*width+1)
	}

	left = make([]float64, nHalf)
	right = make([]float64, nHalf)
	for k := range binL {
		left[k] = 1
	}
	copy(left[binL:], short[width:])
	copy(right[binL:], short[:width+1])
	for k := binR + 1; k < nHalf; k++ {
		right[k] = 1
	}

	return left, right, nil
}

// SpectralCrossfade blends two half-spectrum frame matrices: the left input
// below the transition band, the right input above it.
//
// With bwHz == 0 both weights are 1 at the cutoff bin, so the two inputs are
// summed there and that bin carries twice the energy of a single source.
func SpectralCrossfade(l, r [][]float64, cutoffHz, bwHz, fs float64, fn window.Func) ([][]float64, error) {
	rows, cols, err := checkSameShape(l, r)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return [][]float64{}, nil
	}

	wl, wr, err := CrossfadeWindows(cols, cutoffHz, bwHz, fs, fn)
	if err != nil {
		return nil, err
	}

	out := core.NewMatrix(rows, cols)
	tmp := make([]float64, cols)
	for i := range out {
		vecmath.MulBlock(out[i], l[i], wl)
		vecmath.MulBlock(tmp, r[i], wr)
		vecmath.AddBlockInPlace(out[i], tmp)
	}

	return out, nil
}

// SpectralCrossfadeComplex is [SpectralCrossfade] for complex spectra. The
// cutoff bin is summed the same way when bwHz == 0.
func SpectralCrossfadeComplex(l, r [][]complex128, cutoffHz, bwHz, fs float64, fn window.Func) ([][]complex128, error) {
	if len(l) != len(r) {
		return nil, fmt.Errorf("mix: %w: %d vs %d frames", core.ErrShapeMismatch, len(l), len(r))
	}
	if len(l) == 0 {
		return [][]complex128{}, nil
	}

	cols := len(l[0])
	for i := range l {
		if len(l[i]) != cols || len(r[i]) != cols {
			return nil, fmt.Errorf("mix: %w: frame %d has %d and %d bins, want %d",
				core.ErrShapeMismatch, i, len(l[i]), len(r[i]), cols)
		}
	}

	wl, wr, err := CrossfadeWindows(cols, cutoffHz, bwHz, fs, fn)
	if err != nil {
		return nil, err
	}

	out := make([][]complex128, len(l))
	for i := range out {
		row := make([]complex128, cols)
		for k := range row {
			row[k] = l[i][k]*complex(wl[k], 0) + r[i][k]*complex(wr[k], 0)
		}
		out[i] = row
	}

	return out, nil
}
