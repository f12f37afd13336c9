package mix

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// VoicingMask broadcasts one voicing value per frame over nBins bins and
// zeroes every bin from cutoffBin upward. A value of 1 selects the
// deterministic source in [Mix], 0 the stochastic one.
func VoicingMask(flags []float64, nBins, cutoffBin int) ([][]float64, error) {
	if nBins < 0 || cutoffBin < 0 {
		return nil, fmt.Errorf("mix: %w: bins and cutoff must be >= 0: %d, %d", core.ErrInvalidParameter, nBins, cutoffBin)
	}

	cut := min(cutoffBin, nBins)
	mask := core.NewMatrix(len(flags), nBins)
	for i, f := range flags {
		row := mask[i][:cut]
		for k := range row {
			row[k] = f
		}
	}

	return mask, nil
}

// Mix returns mask*a + (1-mask)*b elementwise.
func Mix(a, b, mask [][]float64) ([][]float64, error) {
	rows, cols, err := checkSameShape(a, b, mask)
	if err != nil {
		return nil, err
	}

	out := core.NewMatrix(rows, cols)
	for i := range out {
		// out = b + mask*(a-b)
		row := out[i]
		for k := range row {
			row[k] = a[i][k] - b[i][k]
		}
		vecmath.MulBlockInPlace(row, mask[i])
		vecmath.AddBlockInPlace(row, b[i])
	}

	return out, nil
}

func checkSameShape(ms ...[][]float64) (rows, cols int, err error) {
	for i, m := range ms {
		r, c, err := core.CheckMatrix(m)
		if err != nil {
			return 0, 0, fmt.Errorf("mix: %w", err)
		}
		if i == 0 {
			rows, cols = r, c
			continue
		}
		if r != rows || (r > 0 && c != cols) {
			return 0, 0, fmt.Errorf("mix: %w: %dx%d vs %dx%d", core.ErrShapeMismatch, r, c, rows, cols)
		}
	}

	return rows, cols, nil
}
