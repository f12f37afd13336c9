package melwarp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/interp"
	"github.com/cwbudde/algo-vocoder/dsp/window"
)

// Mode selects how [ApplyFilterbank] reduces the bins of a band.
type Mode int

const (
	// ModeAverage is the weighted sum of the band's bins.
	ModeAverage Mode = iota
	// ModeMaxAbs picks the bin whose weighted value has the largest
	// magnitude and returns its unweighted value.
	ModeMaxAbs
)

// ParseMode maps "average" or "maxabs" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "average":
		return ModeAverage, nil
	case "maxabs":
		return ModeMaxAbs, nil
	default:
		return 0, fmt.Errorf("melwarp: %w: unknown filterbank mode %q", core.ErrInvalidParameter, s)
	}
}

// Filterbank maps linear bins to warped bands.
type Filterbank struct {
	// Weights is bins x bands; every column sums to one.
	Weights *mat.Dense
	// Centers are the band centers as linear bin indices.
	Centers []int
	// WindowLengths are the per-band window lengths in bins.
	WindowLengths []int
}

// bandCenters spaces nBands centers uniformly over the curve's range and maps
// them back to the nearest linear bin through a spline of the inverse curve.
func bandCenters(curve []float64, nBands int, kind interp.Kind) ([]int, error) {
	if nBands < 2 {
		return nil, fmt.Errorf("melwarp: %w: need at least 2 bands: %d", core.ErrInvalidParameter, nBands)
	}
	nBins := len(curve)

	bins := make([]float64, nBins)
	for i := range bins {
		bins[i] = float64(i)
	}
	inv, err := interp.NewSpline(curve, bins, kind)
	if err != nil {
		return nil, fmt.Errorf("melwarp: inverse warping curve: %w", err)
	}

	mel := make([]float64, nBands)
	floats.Span(mel, 0, curve[nBins-1])

	centers := make([]int, nBands)
	for b, m := range mel {
		// Clamp the span end points to the curve's range.
		m = math.Min(math.Max(m, curve[0]), curve[nBins-1])
		v, err := inv.At(m)
		if err != nil {
			return nil, fmt.Errorf("melwarp: band %d: %w", b, err)
		}
		centers[b] = min(max(core.RoundToInt(v), 0), nBins-1)
	}

	return centers, nil
}

// BuildFilterbank builds nBands windows over len(curve) bins. Band centers
// are uniform along the warped axis; each band's window rises from the
// previous center and falls to the next, with the outer bands clamped to
// their own center. A nil fn selects a Hann window.
func BuildFilterbank(curve []float64, nBands int, fn window.Func) (*Filterbank, error) {
	centers, err := bandCenters(curve, nBands, interp.Quadratic)
	if err != nil {
		return nil, err
	}

	nBins := len(curve)
	ext := make([]int, 0, nBands+2)
	ext = append(ext, centers[0])
	ext = append(ext, centers...)
	ext = append(ext, centers[nBands-1])

	fb := &Filterbank{
		Weights:       mat.NewDense(nBins, nBands, nil),
		Centers:       centers,
		WindowLengths: make([]int, nBands),
	}
	for b := range nBands {
		win, err := window.Asymmetric(ext[b+1]-ext[b], ext[b+2]-ext[b+1], fn, true)
		if err != nil {
			return nil, fmt.Errorf("melwarp: band %d: %w", b, err)
		}
		fb.WindowLengths[b] = len(win)
		for i, w := range win {
			fb.Weights.Set(ext[b]+i, b, w)
		}
	}

	return fb, nil
}

// ApplyFilterbank reduces every frame of len(bins) values to the
// filterbank's bands.
func ApplyFilterbank(frames [][]float64, fb *Filterbank, mode Mode) ([][]float64, error) {
	rows, cols, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}
	nBins, nBands := fb.Weights.Dims()
	if rows > 0 && cols != nBins {
		return nil, fmt.Errorf("melwarp: %w: frames have %d bins, filterbank %d", core.ErrShapeMismatch, cols, nBins)
	}
	if rows == 0 {
		return [][]float64{}, nil
	}

	out := core.NewMatrix(rows, nBands)
	switch mode {
	case ModeAverage:
		var prod mat.Dense
		prod.Mul(mat.NewDense(rows, cols, core.Flatten(frames)), fb.Weights)
		for i := range out {
			copy(out[i], prod.RawRowView(i))
		}
	case ModeMaxAbs:
		col := make([]float64, nBins)
		for b := range nBands {
			mat.Col(col, b, fb.Weights)
			for i, fr := range frames {
				best, bestAbs := 0, math.Abs(fr[0]*col[0])
				for k := 1; k < nBins; k++ {
					if a := math.Abs(fr[k] * col[k]); a > bestAbs {
						best, bestAbs = k, a
					}
				}
				out[i][b] = fr[best]
			}
		}
	default:
		return nil, fmt.Errorf("melwarp: %w: unknown filterbank mode %d", core.ErrInvalidParameter, mode)
	}

	return out, nil
}

// UnwarpFromFilterbank interpolates band values back onto every linear bin
// of curve. The band centers are recomputed from curve with the same spline
// kind used for the per-frame interpolation.
func UnwarpFromFilterbank(bands [][]float64, curve []float64, kind interp.Kind) ([][]float64, error) {
	rows, nBands, err := core.CheckMatrix(bands)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}
	if rows == 0 {
		return [][]float64{}, nil
	}

	centers, err := bandCenters(curve, nBands, kind)
	if err != nil {
		return nil, err
	}
	x := make([]float64, nBands)
	for i, c := range centers {
		x[i] = float64(c)
	}
	basis, err := interp.NewBasis(x, kind)
	if err != nil {
		return nil, fmt.Errorf("melwarp: band centers %v: %w", centers, err)
	}

	nBins := len(curve)
	bins := make([]float64, nBins)
	for i := range bins {
		bins[i] = float64(i)
	}

	out := make([][]float64, rows)
	for i, fr := range bands {
		s, err := basis.Fit(fr)
		if err != nil {
			return nil, fmt.Errorf("melwarp: frame %d: %w", i, err)
		}
		if out[i], err = s.Eval(bins); err != nil {
			return nil, fmt.Errorf("melwarp: frame %d: %w", i, err)
		}
	}

	return out, nil
}

// WarpFbank averages magnitude spectra into nBands mel bands in the
// protected-log domain and returns band magnitudes.
func WarpFbank(mag [][]float64, nBands int, alpha float64) ([][]float64, error) {
	rows, nBins, err := core.CheckMatrix(mag)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}
	if rows == 0 {
		return [][]float64{}, nil
	}

	curve, err := WarpCurve(alpha, nBins, math.Pi)
	if err != nil {
		return nil, err
	}
	fb, err := BuildFilterbank(curve, nBands, window.Hanning)
	if err != nil {
		return nil, err
	}
	logBands, err := ApplyFilterbank(core.LogFrames(mag), fb, ModeAverage)
	if err != nil {
		return nil, err
	}

	return core.MapFrames(logBands, math.Exp), nil
}

// UnwarpFbank interpolates mel band magnitudes back to nBins linear bins in
// the protected-log domain.
func UnwarpFbank(mel [][]float64, nBins int, alpha float64) ([][]float64, error) {
	curve, err := WarpCurve(alpha, nBins, math.Pi)
	if err != nil {
		return nil, err
	}
	logSp, err := UnwarpFromFilterbank(core.LogFrames(mel), curve, interp.Quadratic)
	if err != nil {
		return nil, err
	}

	return core.MapFrames(logSp, math.Exp), nil
}
