package melwarp

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-vocoder/dsp/cepstrum"
	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/dft"
	"github.com/cwbudde/algo-vocoder/dsp/spectrum"
)

// Scale is the amplitude scale of a spectrum.
type Scale int

const (
	// ScaleAbs is linear magnitude.
	ScaleAbs Scale = iota
	// ScaleDB is 20*log10 magnitude.
	ScaleDB
	// ScaleLog is natural-log magnitude.
	ScaleLog
)

// Names used by the cosine-matrix functions.
const (
	OutAbs = ScaleAbs
	OutDB  = ScaleDB
	OutLog = ScaleLog
	InAbs  = ScaleAbs
	InDB   = ScaleDB
	InLog  = ScaleLog
)

func (s Scale) String() string {
	switch s {
	case ScaleAbs:
		return "abs"
	case ScaleDB:
		return "db"
	case ScaleLog:
		return "log"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// ParseScale maps "abs", "db" or "log" to a Scale.
func ParseScale(s string) (Scale, error) {
	switch s {
	case "abs":
		return ScaleAbs, nil
	case "db":
		return ScaleDB, nil
	case "log":
		return ScaleLog, nil
	default:
		return 0, fmt.Errorf("melwarp: %w: unknown scale %q", core.ErrInvalidParameter, s)
	}
}

// fromLog converts a natural-log value to s.
func (s Scale) fromLog(x float64) float64 {
	switch s {
	case ScaleAbs:
		return math.Exp(x)
	case ScaleDB:
		return core.LogToDB(x)
	default:
		return x
	}
}

// toLog converts a value in s to a natural-log value.
func (s Scale) toLog(x float64) float64 {
	switch s {
	case ScaleAbs:
		return core.Log(x)
	case ScaleDB:
		return core.DBToLog(x)
	default:
		return x
	}
}

func (s Scale) valid() bool { return s >= ScaleAbs && s <= ScaleLog }

// CosineBasis returns the nCoeffs x nOut matrix cos(i * curve[j]) for the
// warping curve of alpha sampled at nOut points.
func CosineBasis(nCoeffs, nOut int, alpha float64) (*mat.Dense, error) {
	if nCoeffs < 1 {
		return nil, fmt.Errorf("melwarp: %w: coefficient count must be > 0: %d", core.ErrInvalidParameter, nCoeffs)
	}
	curve, err := WarpCurve(alpha, nOut, math.Pi)
	if err != nil {
		return nil, err
	}

	basis := mat.NewDense(nCoeffs, nOut, nil)
	for i := range nCoeffs {
		for j, w := range curve {
			basis.Set(i, j, math.Cos(w*float64(i)))
		}
	}

	return basis, nil
}

// McepToSp evaluates (mel-)cepstra on nOut bins of the axis warped by alpha
// and returns the spectra in the requested scale. With alpha = 0 the bins
// are linear in frequency.
func McepToSp(mcep [][]float64, nOut int, alpha float64, out Scale) ([][]float64, error) {
	if !out.valid() {
		return nil, fmt.Errorf("melwarp: %w: unknown output scale %v", core.ErrInvalidParameter, out)
	}
	rows, cols, err := core.CheckMatrix(mcep)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}
	if rows == 0 {
		return [][]float64{}, nil
	}

	basis, err := CosineBasis(cols, nOut, alpha)
	if err != nil {
		return nil, err
	}

	var prod mat.Dense
	prod.Mul(mat.NewDense(rows, cols, core.Flatten(mcep)), basis)

	res := core.NewMatrix(rows, nOut)
	for i := range res {
		for j, v := range prod.RawRowView(i) {
			res[i][j] = out.fromLog(v)
		}
	}

	return res, nil
}

// SpMelUnwarp maps mel-warped half spectra back to nOut linear-frequency
// bins. The output is in the same scale as the input.
func SpMelUnwarp(melSp [][]float64, nOut int, alpha float64, in Scale) ([][]float64, error) {
	if !in.valid() {
		return nil, fmt.Errorf("melwarp: %w: unknown input scale %v", core.ErrInvalidParameter, in)
	}

	logSp := core.MapFrames(melSp, in.toLog)
	ceps, err := cepstrum.Real(logSp, cepstrum.InputLog, cepstrum.FormCompact)
	if err != nil {
		return nil, err
	}

	return McepToSp(ceps, nOut, alpha, in)
}

// LinearLogSpectrumFromMcep evaluates cepstra on the nFFT/2+1 linear bins
// of an nFFT-point transform without warping. The result is natural log.
func LinearLogSpectrumFromMcep(mcep [][]float64, nFFT int) ([][]float64, error) {
	rows, cols, err := core.CheckMatrix(mcep)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}
	half := nFFT/2 + 1
	if nFFT < 2 || cols > half {
		return nil, fmt.Errorf("melwarp: %w: %d coefficients do not fit an fft of %d", core.ErrShapeMismatch, cols, nFFT)
	}

	out := make([][]float64, rows)
	padded := make([]float64, half)
	for i, c := range mcep {
		clear(padded)
		copy(padded, c)

		full, err := spectrum.Expand(padded, spectrum.KindMagnitude)
		if err != nil {
			return nil, fmt.Errorf("melwarp: %w", err)
		}
		sp, err := dft.ForwardRealPart(full, nFFT)
		if err != nil {
			return nil, fmt.Errorf("melwarp: %w", err)
		}
		out[i] = spectrum.Reduce(sp)
	}

	return out, nil
}

// SpectrumType is the input code understood by mel-cepstral analysers.
type SpectrumType int

const (
	SpectrumDB  SpectrumType = 1 // 20*log10|F|
	SpectrumLog SpectrumType = 2 // ln|F|
	SpectrumAbs SpectrumType = 3 // |F|
)

func (t SpectrumType) scale() (Scale, error) {
	switch t {
	case SpectrumDB:
		return ScaleDB, nil
	case SpectrumLog:
		return ScaleLog, nil
	case SpectrumAbs:
		return ScaleAbs, nil
	default:
		return 0, fmt.Errorf("melwarp: %w: unknown spectrum type %d", core.ErrInvalidParameter, int(t))
	}
}

// AnalysisParams configures a mel-cepstral analysis run.
type AnalysisParams struct {
	Coeffs    int
	Alpha     float64
	FFTLen    int
	InputType SpectrumType
}

// MelCepstrumAnalyzer extracts mel-cepstra from half spectra.
type MelCepstrumAnalyzer interface {
	MelCepstrum(ctx context.Context, frames [][]float64, p AnalysisParams) ([][]float64, error)
}

// SpMelWarp warps half spectra onto nOut mel bins: the analyzer computes nOut
// mel-cepstral coefficients at alpha, which are then evaluated on a linear
// cosine basis (alpha = 0). The result approximates a warped spectrum; it
// is not an exact inverse of [SpMelUnwarp].
func SpMelWarp(ctx context.Context, analyzer MelCepstrumAnalyzer, sp [][]float64, nOut int, alpha float64, typ SpectrumType) ([][]float64, error) {
	scale, err := typ.scale()
	if err != nil {
		return nil, err
	}
	_, cols, err := core.CheckMatrix(sp)
	if err != nil {
		return nil, fmt.Errorf("melwarp: %w", err)
	}

	mcep, err := analyzer.MelCepstrum(ctx, sp, AnalysisParams{
		Coeffs:    nOut,
		Alpha:     alpha,
		FFTLen:    2 * (cols - 1),
		InputType: typ,
	})
	if err != nil {
		return nil, fmt.Errorf("melwarp: mel-cepstral analysis: %w", err)
	}

	return McepToSp(mcep, nOut, 0, scale)
}
