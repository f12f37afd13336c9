// Package sptk wraps SPTK command-line tools.
package sptk

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/melwarp"
	"github.com/cwbudde/algo-vocoder/fileio/binmat"
	"github.com/cwbudde/algo-vocoder/tools"
)

// Params configures one mcep run. A zero FFTLen is derived from the
// spectrum width.
type Params = melwarp.AnalysisParams

// Analyzer runs SPTK mcep on spectra. It satisfies
// melwarp.MelCepstrumAnalyzer.
type Analyzer struct {
	Config tools.Config
	Runner *tools.Runner
}

var _ melwarp.MelCepstrumAnalyzer = (*Analyzer)(nil)

// New returns an Analyzer for cfg logging through runner.
func New(cfg tools.Config, runner *tools.Runner) *Analyzer {
	if runner == nil {
		runner = tools.NewRunner(nil)
	}
	return &Analyzer{Config: cfg, Runner: runner}
}

// MelCepstrum returns p.Coeffs mel-cepstral coefficients per frame of half
// spectra. Data is exchanged with mcep as float32.
func (a *Analyzer) MelCepstrum(ctx context.Context, frames [][]float64, p Params) ([][]float64, error) {
	rows, cols, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, fmt.Errorf("sptk: %w", err)
	}
	if rows == 0 || cols < 2 {
		return nil, fmt.Errorf("sptk: %w: need frames of >= 2 bins, got %dx%d", core.ErrShapeMismatch, rows, cols)
	}
	if p.Coeffs < 1 {
		return nil, fmt.Errorf("sptk: %w: coeffs must be >= 1: %d", core.ErrInvalidParameter, p.Coeffs)
	}
	if math.Abs(p.Alpha) >= 1 {
		return nil, fmt.Errorf("sptk: %w: |alpha| must be < 1: %g", core.ErrInvalidParameter, p.Alpha)
	}
	if p.InputType < melwarp.SpectrumDB || p.InputType > melwarp.SpectrumAbs {
		return nil, fmt.Errorf("sptk: %w: unknown input type %d", core.ErrInvalidParameter, p.InputType)
	}
	fftLen := p.FFTLen
	if fftLen == 0 {
		fftLen = 2 * (cols - 1)
	}

	dir, cleanup, err := a.Config.Scratch("mcep-*")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	in := filepath.Join(dir, "in.sp")
	out := filepath.Join(dir, "out.mgc")
	if err := binmat.Write(in, frames, binmat.Float32); err != nil {
		return nil, fmt.Errorf("sptk: %w", err)
	}

	if err := a.Runner.Run(ctx, out, a.Config.SPTKBin("mcep"), mcepArgs(p, fftLen, in)...); err != nil {
		return nil, fmt.Errorf("sptk: %w", err)
	}

	mcep, err := binmat.Read(out, p.Coeffs, binmat.Float32)
	if err != nil {
		return nil, fmt.Errorf("sptk: %w", err)
	}
	if len(mcep) != rows {
		return nil, fmt.Errorf("sptk: %w: mcep returned %d frames, want %d", core.ErrExternalTool, len(mcep), rows)
	}

	return mcep, nil
}

func mcepArgs(p Params, fftLen int, in string) []string {
	return []string{
		"-a", strconv.FormatFloat(p.Alpha, 'f', 2, 64),
		"-m", strconv.Itoa(p.Coeffs - 1),
		"-l", strconv.Itoa(fftLen),
		"-e", "1.0E-8",
		"-j", "0",
		"-f", "0.0",
		"-q", strconv.Itoa(int(p.InputType)),
		in,
	}
}
