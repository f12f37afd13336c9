// Package reaper extracts glottal pitch marks with the REAPER binary.
package reaper

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/fileio/audio"
	"github.com/cwbudde/algo-vocoder/fileio/est"
	"github.com/cwbudde/algo-vocoder/tools"
)

// Args are the fixed REAPER flags: high-pass filtering, an F0 search range
// of 50-400 Hz, autocorrelation voicing and a 5 ms interval.
var Args = []string{"-s", "-x", "400", "-m", "50", "-a", "-u", "0.005"}

// Extractor runs REAPER on in-memory signals.
type Extractor struct {
	Config tools.Config
	Runner *tools.Runner
}

// New returns an Extractor for cfg logging through runner.
func New(cfg tools.Config, runner *tools.Runner) *Extractor {
	if runner == nil {
		runner = tools.NewRunner(nil)
	}
	return &Extractor{Config: cfg, Runner: runner}
}

// PitchMarks returns pitch-mark times in seconds and their voicing flags
// (1 voiced, 0 unvoiced). Marks that do not strictly increase are dropped,
// as is a final mark at or past the last sample.
func (e *Extractor) PitchMarks(ctx context.Context, signal []float64, fs int) (times, voicing []float64, err error) {
	if len(signal) < 2 || fs <= 0 {
		return nil, nil, fmt.Errorf("reaper: %w: need >= 2 samples and fs > 0, got %d, %d", core.ErrInvalidParameter, len(signal), fs)
	}

	dir, cleanup, err := e.Config.Scratch("reaper-*")
	if err != nil {
		return nil, nil, err
	}
	defer cleanup()

	wav := filepath.Join(dir, "in.wav")
	pm := filepath.Join(dir, "out.pm")
	if err := audio.Write(wav, signal, fs, audio.WithoutNormalize()); err != nil {
		return nil, nil, fmt.Errorf("reaper: %w", err)
	}

	args := append(append([]string(nil), Args...), "-i", wav, "-p", pm)
	if err := e.Runner.Run(ctx, "", e.Config.ReaperBin, args...); err != nil {
		return nil, nil, fmt.Errorf("reaper: %w", err)
	}
	if err := tools.RequireOutput(pm); err != nil {
		return nil, nil, fmt.Errorf("reaper: %w", err)
	}

	rows, err := est.Read(pm, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("reaper: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("reaper: %w: no pitch marks", core.ErrExternalTool)
	}

	times = make([]float64, len(rows))
	voicing = make([]float64, len(rows))
	for i, row := range rows {
		times[i], voicing[i] = row[0], row[1]
	}
	times, voicing = est.DropNonIncreasing(times, voicing)

	if last := len(times) - 1; times[last]*float64(fs) >= float64(len(signal)-1) {
		times, voicing = times[:last], voicing[:last]
	}

	return times, voicing, nil
}
