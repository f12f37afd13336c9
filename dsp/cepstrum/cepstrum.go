package cepstrum

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/dft"
	"github.com/cwbudde/algo-vocoder/dsp/spectrum"
)

// InputKind is the amplitude scale of the spectra passed to [Real].
type InputKind int

const (
	// InputLog is a log-magnitude spectrum in any base, or decibels.
	InputLog InputKind = iota
	// InputAbs is a linear magnitude spectrum; it is converted with the
	// protected natural log first.
	InputAbs
)

// Form selects the cepstrum layout returned by [Real].
type Form int

const (
	// FormCompact keeps half the coefficients with the interior doubled.
	FormCompact Form = iota
	// FormWhole keeps all nFFT coefficients.
	FormWhole
)

// Real returns the real cepstrum of each half spectrum in frames.
//
// For FormCompact, coefficients 1 to n-3 are doubled and the result is
// truncated to the n input bins.
func Real(frames [][]float64, in InputKind, form Form) ([][]float64, error) {
	if in != InputLog && in != InputAbs {
		return nil, fmt.Errorf("cepstrum: %w: unknown input kind %d", core.ErrInvalidParameter, in)
	}
	if form != FormCompact && form != FormWhole {
		return nil, fmt.Errorf("cepstrum: %w: unknown output form %d", core.ErrInvalidParameter, form)
	}
	if _, _, err := core.CheckMatrix(frames); err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	out := make([][]float64, len(frames))
	for i, fr := range frames {
		sp := fr
		if in == InputAbs {
			sp = core.LogSlice(fr)
		}

		c, err := whole(sp)
		if err != nil {
			return nil, err
		}

		if form == FormCompact {
			n := len(fr)
			for k := 1; k < n-2; k++ {
				c[k] *= 2
			}
			c = c[:n:n]
		}
		out[i] = c
	}

	return out, nil
}

// whole returns the nFFT-point real cepstrum of a half log spectrum.
func whole(logHalf []float64) ([]float64, error) {
	full, err := spectrum.Expand(logHalf, spectrum.KindMagnitude)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	c, err := dft.InverseReal(full)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	return c, nil
}

// MinimumPhase folds a whole real cepstrum into its causal minimum-phase
// counterpart: the first len/2+1 coefficients with the interior doubled.
func MinimumPhase(whole []float64) []float64 {
	if len(whole) == 0 {
		return nil
	}

	half := len(whole)/2 + 1
	out := make([]float64, half)
	copy(out, whole)
	for k := 1; k < half-1; k++ {
		out[k] *= 2
	}

	return out
}

// MinimumPhaseFrames applies [MinimumPhase] to every frame.
func MinimumPhaseFrames(frames [][]float64) ([][]float64, error) {
	if _, _, err := core.CheckMatrix(frames); err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	out := make([][]float64, len(frames))
	for i, fr := range frames {
		out[i] = MinimumPhase(fr)
	}

	return out, nil
}
