package cepstrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/dft"
	"github.com/cwbudde/algo-vocoder/dsp/spectrum"
	"github.com/cwbudde/algo-vocoder/dsp/window"
)

// Default liftering parameters for [Smooth].
const (
	DefaultCoeffs    = 60
	DefaultFadeRatio = 0.2
)

// Smooth lifters every half log spectrum in logFrames: the minimum-phase
// cepstrum is cut after ncTotal coefficients, the last
// round(fadeToTotal*ncTotal) kept coefficients are tapered by the falling
// half of a Hann window, and the result is transformed back to a half
// spectrum in the input's log scale.
func Smooth(logFrames [][]float64, ncTotal int, fadeToTotal float64) ([][]float64, error) {
	if _, _, err := core.CheckMatrix(logFrames); err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	out := make([][]float64, len(logFrames))
	for i, fr := range logFrames {
		sm, err := SmoothFrame(fr, ncTotal, fadeToTotal)
		if err != nil {
			return nil, err
		}
		out[i] = sm
	}

	return out, nil
}

// SmoothFrame is the single-frame form of [Smooth].
func SmoothFrame(logHalf []float64, ncTotal int, fadeToTotal float64) ([]float64, error) {
	half := len(logHalf)
	if ncTotal < 1 || ncTotal > half {
		return nil, fmt.Errorf("cepstrum: %w: coefficient count %d outside [1, %d]",
			core.ErrInvalidParameter, ncTotal, half)
	}
	if fadeToTotal < 0 || fadeToTotal > 1 || math.IsNaN(fadeToTotal) {
		return nil, fmt.Errorf("cepstrum: %w: fade ratio must be within [0, 1]: %v",
			core.ErrInvalidParameter, fadeToTotal)
	}

	c, err := whole(logHalf)
	if err != nil {
		return nil, err
	}
	nFFT := len(c)

	mp := MinimumPhase(c)
	for k := ncTotal; k < len(mp); k++ {
		mp[k] = 0
	}

	ncFade := core.RoundToInt(fadeToTotal * float64(ncTotal))
	if ncFade > 0 {
		taper := window.Hanning(2*ncFade + 3)[ncFade+2 : 2*ncFade+2]
		seg := mp[ncTotal-ncFade : ncTotal]
		for k := range seg {
			seg[k] *= taper[k]
		}
	}

	sp, err := dft.ForwardRealPart(mp, nFFT)
	if err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	return spectrum.Reduce(sp), nil
}

// MinimumPhaseSpectrum returns the complex minimum-phase spectrum whose
// magnitude matches each half magnitude spectrum in magFrames.
func MinimumPhaseSpectrum(magFrames [][]float64) ([][]complex128, error) {
	if _, _, err := core.CheckMatrix(magFrames); err != nil {
		return nil, fmt.Errorf("cepstrum: %w", err)
	}

	out := make([][]complex128, len(magFrames))
	for i, fr := range magFrames {
		c, err := whole(core.LogSlice(fr))
		if err != nil {
			return nil, err
		}

		mp := MinimumPhase(c)
		sp, err := dft.ForwardRealPadded(mp, len(c))
		if err != nil {
			return nil, fmt.Errorf("cepstrum: %w", err)
		}

		row := spectrum.ReduceComplex(sp)
		for k, v := range row {
			row[k] = cmplx.Exp(v)
		}
		out[i] = row
	}

	return out, nil
}
