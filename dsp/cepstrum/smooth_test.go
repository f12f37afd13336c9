package cepstrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func TestSmoothKeepsConstant(t *testing.T) {
	row := testutil.DC(-3.25, 257)
	got, err := Smooth([][]float64{row}, DefaultCoeffs, DefaultFadeRatio)
	if err != nil {
		t.Fatalf("Smooth: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got[0], row, 1e-9)
}

func TestSmoothWithAllCoefficientsIsIdentity(t *testing.T) {
	row := core.LogSlice(testutil.PositiveSpectrum(11, 65))
	got, err := SmoothFrame(row, len(row), 0)
	if err != nil {
		t.Fatalf("SmoothFrame: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got, row, 1e-9)
}

func TestSmoothReducesRipple(t *testing.T) {
	const n = 257
	row := make([]float64, n)
	for k := range row {
		row[k] = math.Cos(2*math.Pi*float64(k)/8) + 0.002*float64(k)
	}

	got, err := SmoothFrame(row, 20, DefaultFadeRatio)
	if err != nil {
		t.Fatalf("SmoothFrame: %v", err)
	}
	if len(got) != n {
		t.Fatalf("len=%d, want %d", len(got), n)
	}

	ripple := func(v []float64) float64 {
		sum := 0.0
		for k := 1; k < len(v); k++ {
			sum += math.Abs(v[k] - v[k-1])
		}
		return sum
	}
	if ripple(got) > 0.1*ripple(row) {
		t.Fatalf("smoothing left too much ripple: %v vs %v", ripple(got), ripple(row))
	}
}

func TestSmoothRejectsInvalidParameters(t *testing.T) {
	row := testutil.Ones(17)
	for _, nc := range []int{0, 18} {
		if _, err := SmoothFrame(row, nc, 0.2); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("nc=%d: err=%v", nc, err)
		}
	}
	if _, err := SmoothFrame(row, 8, 1.5); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("fade ratio: err=%v", err)
	}
	if _, err := Smooth([][]float64{{1, 2}, {1}}, 1, 0); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("ragged: err=%v", err)
	}
}

func TestMinimumPhaseSpectrumKeepsMagnitude(t *testing.T) {
	mag := testutil.PositiveSpectrum(2, 129)
	got, err := MinimumPhaseSpectrum([][]float64{mag})
	if err != nil {
		t.Fatalf("MinimumPhaseSpectrum: %v", err)
	}
	if len(got[0]) != len(mag) {
		t.Fatalf("len=%d, want %d", len(got[0]), len(mag))
	}
	for k, v := range got[0] {
		if math.Abs(cmplx.Abs(v)-mag[k]) > 1e-9*mag[k] {
			t.Fatalf("bin %d: |X|=%v, want %v", k, cmplx.Abs(v), mag[k])
		}
	}
	if math.Abs(imag(got[0][0])) > 1e-12 {
		t.Fatalf("DC bin must be real: %v", got[0][0])
	}
}
