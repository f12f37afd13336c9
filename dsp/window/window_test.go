package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func TestGenerateAllTypes(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman, TypeSine, TypeBartlett} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}
			testutil.RequireFinite(t, w)
			for i := 0; i < 32; i++ {
				if math.Abs(w[i]-w[63-i]) > 1e-12 {
					t.Fatalf("not symmetric at %d: %v vs %v", i, w[i], w[63-i])
				}
			}
		})
	}
}

func TestGoldenVectors(t *testing.T) {
	hann := []float64{
		0.0, 0.1882550990706332, 0.6112604669781572, 0.9504844339512095,
		0.9504844339512095, 0.6112604669781573, 0.1882550990706333, 0.0,
	}
	hamming := []float64{
		0.08, 0.25319469114498255, 0.6423596296199047, 0.9544456792351128,
		0.9544456792351128, 0.6423596296199048, 0.25319469114498266, 0.08,
	}

	testutil.RequireSliceNearlyEqual(t, Hanning(8), hann, 1e-10)
	testutil.RequireSliceNearlyEqual(t, Hamming(8), hamming, 1e-10)
	testutil.RequireSliceNearlyEqual(t, Sine(3), []float64{0, 1, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Blackman(3), []float64{0, 1, 0}, 1e-12)
}

func TestLengthOneMatchesNumpy(t *testing.T) {
	if w := Hanning(1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Hanning(1) = %v, want [1]", w)
	}
	if w := Sine(1); len(w) != 1 || w[0] != 0 {
		t.Fatalf("Sine(1) = %v, want [0]", w)
	}
	if got := Generate(TypeHann, 0); got != nil {
		t.Fatalf("expected nil for zero length, got %v", got)
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())
	if math.Abs(a[15]-b[15]) < 1e-12 {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestApply(t *testing.T) {
	buf := []float64{1, 2, 3, 4}
	Apply(TypeRectangular, buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{1, 2, 3, 4}, 0)

	Apply(TypeHann, buf)
	if buf[0] != 0 || buf[3] != 0 {
		t.Fatalf("hann edges should be 0, got %v", buf)
	}

	out, err := ApplyCoefficients([]float64{1, 2, 3}, []float64{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{0.5, 1, 1.5}, 1e-12)

	if _, err := ApplyCoefficients([]float64{1}, []float64{1, 2}); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("hanning")
	if err != nil || typ != TypeHann {
		t.Fatalf("ParseType(hanning) = %v, %v", typ, err)
	}
	if _, err := ParseType("kaiser-bessel"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
