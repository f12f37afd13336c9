package dft

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func naiveDFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range out {
		for j, v := range x {
			out[k] += v * cmplx.Exp(complex(0, -2*math.Pi*float64(k*j)/float64(n)))
		}
	}
	return out
}

func TestForwardMatchesNaive(t *testing.T) {
	for _, n := range []int{8, 16, 6, 118} {
		sig := testutil.DeterministicNoise(int64(n), 1, n)
		in := toComplex(sig, n)

		got, err := Forward(in)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		want := naiveDFT(in)
		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-9 {
				t.Fatalf("n=%d bin %d: got %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for _, n := range []int{32, 30} {
		sig := testutil.DeterministicNoise(7, 1, n)
		spec, err := ForwardRealPadded(sig, n)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Inverse(spec)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, realPart(back), sig, 1e-10)
	}
}

func TestInverseRealOfConstantSpectrum(t *testing.T) {
	out, err := InverseReal([]float64{1, 1, 1, 1})
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{1, 0, 0, 0}, 1e-12)
}

func TestForwardRealPartPads(t *testing.T) {
	out, err := ForwardRealPart([]float64{1}, 8)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, out, testutil.Ones(8), 1e-12)
}

func TestErrors(t *testing.T) {
	if _, err := Forward(nil); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
	if _, err := ForwardRealPadded([]float64{1}, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
