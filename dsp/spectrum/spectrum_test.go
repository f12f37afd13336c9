package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func TestMagnitude(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	testutil.RequireSliceNearlyEqual(t, mag, []float64{5, math.Sqrt2, 0}, 1e-12)

	if Magnitude(nil) != nil {
		t.Fatal("empty input should return nil")
	}
}

func TestMagnitudeFrames(t *testing.T) {
	got := MagnitudeFrames([][]complex128{{3 + 4i}, {0 - 2i}})
	testutil.RequireMatrixNearlyEqual(t, got, [][]float64{{5}, {2}}, 1e-12)
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name  string
		frame []float64
		nFFT  int
		want  float64
	}{
		{name: "dc only", frame: []float64{4, 0, 0, 0, 0}, nFFT: 8, want: 4 / math.Sqrt(8)},
		{name: "flat full half", frame: []float64{1, 1, 1, 1, 1}, nFFT: 8, want: 1},
		{name: "fewer bins than half", frame: []float64{1, 1, 1}, nFFT: 8, want: math.Sqrt(5.0 / 8)},
		{name: "extra bins ignored", frame: []float64{1, 1, 1, 1, 1, 9, 9}, nFFT: 8, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RMS([][]float64{tc.frame}, tc.nFFT)
			if err != nil {
				t.Fatalf("RMS: %v", err)
			}
			if math.Abs(got[0]-tc.want) > 1e-12 {
				t.Fatalf("got %v, want %v", got[0], tc.want)
			}
		})
	}
}

func TestRMSMatchesTimeDomainNorm(t *testing.T) {
	// A unit cosine at bin 2 of an 8-point transform has magnitude 4 at bins
	// 2 and 6; its time-domain L2 norm is sqrt(8/2).
	got, err := RMS([][]float64{{0, 0, 4, 0, 0}}, 8)
	if err != nil {
		t.Fatalf("RMS: %v", err)
	}
	if math.Abs(got[0]-2) > 1e-12 {
		t.Fatalf("got %v, want 2", got[0])
	}
}

func TestRMSRejectsInvalidInput(t *testing.T) {
	if _, err := RMS([][]float64{{1}}, 1); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("nFFT 1: err=%v", err)
	}
	if _, err := RMS([][]float64{{1, 2}, {1}}, 8); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("ragged: err=%v", err)
	}
}
