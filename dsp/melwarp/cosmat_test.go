package melwarp

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func TestMcepToSpConstant(t *testing.T) {
	mcep := [][]float64{{0.5, 0, 0, 0}}
	tests := []struct {
		out  Scale
		want float64
	}{
		{out: OutLog, want: 0.5},
		{out: OutAbs, want: math.Exp(0.5)},
		{out: OutDB, want: 0.5 * 20 / math.Ln10},
	}
	for _, tc := range tests {
		t.Run(tc.out.String(), func(t *testing.T) {
			sp, err := McepToSp(mcep, 9, 0.77, tc.out)
			if err != nil {
				t.Fatalf("McepToSp: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, sp[0], testutil.DC(tc.want, 9), 1e-12)
		})
	}
}

func TestMcepToSpLinearBasis(t *testing.T) {
	sp, err := McepToSp([][]float64{{0, 1}}, 3, 0, OutLog)
	if err != nil {
		t.Fatalf("McepToSp: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, sp[0], []float64{1, 0, -1}, 1e-12)
}

func TestSpMelUnwarpZeroAlphaReproducesSmoothSpectrum(t *testing.T) {
	const n = 65
	logSp := make([]float64, n)
	for j := range logSp {
		th := math.Pi * float64(j) / (n - 1)
		logSp[j] = 1 + 0.5*math.Cos(th) + 0.2*math.Cos(3*th)
	}

	got, err := SpMelUnwarp([][]float64{logSp}, n, 0, InLog)
	if err != nil {
		t.Fatalf("SpMelUnwarp: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, got[0], logSp, 1e-9)

	abs, err := SpMelUnwarp([][]float64{core.MapFrames([][]float64{logSp}, math.Exp)[0]}, n, 0, InAbs)
	if err != nil {
		t.Fatalf("SpMelUnwarp abs: %v", err)
	}
	for j := range abs[0] {
		if math.Abs(math.Log(abs[0][j])-logSp[j]) > 1e-9 {
			t.Fatalf("bin %d: got %v, want %v", j, math.Log(abs[0][j]), logSp[j])
		}
	}
}

func TestSpMelUnwarpOutputWidth(t *testing.T) {
	mel := testutil.Frames(testutil.PositiveSpectrum(3, 60), 4)
	got, err := SpMelUnwarp(mel, 257, DefaultAlpha, InAbs)
	if err != nil {
		t.Fatalf("SpMelUnwarp: %v", err)
	}
	if len(got) != 4 || len(got[0]) != 257 {
		t.Fatalf("shape %dx%d, want 4x257", len(got), len(got[0]))
	}
	for _, row := range got {
		testutil.RequireFinite(t, row)
	}
}

func TestLinearLogSpectrumFromMcep(t *testing.T) {
	got, err := LinearLogSpectrumFromMcep([][]float64{{0.25, 0.5}}, 8)
	if err != nil {
		t.Fatalf("LinearLogSpectrumFromMcep: %v", err)
	}
	want := make([]float64, 5)
	for k := range want {
		want[k] = 0.25 + 2*0.5*math.Cos(2*math.Pi*float64(k)/8)
	}
	testutil.RequireSliceNearlyEqual(t, got[0], want, 1e-12)

	if _, err := LinearLogSpectrumFromMcep([][]float64{make([]float64, 6)}, 8); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("too many coefficients: err=%v", err)
	}
}

type fakeAnalyzer struct {
	got  AnalysisParams
	mcep [][]float64
	err  error
}

func (f *fakeAnalyzer) MelCepstrum(_ context.Context, frames [][]float64, p AnalysisParams) ([][]float64, error) {
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(frames))
	for i := range out {
		out[i] = append([]float64(nil), f.mcep[0]...)
	}
	return out, nil
}

func TestSpMelWarpProjectsLinearly(t *testing.T) {
	fa := &fakeAnalyzer{mcep: [][]float64{{0, 1, 0}}}
	sp := testutil.Frames(testutil.Ones(129), 2)

	got, err := SpMelWarp(context.Background(), fa, sp, 3, 0.77, SpectrumLog)
	if err != nil {
		t.Fatalf("SpMelWarp: %v", err)
	}
	want := AnalysisParams{Coeffs: 3, Alpha: 0.77, FFTLen: 256, InputType: SpectrumLog}
	if fa.got != want {
		t.Fatalf("params = %+v, want %+v", fa.got, want)
	}
	testutil.RequireMatrixNearlyEqual(t, got, [][]float64{{1, 0, -1}, {1, 0, -1}}, 1e-12)
}

func TestSpMelWarpErrors(t *testing.T) {
	boom := errors.New("boom")
	fa := &fakeAnalyzer{err: boom}
	if _, err := SpMelWarp(context.Background(), fa, [][]float64{{1, 2, 3}}, 3, 0.5, SpectrumAbs); !errors.Is(err, boom) {
		t.Fatalf("analyzer error not propagated: %v", err)
	}
	if _, err := SpMelWarp(context.Background(), fa, [][]float64{{1, 2, 3}}, 3, 0.5, SpectrumType(7)); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("bad type: err=%v", err)
	}
}

func TestParseScale(t *testing.T) {
	for name, want := range map[string]Scale{"abs": ScaleAbs, "db": ScaleDB, "log": ScaleLog} {
		got, err := ParseScale(name)
		if err != nil || got != want {
			t.Fatalf("ParseScale(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseScale("mel"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("unknown scale: err=%v", err)
	}
}
