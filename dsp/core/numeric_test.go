package core

import (
	"errors"
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestProtectedLog(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{name: "zero", in: 0, want: Magic},
		{name: "negative", in: -3, want: Magic},
		{name: "nan", in: math.NaN(), want: Magic},
		{name: "one", in: 1, want: 0},
		{name: "e", in: math.E, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Log(tt.in)
			if !NearlyEqual(got, tt.want, 1e-12) {
				t.Fatalf("Log(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogFramesDoesNotMutate(t *testing.T) {
	in := [][]float64{{0, 1}, {math.E, -1}}
	out := LogFrames(in)
	if in[0][0] != 0 || in[1][1] != -1 {
		t.Fatal("input was modified")
	}
	if out[0][0] != Magic || out[0][1] != 0 || out[1][1] != Magic {
		t.Fatalf("unexpected output %v", out)
	}
}

func TestDBConversions(t *testing.T) {
	if got := DB(10); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("DB(10) = %v, want 20", got)
	}
	if got := InvDB(DB(0.25)); !NearlyEqual(got, 0.25, 1e-12) {
		t.Fatalf("InvDB(DB(0.25)) = %v", got)
	}
	if !math.IsInf(DB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if got := DBToLog(LogToDB(1.5)); !NearlyEqual(got, 1.5, 1e-12) {
		t.Fatalf("DBToLog(LogToDB(1.5)) = %v", got)
	}
	if got := LogToDB(math.Log(10)); !NearlyEqual(got, 20, 1e-12) {
		t.Fatalf("LogToDB(ln 10) = %v, want 20", got)
	}
}

func TestRoundToIntHalfEven(t *testing.T) {
	cases := map[float64]int{0.5: 0, 1.5: 2, 2.5: 2, -0.5: 0, 2.49: 2, 41.9999: 42}
	for in, want := range cases {
		if got := RoundToInt(in); got != want {
			t.Fatalf("RoundToInt(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[float64]int{0: 2, 1: 2, 2: 2, 3: 4, 400: 512, 512: 512, 513: 1024}
	for in, want := range cases {
		if got := NextPowerOfTwo(in); got != want {
			t.Fatalf("NextPowerOfTwo(%v) = %d, want %d", in, got, want)
		}
	}
	if !IsPowerOfTwo(1024) || IsPowerOfTwo(118) || IsPowerOfTwo(0) {
		t.Fatal("IsPowerOfTwo misclassified")
	}
}

func TestBinConversions(t *testing.T) {
	if got := HzToBin(4000, 512, 16000); got != 128 {
		t.Fatalf("HzToBin = %v, want 128", got)
	}
	if got := BinToHz(128, 512, 16000); got != 4000 {
		t.Fatalf("BinToHz = %v, want 4000", got)
	}
}

func TestF0ToLogF0(t *testing.T) {
	out := F0ToLogF0([]float64{0, 100})
	if out[0] != Magic {
		t.Fatalf("unvoiced = %v, want Magic", out[0])
	}
	if !NearlyEqual(out[1], math.Log(100), 1e-12) {
		t.Fatalf("voiced = %v", out[1])
	}
}

func TestCheckMatrix(t *testing.T) {
	rows, cols, err := CheckMatrix(NewMatrix(3, 4))
	if err != nil || rows != 3 || cols != 4 {
		t.Fatalf("CheckMatrix = %d, %d, %v", rows, cols, err)
	}

	_, _, err = CheckMatrix([][]float64{{1, 2}, {3}})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestCloneAndFlatten(t *testing.T) {
	m := [][]float64{{1, 2}, {3, 4}}
	c := CloneMatrix(m)
	c[0][0] = 9
	if m[0][0] != 1 {
		t.Fatal("clone aliases input")
	}

	flat := Flatten(m)
	if len(flat) != 4 || flat[2] != 3 {
		t.Fatalf("Flatten = %v", flat)
	}
}
