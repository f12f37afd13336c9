package binmat

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

func TestRoundTrip(t *testing.T) {
	m := [][]float64{
		{0, 1, -2.5, 0.1},
		{1e-3, 65504, -0.333333, 3.14159},
	}

	tests := []struct {
		prec Precision
		tol  float64 // relative
	}{
		{Float64, 0},
		{Float32, 1e-7},
		{Float16, 1e-3},
	}

	for _, tt := range tests {
		t.Run(tt.prec.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "m.bin")
			if err := Write(path, m, tt.prec); err != nil {
				t.Fatalf("Write: %v", err)
			}
			got, err := Read(path, 4, tt.prec)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if len(got) != 2 {
				t.Fatalf("rows = %d, want 2", len(got))
			}
			for i := range m {
				for j := range m[i] {
					want := m[i][j]
					if d := math.Abs(got[i][j] - want); d > tt.tol*math.Abs(want) {
						t.Fatalf("[%d][%d] = %g, want %g", i, j, got[i][j], want)
					}
				}
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, [][]float64{{1, 2}}, Float16); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// 1.0 = 0x3c00, 2.0 = 0x4000 in IEEE half precision.
	want := []byte{0x00, 0x3c, 0x00, 0x40}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("bytes = % x, want % x", buf.Bytes(), want)
	}
}

func TestDecodeReshapes(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, [][]float64{{1, 2, 3, 4, 5, 6}}, Float32); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(&buf, 2, Float32)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 3 || got[2][1] != 6 {
		t.Fatalf("Decode = %v", got)
	}
}

func TestErrors(t *testing.T) {
	if _, err := Decode(bytes.NewReader(make([]byte, 12)), 2, Float64); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("partial row err = %v, want ErrMalformedInput", err)
	}
	if _, err := Decode(bytes.NewReader(nil), 0, Float64); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("cols=0 err = %v, want ErrInvalidParameter", err)
	}
	if err := Encode(&bytes.Buffer{}, [][]float64{{1}, {1, 2}}, Float64); !errors.Is(err, core.ErrShapeMismatch) {
		t.Fatalf("ragged err = %v, want ErrShapeMismatch", err)
	}
	if _, err := ParsePrecision("int8"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("ParsePrecision err = %v", err)
	}
	if p, err := ParsePrecision("half"); err != nil || p != Float16 {
		t.Fatalf("ParsePrecision(half) = %v, %v", p, err)
	}
}

func TestEmpty(t *testing.T) {
	got, err := Decode(bytes.NewReader(nil), 3, Float32)
	if err != nil || len(got) != 0 {
		t.Fatalf("Decode empty = %v, %v", got, err)
	}
}
