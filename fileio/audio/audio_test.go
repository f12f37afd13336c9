package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/internal/testutil"
)

func TestWriteReadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sine.wav")
	sig := testutil.DeterministicSine(440, 16000, 0.5, 1600)

	if err := Write(path, sig, 16000, WithoutNormalize()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, fs, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if fs != 16000 {
		t.Fatalf("fs = %d, want 16000", fs)
	}
	if len(got) != len(sig) {
		t.Fatalf("len = %d, want %d", len(got), len(sig))
	}
	for i := range sig {
		if math.Abs(got[i]-sig[i]) > 1e-4 {
			t.Fatalf("sample %d = %g, want %g", i, got[i], sig[i])
		}
	}
}

func TestWriteNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loud.wav")
	sig := []float64{0, 2, -4, 1}

	if err := Write(path, sig, 8000); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []float64{0, 0.49, -0.98, 0.245}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-4 {
			t.Fatalf("sample %d = %g, want %g", i, got[i], want[i])
		}
	}
	if sig[2] != -4 {
		t.Fatal("Write modified its input")
	}
}

func TestWriteCustomPeakAndSilence(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "half.wav")
	if err := Write(path, []float64{0.1, -0.2}, 8000, WithNormalize(0.5)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if math.Abs(got[1]+0.5) > 1e-4 {
		t.Fatalf("peak sample = %g, want -0.5", got[1])
	}

	silent := filepath.Join(dir, "silent.wav")
	if err := Write(silent, make([]float64, 10), 8000); err != nil {
		t.Fatalf("Write silence: %v", err)
	}
	got, _, err = Read(silent)
	if err != nil {
		t.Fatalf("Read silence: %v", err)
	}
	for i, v := range got {
		if v != 0 {
			t.Fatalf("sample %d = %g, want 0", i, v)
		}
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()

	if err := Write(filepath.Join(dir, "x.flac"), []float64{0}, 16000); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Write flac err = %v, want ErrInvalidParameter", err)
	}
	if err := Write(filepath.Join(dir, "x.wav"), []float64{0}, 0); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Write fs=0 err = %v, want ErrInvalidParameter", err)
	}
	if _, _, err := Read(filepath.Join(dir, "x.ogg")); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("Read ogg err = %v, want ErrInvalidParameter", err)
	}
	if _, _, err := Read(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Read missing err = %v, want ErrNotExist", err)
	}

	junk := filepath.Join(dir, "junk.wav")
	if err := os.WriteFile(junk, []byte("not a riff file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(junk); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("Read junk err = %v, want ErrMalformedInput", err)
	}

	junkFlac := filepath.Join(dir, "junk.flac")
	if err := os.WriteFile(junkFlac, []byte("not a flac file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Read(junkFlac); !errors.Is(err, core.ErrMalformedInput) {
		t.Fatalf("Read junk flac err = %v, want ErrMalformedInput", err)
	}
}
