// Package audio reads and writes mono audio files.
//
// WAV is read and written through faiface/beep; FLAC is read through
// mewkiz/flac. Multichannel files are reduced to their first channel.
package audio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/mewkiz/flac"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// DefaultPeak is the absolute peak a written signal is scaled to unless
// normalisation is disabled.
const DefaultPeak = 0.98

// Read decodes the first channel of a WAV or FLAC file into samples in
// [-1, 1] and returns them with the sampling rate in Hz.
func Read(path string) ([]float64, int, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return readWAV(path)
	case ".flac":
		return readFLAC(path)
	default:
		return nil, 0, fmt.Errorf("audio: %w: unsupported extension %q", core.ErrInvalidParameter, ext)
	}
}

func readWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: %w", err)
	}

	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("audio: %w: %s: %v", core.ErrMalformedInput, path, err)
	}
	defer stream.Close()

	out := make([]float64, 0, stream.Len())
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		for i := range buf[:n] {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("audio: %w: %s: %v", core.ErrMalformedInput, path, err)
	}

	return out, int(format.SampleRate), nil
}

func readFLAC(path string) ([]float64, int, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("audio: %w: %s: %v", core.ErrMalformedInput, path, err)
	}
	defer stream.Close()

	bps := stream.Info.BitsPerSample
	if bps == 0 || bps > 32 {
		return nil, 0, fmt.Errorf("audio: %w: %s: %d bits per sample", core.ErrMalformedInput, path, bps)
	}
	scale := 1 / float64(uint64(1)<<(bps-1))

	out := make([]float64, 0, int(stream.Info.NSamples))
	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("audio: %w: %s: %v", core.ErrMalformedInput, path, err)
		}
		for _, s := range frame.Subframes[0].Samples {
			out = append(out, float64(s)*scale)
		}
	}

	return out, int(stream.Info.SampleRate), nil
}

// WriteConfig controls Write.
type WriteConfig struct {
	// Peak is the target absolute maximum; zero disables normalisation.
	Peak float64
	// Precision is the sample width in bytes.
	Precision int
}

// WriteOption mutates a WriteConfig.
type WriteOption func(*WriteConfig)

// DefaultWriteConfig normalises to DefaultPeak and writes 16-bit PCM.
func DefaultWriteConfig() WriteConfig {
	return WriteConfig{Peak: DefaultPeak, Precision: 2}
}

// WithNormalize scales the signal so its absolute maximum equals peak.
func WithNormalize(peak float64) WriteOption {
	return func(cfg *WriteConfig) {
		if peak > 0 {
			cfg.Peak = peak
		}
	}
}

// WithoutNormalize writes samples unchanged. Values outside [-1, 1] clip.
func WithoutNormalize() WriteOption {
	return func(cfg *WriteConfig) {
		cfg.Peak = 0
	}
}

// WithPrecision sets the PCM sample width to 1, 2 or 3 bytes.
func WithPrecision(bytes int) WriteOption {
	return func(cfg *WriteConfig) {
		if bytes >= 1 && bytes <= 3 {
			cfg.Precision = bytes
		}
	}
}

// Write stores signal as a mono PCM WAV file. The format follows the file
// extension; only ".wav" is writable.
func Write(path string, signal []float64, fs int, opts ...WriteOption) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".wav" {
		return fmt.Errorf("audio: %w: cannot write extension %q", core.ErrInvalidParameter, ext)
	}
	if fs <= 0 {
		return fmt.Errorf("audio: %w: sample rate must be > 0: %d", core.ErrInvalidParameter, fs)
	}

	cfg := DefaultWriteConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	samples := normalize(signal, cfg.Peak)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(fs),
		NumChannels: 1,
		Precision:   cfg.Precision,
	}
	if err := wav.Encode(f, sliceStreamer(samples), format); err != nil {
		f.Close()
		return fmt.Errorf("audio: encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}

// normalize returns a scaled copy; silent input is returned unscaled.
func normalize(signal []float64, peak float64) []float64 {
	out := append([]float64(nil), signal...)
	if peak <= 0 {
		return out
	}

	maxAbs := 0.0
	for _, v := range out {
		maxAbs = math.Max(maxAbs, math.Abs(v))
	}
	if maxAbs == 0 {
		return out
	}

	g := peak / maxAbs
	for i := range out {
		out[i] *= g
	}
	return out
}

func sliceStreamer(samples []float64) beep.Streamer {
	pos := 0
	return beep.StreamerFunc(func(buf [][2]float64) (int, bool) {
		if pos >= len(samples) {
			return 0, false
		}
		n := copy2(buf, samples[pos:])
		pos += n
		return n, true
	})
}

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
