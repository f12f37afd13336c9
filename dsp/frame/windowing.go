package frame

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/window"
)

// Extend selects which ends of the signal are zero-padded before framing.
type Extend int

const (
	// ExtendNone frames the signal as is.
	ExtendNone Extend = iota
	// ExtendBeg prepends frameLen/2 zeros so the first frame is centered on
	// the first sample.
	ExtendBeg
	// ExtendEnd appends frameLen zeros so the tail is fully covered.
	ExtendEnd
	// ExtendBoth applies ExtendBeg and ExtendEnd.
	ExtendBoth
)

// ParseExtend maps "none", "beg", "end" or "both" to an Extend.
func ParseExtend(s string) (Extend, error) {
	switch s {
	case "none", "":
		return ExtendNone, nil
	case "beg":
		return ExtendBeg, nil
	case "end":
		return ExtendEnd, nil
	case "both":
		return ExtendBoth, nil
	default:
		return 0, fmt.Errorf("frame: %w: unknown extend mode %q", core.ErrInvalidParameter, s)
	}
}

// Windowing cuts signal into frames of frameLen samples spaced by shift
// samples and multiplies each frame by fn(frameLen). A nil fn selects a
// Hann window.
//
// The frame count is floor(1 + (len-frameLen)/shift) after padding; a
// signal shorter than one frame yields no frames.
func Windowing(signal []float64, frameLen, shift int, fn window.Func, extend Extend) ([][]float64, error) {
	if frameLen <= 0 || shift <= 0 {
		return nil, fmt.Errorf("frame: %w: frame length and shift must be > 0: %d, %d",
			core.ErrInvalidParameter, frameLen, shift)
	}
	if extend < ExtendNone || extend > ExtendBoth {
		return nil, fmt.Errorf("frame: %w: unknown extend mode %d", core.ErrInvalidParameter, extend)
	}
	if fn == nil {
		fn = window.Hanning
	}

	win := fn(frameLen)
	if len(win) != frameLen {
		return nil, fmt.Errorf("frame: %w: window has %d samples, want %d", core.ErrShapeMismatch, len(win), frameLen)
	}

	sig := signal
	if extend == ExtendBeg || extend == ExtendBoth {
		sig = append(make([]float64, frameLen/2), sig...)
	}
	if extend == ExtendEnd || extend == ExtendBoth {
		sig = append(append([]float64(nil), sig...), make([]float64, frameLen)...)
	}

	n := int(math.Floor(1 + float64(len(sig)-frameLen)/float64(shift)))
	if n <= 0 {
		return [][]float64{}, nil
	}

	frames := core.NewMatrix(n, frameLen)
	for t := range frames {
		start := t * shift
		vecmath.MulBlock(frames[t], sig[start:start+frameLen], win)
	}

	return frames, nil
}

// NumFrames returns the number of frames a signal of sigLen samples spans
// at a shift of shiftMs milliseconds, counting a partial last frame.
func NumFrames(sigLen int, shiftMs, fs float64) (int, error) {
	shift := math.RoundToEven(fs * shiftMs / 1000)
	if shift <= 0 {
		return 0, fmt.Errorf("frame: %w: shift of %v ms at %v Hz rounds to zero samples",
			core.ErrInvalidParameter, shiftMs, fs)
	}

	return int(math.Ceil(1 + float64(sigLen-1)/shift)), nil
}
