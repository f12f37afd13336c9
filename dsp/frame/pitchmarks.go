package frame

import (
	"fmt"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Number is the element type accepted by the pitch-mark conversions:
// sample indices or times in seconds.
type Number interface {
	~int | ~int64 | ~float64
}

// ShiftToPM converts a shift sequence into absolute pitch-mark positions by
// cumulative summation.
func ShiftToPM[T Number](shifts []T) []T {
	out := make([]T, len(shifts))
	var acc T
	for i, s := range shifts {
		acc += s
		out[i] = acc
	}

	return out
}

// PMToShift converts pitch-mark positions into the shift sequence, the
// successive differences with the first mark measured from zero. It is the
// exact inverse of [ShiftToPM].
func PMToShift[T Number](pm []T) []T {
	out := make([]T, len(pm))
	var prev T
	for i, p := range pm {
		out[i] = p - prev
		prev = p
	}

	return out
}

// ShiftPad places frame at leftPad inside a zeroed buffer of total samples.
func ShiftPad(frame []float64, leftPad, total int) ([]float64, error) {
	if leftPad < 0 {
		return nil, fmt.Errorf("frame: %w: left padding must be >= 0: %d", core.ErrInvalidParameter, leftPad)
	}
	if leftPad+len(frame) > total {
		return nil, fmt.Errorf("frame: %w: frame of %d samples at offset %d exceeds %d",
			core.ErrShapeMismatch, len(frame), leftPad, total)
	}

	out := make([]float64, total)
	copy(out[leftPad:], frame)

	return out, nil
}

// ListToMatrix lays pitch-synchronous frames of varying length into an
// nFFT-wide matrix. Frame i is placed so that the sample shifts[i] positions
// into it lands on the centre bin nFFT/2.
func ListToMatrix(frames [][]float64, shifts []int, nFFT int) ([][]float64, error) {
	if len(frames) != len(shifts) {
		return nil, fmt.Errorf("frame: %w: %d frames for %d shifts", core.ErrShapeMismatch, len(frames), len(shifts))
	}

	half := nFFT/2 + 1
	out := make([][]float64, len(shifts))
	for i := range shifts {
		row, err := ShiftPad(frames[i], half-shifts[i]-1, nFFT)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out[i] = row
	}

	return out, nil
}
