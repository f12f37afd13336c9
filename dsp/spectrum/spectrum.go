package spectrum

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(in []complex128, re, im []float64) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	split(in, re, im)
	vecmath.Magnitude(out, re, im)
	putScratch(buf)

	return out
}

// MagnitudeFrames applies [Magnitude] to every frame.
func MagnitudeFrames(frames [][]complex128) [][]float64 {
	out := make([][]float64, len(frames))
	for i, fr := range frames {
		out[i] = Magnitude(fr)
	}

	return out
}

// RMS returns the per-frame RMS of half magnitude spectra computed for an
// nFFT-point transform. Frames may hold fewer bins than nFFT/2+1; bins past
// nFFT/2 are ignored. Interior bins count twice, standing in for their
// Hermitian mirror.
func RMS(frames [][]float64, nFFT int) ([]float64, error) {
	if nFFT < 2 {
		return nil, fmt.Errorf("spectrum: %w: nFFT must be >= 2: %d", core.ErrInvalidParameter, nFFT)
	}
	if _, _, err := core.CheckMatrix(frames); err != nil {
		return nil, fmt.Errorf("spectrum: %w", err)
	}

	half := nFFT / 2
	out := make([]float64, len(frames))
	for i, fr := range frames {
		sum := 0.0
		for k, v := range fr {
			if k > half {
				break
			}
			p := v * v
			if k > 0 && k < half {
				p *= 2
			}
			sum += p
		}
		out[i] = math.Sqrt(sum / float64(nFFT))
	}

	return out, nil
}
