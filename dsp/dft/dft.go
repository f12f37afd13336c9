package dft

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	dspfft "github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// planPools maps an FFT size to a *sync.Pool of plans for that size.
var planPools sync.Map

func acquirePlan(n int) (*algofft.Plan[complex128], *sync.Pool, error) {
	v, _ := planPools.LoadOrStore(n, &sync.Pool{})
	pool := v.(*sync.Pool)

	if p, ok := pool.Get().(*algofft.Plan[complex128]); ok && p != nil {
		return p, pool, nil
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, nil, fmt.Errorf("dft: failed to create FFT plan of size %d: %w", n, err)
	}

	return plan, pool, nil
}

// Forward returns the DFT of in. The input is not modified.
func Forward(in []complex128) ([]complex128, error) {
	return transform(in, false)
}

// Inverse returns the inverse DFT of in, normalised by 1/N.
func Inverse(in []complex128) ([]complex128, error) {
	return transform(in, true)
}

func transform(in []complex128, inverse bool) ([]complex128, error) {
	n := len(in)
	if n == 0 {
		return nil, fmt.Errorf("dft: %w: empty input", core.ErrShapeMismatch)
	}

	if !core.IsPowerOfTwo(n) {
		if inverse {
			return dspfft.IFFT(in), nil
		}
		return dspfft.FFT(in), nil
	}

	plan, pool, err := acquirePlan(n)
	if err != nil {
		return nil, err
	}
	defer pool.Put(plan)

	out := make([]complex128, n)
	if inverse {
		err = plan.Inverse(out, in)
	} else {
		err = plan.Forward(out, in)
	}
	if err != nil {
		return nil, fmt.Errorf("dft: transform of size %d failed: %w", n, err)
	}

	return out, nil
}

// InverseReal returns the real part of the inverse DFT of a real-valued
// spectrum.
func InverseReal(spec []float64) ([]float64, error) {
	out, err := Inverse(toComplex(spec, len(spec)))
	if err != nil {
		return nil, err
	}

	return realPart(out), nil
}

// ForwardRealPadded returns the DFT of x zero-padded (or truncated) to n
// samples.
func ForwardRealPadded(x []float64, n int) ([]complex128, error) {
	if n <= 0 {
		return nil, fmt.Errorf("dft: %w: fft length must be > 0: %d", core.ErrInvalidParameter, n)
	}

	return Forward(toComplex(x, n))
}

// ForwardRealPart returns the real part of the DFT of x zero-padded to n.
func ForwardRealPart(x []float64, n int) ([]float64, error) {
	out, err := ForwardRealPadded(x, n)
	if err != nil {
		return nil, err
	}

	return realPart(out), nil
}

func toComplex(x []float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := 0; i < n && i < len(x); i++ {
		out[i] = complex(x[i], 0)
	}

	return out
}

func realPart(x []complex128) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = real(v)
	}

	return out
}
