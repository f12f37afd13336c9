package envelope

import (
	"fmt"
	"math"
	"sync"

	"github.com/cwbudde/algo-vocoder/dsp/cepstrum"
	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// FloorDB is the lowest level a bin takes part in refinement at. Zero
// magnitudes and protected-log values are raised to it so one empty bin
// cannot dominate the cepstrum.
const FloorDB = -300.0

// Stats reports how each frame's refinement ended.
type Stats struct {
	Iterations []int
	Converged  []bool
}

// TrueEnvelope returns the true envelope of every half spectrum in frames,
// in the unit selected with [WithUnit]. Frames that hit the iteration cap
// return their last estimate; non-convergence is not an error.
func TrueEnvelope(frames [][]float64, opts ...Option) ([][]float64, error) {
	env, _, err := TrueEnvelopeStats(frames, opts...)
	return env, err
}

// TrueEnvelopeStats is [TrueEnvelope] that also reports per-frame
// iteration counts.
func TrueEnvelopeStats(frames [][]float64, opts ...Option) ([][]float64, Stats, error) {
	cfg := ApplyOptions(opts...)

	toDB, fromDB, err := unitConverters(cfg.Unit)
	if err != nil {
		return nil, Stats{}, err
	}

	n, _, err := core.CheckMatrix(frames)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("envelope: %w", err)
	}

	out := make([][]float64, n)
	stats := Stats{
		Iterations: make([]int, n),
		Converged:  make([]bool, n),
	}

	workers := min(max(cfg.Workers, 1), n)
	jobs := make(chan int)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				env, iters, conv, err := estimate(core.MapFrames(frames[i:i+1], toDB)[0], cfg)
				if err != nil {
					errs[i] = fmt.Errorf("frame %d: %w", i, err)
					continue
				}
				for k, v := range env {
					env[k] = fromDB(v)
				}
				out[i] = env
				stats.Iterations[i] = iters
				stats.Converged[i] = conv
			}
		}()
	}
	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, Stats{}, err
		}
	}

	return out, stats, nil
}

// Frame estimates the envelope of a single half spectrum given in dB and
// returns it in dB along with the number of smoothing passes run.
func Frame(dbSpectrum []float64, cfg Config) (env []float64, iterations int, err error) {
	env, iterations, _, err = estimate(dbSpectrum, cfg)
	return env, iterations, err
}

func estimate(orig []float64, cfg Config) ([]float64, int, bool, error) {
	if cfg.MaxIterations <= 0 {
		return nil, 0, false, fmt.Errorf("envelope: %w: iteration cap must be > 0: %d",
			core.ErrInvalidParameter, cfg.MaxIterations)
	}

	cur := make([]float64, len(orig))
	for k, v := range orig {
		if math.IsNaN(v) || v < FloorDB {
			v = FloorDB
		}
		cur[k] = v
	}
	var sm []float64
	for it := 1; it <= cfg.MaxIterations; it++ {
		var err error
		sm, err = cepstrum.SmoothFrame(cur, cfg.Coeffs, cfg.FadeRatio)
		if err != nil {
			return nil, it, false, err
		}

		gap := 0.0
		for k := range cur {
			gap += math.Abs(cur[k] - sm[k])
		}
		if gap/float64(len(cur)) < cfg.ThresholdDB {
			return sm, it, true, nil
		}

		for k := range cur {
			cur[k] = math.Max(cur[k], sm[k])
		}
	}

	return sm, cfg.MaxIterations, false, nil
}

func unitConverters(u Unit) (toDB, fromDB func(float64) float64, err error) {
	switch u {
	case UnitAbs:
		return func(x float64) float64 { return core.LogToDB(core.Log(x)) }, core.InvDB, nil
	case UnitDB:
		return identity, identity, nil
	case UnitLog:
		return core.LogToDB, core.DBToLog, nil
	default:
		return nil, nil, fmt.Errorf("envelope: %w: unknown unit %d", core.ErrInvalidParameter, u)
	}
}

func identity(x float64) float64 { return x }
