package envelope

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Unit is the amplitude scale of input and output spectra. Iteration always
// runs in decibels.
type Unit int

const (
	// UnitAbs is a linear magnitude spectrum.
	UnitAbs Unit = iota
	// UnitDB is 20*log10 of the magnitude.
	UnitDB
	// UnitLog is the natural log of the magnitude.
	UnitLog
)

// ParseUnit maps "abs", "db" or "log" to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "abs":
		return UnitAbs, nil
	case "db":
		return UnitDB, nil
	case "log":
		return UnitLog, nil
	default:
		return 0, fmt.Errorf("envelope: %w: unknown unit %q", core.ErrInvalidParameter, s)
	}
}

// Config controls true-envelope estimation.
type Config struct {
	Unit          Unit
	Coeffs        int
	ThresholdDB   float64
	MaxIterations int
	FadeRatio     float64
	Workers       int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the standard estimator settings.
func DefaultConfig() Config {
	return Config{
		Unit:          UnitAbs,
		Coeffs:        60,
		ThresholdDB:   0.1,
		MaxIterations: 100,
		FadeRatio:     0.7,
		Workers:       runtime.GOMAXPROCS(0),
	}
}

// WithUnit sets the input and output amplitude scale.
func WithUnit(u Unit) Option {
	return func(cfg *Config) {
		cfg.Unit = u
	}
}

// WithCoeffs sets the number of cepstral coefficients kept per smoothing.
func WithCoeffs(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Coeffs = n
		}
	}
}

// WithThreshold sets the convergence threshold in dB.
func WithThreshold(db float64) Option {
	return func(cfg *Config) {
		if db > 0 {
			cfg.ThresholdDB = db
		}
	}
}

// WithMaxIterations caps the refinement loop per frame.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithFadeRatio sets the share of kept coefficients that is tapered.
func WithFadeRatio(r float64) Option {
	return func(cfg *Config) {
		if r >= 0 && r <= 1 {
			cfg.FadeRatio = r
		}
	}
}

// WithWorkers bounds the number of frames processed concurrently.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
