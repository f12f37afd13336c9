package core

// AnalysisConfig holds the framing parameters shared by an analysis run.
type AnalysisConfig struct {
	SampleRate float64
	FFTSize    int
	FrameMs    float64
	ShiftMs    float64
}

// AnalysisOption mutates an AnalysisConfig.
type AnalysisOption func(*AnalysisConfig)

// DefaultAnalysisConfig returns the usual speech-synthesis setup:
// 16 kHz, 25 ms frames, 5 ms shift.
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate: 16000,
		FFTSize:    512,
		FrameMs:    25,
		ShiftMs:    5,
	}
}

// WithSampleRate sets the sampling rate in Hz.
func WithSampleRate(sampleRate float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFFTSize sets the FFT length.
func WithFFTSize(n int) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if n > 0 {
			cfg.FFTSize = n
		}
	}
}

// WithFrameMs sets the analysis frame length in milliseconds.
func WithFrameMs(ms float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if ms > 0 {
			cfg.FrameMs = ms
		}
	}
}

// WithShiftMs sets the frame shift in milliseconds.
func WithShiftMs(ms float64) AnalysisOption {
	return func(cfg *AnalysisConfig) {
		if ms > 0 {
			cfg.ShiftMs = ms
		}
	}
}

// ApplyAnalysisOptions applies zero or more options to the default config.
func ApplyAnalysisOptions(opts ...AnalysisOption) AnalysisConfig {
	cfg := DefaultAnalysisConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// FrameLen returns the frame length in samples.
func (c AnalysisConfig) FrameLen() int {
	return RoundToInt(c.SampleRate * c.FrameMs / 1000)
}

// Shift returns the frame shift in samples.
func (c AnalysisConfig) Shift() int {
	return RoundToInt(c.SampleRate * c.ShiftMs / 1000)
}
