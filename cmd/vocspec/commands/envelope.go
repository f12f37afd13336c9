package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/dft"
	"github.com/cwbudde/algo-vocoder/dsp/envelope"
	"github.com/cwbudde/algo-vocoder/dsp/frame"
	"github.com/cwbudde/algo-vocoder/dsp/spectrum"
	"github.com/cwbudde/algo-vocoder/dsp/window"
	"github.com/cwbudde/algo-vocoder/fileio/audio"
	"github.com/cwbudde/algo-vocoder/fileio/binmat"
)

func newEnvelopeCmd(g *globalFlags) *cobra.Command {
	var (
		fftSize   int
		frameMs   float64
		shiftMs   float64
		coeffs    int
		threshold float64
		inDB      bool
	)

	cmd := &cobra.Command{
		Use:   "envelope <audio> <out>",
		Short: "Estimate the true spectral envelope of an audio file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			prec, err := g.matrixPrecision()
			if err != nil {
				return err
			}

			signal, fs, err := audio.Read(args[0])
			if err != nil {
				return err
			}
			cfg := core.ApplyAnalysisOptions(
				core.WithSampleRate(float64(fs)),
				core.WithFFTSize(fftSize),
				core.WithFrameMs(frameMs),
				core.WithShiftMs(shiftMs),
			)

			mag, err := magnitudeFrames(signal, cfg)
			if err != nil {
				return err
			}

			env, stats, err := envelope.TrueEnvelopeStats(mag,
				envelope.WithCoeffs(coeffs),
				envelope.WithThreshold(threshold),
			)
			if err != nil {
				return err
			}
			slog.Info("envelope estimated",
				"frames", len(env),
				"bins", cfg.FFTSize/2+1,
				"unconverged", countFalse(stats.Converged),
			)

			if inDB {
				env = core.MapFrames(env, core.DB)
			}
			return binmat.Write(args[1], env, prec)
		},
	}

	cmd.Flags().IntVar(&fftSize, "fft", 2048, "FFT length")
	cmd.Flags().Float64Var(&frameMs, "frame-ms", 25, "frame length in ms")
	cmd.Flags().Float64Var(&shiftMs, "shift-ms", 5, "frame shift in ms")
	cmd.Flags().IntVar(&coeffs, "coeffs", envelope.DefaultConfig().Coeffs, "cepstral coefficients per smoothing pass")
	cmd.Flags().Float64Var(&threshold, "threshold", envelope.DefaultConfig().ThresholdDB, "convergence threshold in dB")
	cmd.Flags().BoolVar(&inDB, "db", false, "write the envelope in dB instead of magnitude")

	return cmd
}

// magnitudeFrames cuts signal into Hann-windowed frames and returns their
// half magnitude spectra.
func magnitudeFrames(signal []float64, cfg core.AnalysisConfig) ([][]float64, error) {
	frameLen, shift := cfg.FrameLen(), cfg.Shift()
	if frameLen > cfg.FFTSize {
		return nil, fmt.Errorf("vocspec: %w: frame of %d samples exceeds FFT length %d", core.ErrInvalidParameter, frameLen, cfg.FFTSize)
	}

	frames, err := frame.Windowing(signal, frameLen, shift, window.Hanning, frame.ExtendBoth)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("vocspec: %w: signal shorter than one frame", core.ErrInvalidParameter)
	}

	out := make([][]float64, len(frames))
	for i, fr := range frames {
		spec, err := dft.ForwardRealPadded(fr, cfg.FFTSize)
		if err != nil {
			return nil, err
		}
		out[i] = spectrum.Reduce(spectrum.Magnitude(spec))
	}
	slog.Debug("framed signal", "frames", len(out), "frame_len", frameLen, "shift", shift)

	return out, nil
}

func countFalse(flags []bool) int {
	n := 0
	for _, f := range flags {
		if !f {
			n++
		}
	}
	return n
}
