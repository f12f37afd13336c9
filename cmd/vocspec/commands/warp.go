package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/dsp/melwarp"
	"github.com/cwbudde/algo-vocoder/fileio/binmat"
	"github.com/cwbudde/algo-vocoder/tools"
	"github.com/cwbudde/algo-vocoder/tools/sptk"
)

func newMelWarpCmd(g *globalFlags) *cobra.Command {
	var (
		bins  int
		bands int
		alpha float64
	)

	cmd := &cobra.Command{
		Use:   "melwarp <in> <out>",
		Short: "Warp magnitude spectra onto mel bands with a filterbank",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mapMatrix(g, args[0], args[1], bins, func(m [][]float64) ([][]float64, error) {
				return melwarp.WarpFbank(m, bands, alpha)
			})
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 1025, "linear bins per input frame")
	cmd.Flags().IntVar(&bands, "bands", 60, "mel bands")
	cmd.Flags().Float64Var(&alpha, "alpha", melwarp.DefaultAlpha, "all-pass warping constant")

	return cmd
}

func newMelUnwarpCmd(g *globalFlags) *cobra.Command {
	var (
		bins  int
		bands int
		alpha float64
	)

	cmd := &cobra.Command{
		Use:   "melunwarp <in> <out>",
		Short: "Map mel-band magnitudes back onto linear bins",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mapMatrix(g, args[0], args[1], bands, func(m [][]float64) ([][]float64, error) {
				return melwarp.UnwarpFbank(m, bins, alpha)
			})
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 1025, "linear bins per output frame")
	cmd.Flags().IntVar(&bands, "bands", 60, "mel bands per input frame")
	cmd.Flags().Float64Var(&alpha, "alpha", melwarp.DefaultAlpha, "all-pass warping constant")

	return cmd
}

func newSpWarpCmd(g *globalFlags) *cobra.Command {
	var (
		bins  int
		nOut  int
		alpha float64
		typ   string
	)

	cmd := &cobra.Command{
		Use:   "spwarp <in> <out>",
		Short: "Warp spectra onto mel bins through SPTK mcep",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scale, err := melwarp.ParseScale(typ)
			if err != nil {
				return err
			}
			cfg, err := g.toolConfig()
			if err != nil {
				return err
			}
			analyzer := sptk.New(cfg, tools.NewRunner(nil))

			return mapMatrix(g, args[0], args[1], bins, func(m [][]float64) ([][]float64, error) {
				return melwarp.SpMelWarp(cmd.Context(), analyzer, m, nOut, alpha, spectrumType(scale))
			})
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 1025, "linear bins per input frame")
	cmd.Flags().IntVar(&nOut, "out", 60, "mel bins per output frame")
	cmd.Flags().Float64Var(&alpha, "alpha", melwarp.DefaultAlpha, "all-pass warping constant")
	cmd.Flags().StringVar(&typ, "type", "abs", "input scale: abs, db or log")

	return cmd
}

func spectrumType(s melwarp.Scale) melwarp.SpectrumType {
	switch s {
	case melwarp.ScaleDB:
		return melwarp.SpectrumDB
	case melwarp.ScaleLog:
		return melwarp.SpectrumLog
	default:
		return melwarp.SpectrumAbs
	}
}

// mapMatrix reads a matrix of cols columns, transforms it and writes the
// result with the global precision.
func mapMatrix(g *globalFlags, in, out string, cols int, fn func([][]float64) ([][]float64, error)) error {
	prec, err := g.matrixPrecision()
	if err != nil {
		return err
	}

	m, err := binmat.Read(in, cols, prec)
	if err != nil {
		return err
	}
	if len(m) == 0 {
		return fmt.Errorf("vocspec: %w: %s holds no frames", core.ErrMalformedInput, in)
	}

	res, err := fn(m)
	if err != nil {
		return err
	}
	return binmat.Write(out, res, prec)
}
