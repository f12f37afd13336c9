package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vocoder/dsp/core"
	"github.com/cwbudde/algo-vocoder/fileio/binmat"
	"github.com/cwbudde/algo-vocoder/fileio/label"
)

func newRelabelCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "relabel <labels> <durations> <out>",
		Short: "Rewrite state label boundaries from per-state frame durations",
		Long: `Rewrite state label boundaries from per-state durations. The durations
file is a single-column matrix counted in 5 ms frames.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			prec, err := g.matrixPrecision()
			if err != nil {
				return err
			}

			m, err := binmat.Read(args[1], 1, prec)
			if err != nil {
				return err
			}
			durations := core.Flatten(m)
			if len(durations) == 0 {
				return fmt.Errorf("vocspec: %w: %s holds no durations", core.ErrMalformedInput, args[1])
			}

			return label.ConvertStateAlignment(args[0], durations, args[2])
		},
	}
}
