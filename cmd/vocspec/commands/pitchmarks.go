package commands

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vocoder/fileio/audio"
	"github.com/cwbudde/algo-vocoder/tools"
	"github.com/cwbudde/algo-vocoder/tools/reaper"
)

func newPitchMarksCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "pitchmarks <audio> [out]",
		Short: "Extract pitch marks with REAPER",
		Long: `Extract pitch marks with REAPER and print one "time voicing" pair per
line. Without an output path, marks are written to stdout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.toolConfig()
			if err != nil {
				return err
			}

			signal, fs, err := audio.Read(args[0])
			if err != nil {
				return err
			}

			ex := reaper.New(cfg, tools.NewRunner(slog.Default()))
			times, voicing, err := ex.PitchMarks(cmd.Context(), signal, fs)
			if err != nil {
				return err
			}
			slog.Info("pitch marks extracted", "marks", len(times), "fs", fs)

			if len(args) == 1 {
				return writeMarks(cmd.OutOrStdout(), times, voicing)
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := writeMarks(f, times, voicing); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
}

func writeMarks(w io.Writer, times, voicing []float64) error {
	bw := bufio.NewWriter(w)
	for i, t := range times {
		if _, err := fmt.Fprintf(bw, "%.6f %g\n", t, voicing[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}
