package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-vocoder/fileio/binmat"
	"github.com/cwbudde/algo-vocoder/tools"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	precision  string
	verbose    bool
}

// NewRootCommand builds the vocspec command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "vocspec",
		Short: "Spectral processing stages of a speech vocoder",
		Long: `vocspec - run vocoder analysis stages on audio and matrix files.

Examples:
  # True envelope in dB, 2048-point FFT
  vocspec envelope speech.wav speech.env --fft 2048 --db

  # Warp a 1025-bin magnitude matrix onto 60 mel bands and back
  vocspec melwarp speech.mag speech.mel --bins 1025 --bands 60
  vocspec melunwarp speech.mel speech.mag2 --bins 1025 --bands 60

  # Pitch marks through REAPER
  vocspec --config tools.yaml pitchmarks speech.wav speech.pm
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}

	root.PersistentFlags().StringVar(&g.configFile, "config", "", "tool config file (YAML)")
	root.PersistentFlags().StringVarP(&g.precision, "precision", "p", "float32", "matrix precision: float64, float32 or float16")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(
		newEnvelopeCmd(g),
		newMelWarpCmd(g),
		newMelUnwarpCmd(g),
		newSpWarpCmd(g),
		newPitchMarksCmd(g),
		newRelabelCmd(g),
	)

	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func (g *globalFlags) toolConfig() (tools.Config, error) {
	if g.configFile == "" {
		return tools.DefaultConfig(), nil
	}
	return tools.LoadConfig(g.configFile)
}

func (g *globalFlags) matrixPrecision() (binmat.Precision, error) {
	return binmat.ParsePrecision(g.precision)
}
