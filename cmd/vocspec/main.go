// Command vocspec runs the vocoder's spectral processing stages on files.
//
// Usage:
//
//	vocspec [flags] <command> [args]
//
// Commands:
//
//	envelope    - true spectral envelope of an audio file
//	melwarp     - filterbank mel warping of a magnitude matrix
//	melunwarp   - inverse of melwarp
//	spwarp      - mel warping through SPTK mcep
//	pitchmarks  - glottal pitch marks through REAPER
//	relabel     - rewrite state label boundaries from durations
//
// Matrices are headerless row-major binary files; see --precision.
// External tool paths come from a YAML file passed with --config.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-vocoder/cmd/vocspec/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
