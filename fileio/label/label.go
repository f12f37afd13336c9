// Package label rewrites HTS-style state alignment labels.
package label

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

const (
	// FrameShiftMs is the duration of one alignment frame.
	FrameShiftMs = 5.0
	// TicksPerMs converts milliseconds to 100 ns label ticks.
	TicksPerMs = 10000
)

// ConvertStateAlignment reads the state label file in, replaces its
// boundaries with the cumulative sum of durations (in 5 ms frames) and
// writes the result to out. durations holds one entry per label line.
func ConvertStateAlignment(in string, durations []float64, out string) error {
	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("label: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("label: %w", err)
	}

	if err := Convert(dst, src, durations); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	return nil
}

// Convert is ConvertStateAlignment over streams.
func Convert(w io.Writer, r io.Reader, durations []float64) error {
	names, err := readNames(r)
	if err != nil {
		return err
	}
	if len(names) != len(durations) {
		return fmt.Errorf("label: %w: %d labels, %d durations", core.ErrShapeMismatch, len(names), len(durations))
	}

	bw := bufio.NewWriter(w)
	start := 0.0
	for i, name := range names {
		end := start + durations[i]*FrameShiftMs*TicksPerMs
		if _, err := fmt.Fprintf(bw, "%d %d %s\n", int64(start), int64(end), name); err != nil {
			return fmt.Errorf("label: %w", err)
		}
		start = end
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("label: %w", err)
	}
	return nil
}

// readNames returns the third space-separated field of every line.
func readNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			continue
		}
		fields := strings.Split(text, " ")
		if len(fields) < 3 {
			return nil, fmt.Errorf("label: %w: line %d has %d fields", core.ErrMalformedInput, line, len(fields))
		}
		names = append(names, fields[2])
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	return names, nil
}
