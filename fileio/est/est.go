// Package est reads Edinburgh Speech Tools marked-text files, the track
// format REAPER writes pitch marks in.
package est

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// HeaderEnd is the line that terminates an EST header.
const HeaderEnd = "EST_Header_End"

// DefaultSkipRows is the fixed header size of REAPER output.
const DefaultSkipRows = 7

// Read returns the requested columns of every data row after the
// EST_Header_End line. Nil cols selects columns 0 and 1.
func Read(path string, cols []int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("est: %w", err)
	}
	defer f.Close()

	return Parse(f, cols)
}

// Parse is Read over an io.Reader.
func Parse(r io.Reader, cols []int) ([][]float64, error) {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		if strings.TrimRight(sc.Text(), "\r") == HeaderEnd {
			return parseRows(sc, line, cols)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("est: %w", err)
	}
	return nil, fmt.Errorf("est: %w: no %s line", core.ErrMalformedInput, HeaderEnd)
}

// ReaperOptions controls ReadReaper.
type ReaperOptions struct {
	// CheckLen is the signal length in samples. When positive, marks that
	// round to the last sample or beyond are dropped.
	CheckLen int
	// FS is the sampling rate in Hz. Required when CheckLen is set.
	FS float64
	// SkipRows is the number of header lines; <= 0 selects DefaultSkipRows.
	SkipRows int
}

// ReadReaper reads a REAPER pitch-mark file and returns mark times in
// seconds with their voicing flags. Entries whose time does not strictly
// increase are dropped.
func ReadReaper(path string, opts ReaperOptions) (times, voicing []float64, err error) {
	if opts.CheckLen > 0 && opts.FS <= 0 {
		return nil, nil, fmt.Errorf("est: %w: CheckLen requires a sampling rate", core.ErrInvalidParameter)
	}
	skip := opts.SkipRows
	if skip <= 0 {
		skip = DefaultSkipRows
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("est: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	line := 0
	for line < skip && sc.Scan() {
		line++
	}
	rows, err := parseRows(sc, line, []int{0, 1})
	if err != nil {
		return nil, nil, err
	}

	times = make([]float64, len(rows))
	voicing = make([]float64, len(rows))
	for i, row := range rows {
		times[i], voicing[i] = row[0], row[1]
	}
	times, voicing = DropNonIncreasing(times, voicing)

	if opts.CheckLen > 0 && len(times) > 0 {
		last := opts.CheckLen - 1
		if core.RoundToInt(times[len(times)-1]*opts.FS) >= last {
			keep := 0
			for i, t := range times {
				if core.RoundToInt(t*opts.FS) < last {
					times[keep], voicing[keep] = times[i], voicing[i]
					keep++
				}
			}
			times, voicing = times[:keep], voicing[:keep]
		}
	}

	return times, voicing, nil
}

// DropNonIncreasing keeps the first entry and every later entry whose time
// exceeds its predecessor in the input. vals may be nil.
func DropNonIncreasing(times, vals []float64) ([]float64, []float64) {
	if len(times) == 0 {
		return times, vals
	}

	outT := []float64{times[0]}
	var outV []float64
	if vals != nil {
		outV = []float64{vals[0]}
	}
	for i := 1; i < len(times); i++ {
		if times[i] > times[i-1] {
			outT = append(outT, times[i])
			if vals != nil {
				outV = append(outV, vals[i])
			}
		}
	}
	return outT, outV
}

func parseRows(sc *bufio.Scanner, line int, cols []int) ([][]float64, error) {
	if cols == nil {
		cols = []int{0, 1}
	}
	maxCol := -1
	for _, c := range cols {
		if c < 0 {
			return nil, fmt.Errorf("est: %w: negative column %d", core.ErrInvalidParameter, c)
		}
		maxCol = max(maxCol, c)
	}

	var rows [][]float64
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if maxCol >= len(fields) {
			return nil, fmt.Errorf("est: %w: line %d has %d fields, need column %d", core.ErrMalformedInput, line, len(fields), maxCol)
		}

		row := make([]float64, len(cols))
		for j, c := range cols {
			v, err := strconv.ParseFloat(fields[c], 64)
			if err != nil {
				return nil, fmt.Errorf("est: %w: line %d: %v", core.ErrMalformedInput, line, err)
			}
			row[j] = v
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("est: %w", err)
	}

	return rows, nil
}
