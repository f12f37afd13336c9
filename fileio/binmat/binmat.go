// Package binmat reads and writes headerless row-major matrices of
// little-endian floats, the layout SPTK and most vocoder tools exchange.
package binmat

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/x448/float16"

	"github.com/cwbudde/algo-vocoder/dsp/core"
)

// Precision selects the on-disk sample type.
type Precision int

const (
	Float64 Precision = iota
	Float32
	Float16
)

// Size returns the sample width in bytes.
func (p Precision) Size() int {
	switch p {
	case Float32:
		return 4
	case Float16:
		return 2
	default:
		return 8
	}
}

func (p Precision) String() string {
	switch p {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	default:
		return fmt.Sprintf("Precision(%d)", int(p))
	}
}

// ParsePrecision maps "float64", "float32" or "float16" to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float64", "f8", "double":
		return Float64, nil
	case "float32", "f4", "float":
		return Float32, nil
	case "float16", "f2", "half":
		return Float16, nil
	default:
		return 0, fmt.Errorf("binmat: %w: unknown precision %q", core.ErrInvalidParameter, s)
	}
}

// Write stores m row by row.
func Write(path string, m [][]float64, p Precision) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("binmat: %w", err)
	}
	if err := Encode(f, m, p); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("binmat: %w", err)
	}
	return nil
}

// Encode writes m to w row by row.
func Encode(w io.Writer, m [][]float64, p Precision) error {
	if _, _, err := core.CheckMatrix(m); err != nil {
		return fmt.Errorf("binmat: %w", err)
	}

	bw := bufio.NewWriter(w)
	buf := make([]byte, p.Size())
	for _, row := range m {
		for _, v := range row {
			put(buf, v, p)
			if _, err := bw.Write(buf); err != nil {
				return fmt.Errorf("binmat: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("binmat: %w", err)
	}
	return nil
}

// Read loads a matrix of cols columns. The file length must be a whole
// number of rows.
func Read(path string, cols int, p Precision) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("binmat: %w", err)
	}
	defer f.Close()

	return Decode(f, cols, p)
}

// Decode reads rows of cols samples from r until EOF.
func Decode(r io.Reader, cols int, p Precision) ([][]float64, error) {
	if cols <= 0 {
		return nil, fmt.Errorf("binmat: %w: cols must be > 0: %d", core.ErrInvalidParameter, cols)
	}

	size := p.Size()
	br := bufio.NewReader(r)
	rowBuf := make([]byte, cols*size)
	var m [][]float64
	for {
		n, err := io.ReadFull(br, rowBuf)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("binmat: %w: trailing %d bytes do not fill a row of %d %s", core.ErrMalformedInput, n, cols, p)
		}
		if err != nil {
			return nil, fmt.Errorf("binmat: %w", err)
		}

		row := make([]float64, cols)
		for j := range row {
			row[j] = get(rowBuf[j*size:], p)
		}
		m = append(m, row)
	}

	return m, nil
}

func put(b []byte, v float64, p Precision) {
	switch p {
	case Float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v)))
	case Float16:
		binary.LittleEndian.PutUint16(b, float16.Fromfloat32(float32(v)).Bits())
	default:
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
	}
}

func get(b []byte, p Precision) float64 {
	switch p {
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Float16:
		return float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
	default:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	}
}
