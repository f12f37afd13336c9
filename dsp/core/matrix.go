package core

import "fmt"

// CheckMatrix validates that m is a non-ragged frame matrix and returns its
// dimensions. An empty matrix has zero rows and zero columns.
func CheckMatrix(m [][]float64) (rows, cols int, err error) {
	if len(m) == 0 {
		return 0, 0, nil
	}

	cols = len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
	}

	return len(m), cols, nil
}

// NewMatrix allocates a zeroed rows x cols matrix backed by one slice.
func NewMatrix(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	m := make([][]float64, rows)
	for i := range m {
		m[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}

	return m
}

// CloneMatrix returns a deep copy of m.
func CloneMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = append([]float64(nil), row...)
	}

	return out
}

// Flatten returns the row-major concatenation of m.
func Flatten(m [][]float64) []float64 {
	n := 0
	for _, row := range m {
		n += len(row)
	}

	flat := make([]float64, 0, n)
	for _, row := range m {
		flat = append(flat, row...)
	}

	return flat
}
