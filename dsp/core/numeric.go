package core

import "math"

// Magic is the floor returned by the protected logarithm. It matches the
// value SPTK uses for log(0).
const Magic = -1.0e+10

const defaultEpsilon = 1e-12

// NearlyEqual reports whether a and b are equal within eps, absolute or relative.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// Log is a protected natural logarithm. Zero, negative and NaN inputs map to
// [Magic] instead of -Inf or NaN.
func Log(x float64) float64 {
	y := math.Log(x)
	if math.IsInf(y, 0) || math.IsNaN(y) {
		return Magic
	}

	return y
}

// LogSlice applies [Log] to every element and returns a new slice.
func LogSlice(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = Log(v)
	}

	return out
}

// LogFrames applies [Log] to every element of a frame matrix.
func LogFrames(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = LogSlice(row)
	}

	return out
}

// DB converts linear amplitude to decibels (20*log10 convention).
// Zero maps to -Inf and negative values to NaN, as in math.Log10.
func DB(x float64) float64 {
	return 20 * math.Log10(x)
}

// InvDB converts decibels back to linear amplitude.
func InvDB(x float64) float64 {
	return math.Pow(10, x/20)
}

// LogToDB converts a natural-log amplitude to decibels.
func LogToDB(x float64) float64 {
	return x * (20 / math.Ln10)
}

// DBToLog converts decibels to a natural-log amplitude.
func DBToLog(x float64) float64 {
	return x * (math.Ln10 / 20)
}

// MapFrames applies fn to every element of m and returns a new matrix.
func MapFrames(m [][]float64, fn func(float64) float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		r := make([]float64, len(row))
		for j, v := range row {
			r[j] = fn(v)
		}
		out[i] = r
	}

	return out
}

// RoundToInt rounds half to even, like numpy's round.
func RoundToInt(x float64) int {
	return int(math.RoundToEven(x))
}

// NextPowerOfTwo returns the smallest power of two >= x. Values below 2 yield 2.
func NextPowerOfTwo(x float64) int {
	if x < 2 {
		x = 2
	}

	return 1 << uint(math.Ceil(math.Log2(x)))
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// HzToBin converts a frequency in Hz to a (fractional) FFT bin index.
func HzToBin(hz float64, nFFT int, fs float64) float64 {
	return hz * float64(nFFT) / fs
}

// BinToHz converts a (fractional) FFT bin index to Hz.
func BinToHz(bin float64, nFFT int, fs float64) float64 {
	return bin * fs / float64(nFFT)
}

// F0ToLogF0 converts an f0 contour to log-f0. Unvoiced frames (f0 == 0)
// become [Magic].
func F0ToLogF0(f0 []float64) []float64 {
	out := make([]float64, len(f0))
	for i, v := range f0 {
		y := math.Log(v)
		if math.IsInf(y, 0) {
			y = Magic
		}
		out[i] = y
	}

	return out
}
