// Package frame implements the frame engine: constant-rate windowing,
// overlap-add reconstruction, pitch-synchronous frame placement and
// pitch-mark/shift conversions.
//
// Frame matrices are [][]float64 with one row per analysis instant. Row
// order is time order and is significant: overlap-add and the pitch-mark
// conversions depend on it.
package frame
