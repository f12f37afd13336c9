// Package envelope estimates true spectral envelopes: smooth curves that
// enclose a magnitude spectrum's peaks from above.
//
// Each frame is refined independently by repeated cepstral smoothing,
// raising the estimate to the input wherever the input pokes through,
// until the mean gap falls below a threshold or an iteration cap is hit.
// Frames are distributed over a bounded worker pool.
package envelope
