// Package spectrum converts between the non-redundant half spectrum
// (nFFT/2+1 bins) and the full Hermitian spectrum (nFFT bins) of real
// signals, and provides magnitude and energy helpers for spectral frames.
//
// The package does not implement the FFT itself; see package dft.
package spectrum
