// Package dft provides the discrete Fourier transforms used by the spectral
// packages.
//
// Power-of-two lengths run on pooled algo-fft plans. Any other length falls
// back to go-dsp, which handles arbitrary sizes through Bluestein's
// algorithm. Hermitian spectra built from mel bands or odd bin counts are
// routinely not powers of two, so both paths are needed.
//
// Inverse transforms are normalised by 1/N.
package dft
