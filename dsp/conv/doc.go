// Package conv provides direct time-domain convolution with numpy-style
// output modes.
//
// Kernels in the vocoder are short smoothing windows, so only the O(N*M)
// direct form is provided:
//
//	full, err := conv.Direct(signal, kernel)
//	valid, err := conv.ConvolveMode(signal, kernel, conv.ModeValid)
package conv
