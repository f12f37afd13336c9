// Package cepstrum computes real cepstra of half spectra, truncates them to
// minimum phase and smooths log spectra by cepstral liftering.
//
// Inputs are never modified; every function returns new buffers.
package cepstrum
