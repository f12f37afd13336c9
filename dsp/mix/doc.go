// Package mix composes spectra from two sources: per-bin voicing masks,
// frequency crossfades around a cutoff, and filling of unvoiced frames.
package mix
