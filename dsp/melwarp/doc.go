// Package melwarp moves spectra between the linear frequency axis and a
// mel-like axis defined by a first-order all-pass warping coefficient alpha.
//
// Two variants are provided. The cosine-matrix variant projects
// (mel-)cepstra onto a warped cosine basis. The filterbank variant averages
// linear bins into bands whose centers are spaced uniformly on the warped
// axis and interpolates band values back to bins with a spline.
package melwarp
