// Package interp fits interpolating B-splines through sampled data.
//
// Splines follow scipy's interp1d: linear splines connect the samples,
// quadratic splines use the Greville-style knot vector with the second and
// second-to-last midpoints dropped, and cubic splines use not-a-knot end
// conditions. Queries outside the sample range fail with [ErrOutOfRange].
//
// A [Basis] factors the collocation system once so that many data vectors
// sharing the same abscissae can be fitted cheaply.
package interp
