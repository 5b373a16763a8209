// Package interp provides one-dimensional interpolation onto new abscissae.
//
// [Cubic] fits a not-a-knot cubic spline (the same boundary condition used by
// most numerical packages for "cubic" interpolation) and extends the first and
// last spline pieces beyond the data range, so queries outside the sample
// range are extrapolated rather than clamped. [Linear] is the piecewise-linear
// counterpart with the same extrapolation rule.
package interp
