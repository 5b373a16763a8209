// Package kk checks measured dielectric spectra for consistency with the
// Kramers-Kronig relations.
//
// The real part of a causal permittivity is fully determined, up to its
// high-frequency limit, by the imaginary part. Validate reconstructs the
// real permittivity dk from the loss (eps'' = dk*df) and reports how closely
// the reconstruction matches the measurement. Two numerical routes exist:
//
//   - hilbert: an FFT based discrete Hilbert transform of the odd extension
//     of eps''. Exact grids must be uniform; non-uniform data is resampled
//     onto a uniform angular-frequency grid first.
//   - trapz: direct trapezoidal evaluation of the principal-value integral,
//     either in the basic form or singly subtractive (SSKK) form anchored at
//     one measured point.
//
// Method selection, the high-frequency limit eps_inf, windowing and the
// pass/fail threshold are configured with Option values.
//
// The package performs no I/O. Tabular input goes through ValidateTable or
// the stateful Validator, both fed by a dataset.Table.
package kk
