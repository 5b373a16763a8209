package kk

import "errors"

var (
	// ErrInputShape is returned when frequency, dk and df differ in length.
	ErrInputShape = errors.New("kk: input arrays differ in length")
	// ErrInsufficientData is returned when too few samples are given for the
	// requested computation.
	ErrInsufficientData = errors.New("kk: insufficient data")
	// ErrMonotonicity is returned when frequencies are not strictly increasing.
	ErrMonotonicity = errors.New("kk: frequency must be strictly increasing")
	// ErrDomain is returned for values outside the mathematical domain, such
	// as non-positive frequencies.
	ErrDomain = errors.New("kk: value outside domain")
	// ErrNonFinite is returned when an input contains NaN or Inf.
	ErrNonFinite = errors.New("kk: non-finite input")
	// ErrConfiguration is returned for invalid options.
	ErrConfiguration = errors.New("kk: invalid configuration")
	// ErrNotValidated is returned by Validator accessors before Validate ran.
	ErrNotValidated = errors.New("kk: validation has not been run, call Validate() first")
)
