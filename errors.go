package koopman

import "errors"

// Error taxonomy shared by every estimator. Estimators validate eagerly,
// fail fast with one of these kinds wrapped around a detail message, and
// never retry; callers discriminate with errors.Is.
var (
	// ErrInvalidInput marks non-finite data or dimension mismatches.
	ErrInvalidInput = errors.New("koopman: invalid input")

	// ErrInvalidParameter marks an out-of-range window length, sample
	// period or rank cap.
	ErrInvalidParameter = errors.New("koopman: invalid parameter")

	// ErrRankDeficient is returned when rank truncation leaves an empty
	// basis to build the reduced operator from.
	ErrRankDeficient = errors.New("koopman: rank deficient")

	// ErrNumericalInstability is returned when an ill-conditioned step is
	// detected instead of silently propagating NaN or Inf.
	ErrNumericalInstability = errors.New("koopman: numerical instability")
)
