package dmd

import (
	"gonum.org/v1/gonum/mat"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/gonumExtensions"
)

// ExactEstimator extracts Koopman triples with exact dynamic mode
// decomposition: the reduced operator is built from the SVD of the leading
// snapshot block and its eigenvectors are lifted back to the full spatial
// dimension. The zero value is a ready-to-use estimator producing exact
// modes with the default truncation policy.
type ExactEstimator struct {
	// ProjectedModes selects the projected basis Φ = U W instead of the
	// exact basis Φ = X2 V Σ⁻¹ W.
	ProjectedModes bool
	// RelTol overrides the singular value cutoff relative to σ_max.
	// Non-positive selects the default eps*max(M, N) policy.
	RelTol float64
	// MaxRank caps the truncation rank; 0 means uncapped.
	MaxRank int
}

var _ koopman.Decomposer = ExactEstimator{}

// Decompose splits u into the snapshot pair (X1, X2) = (u[:, :N-1],
// u[:, 1:]) and runs the reduced-operator pipeline.
func (e ExactEstimator) Decompose(u *mat.CDense, dt float64) (*koopman.Decomposition, error) {
	if err := validate(u, dt, e.MaxRank); err != nil {
		return nil, err
	}
	m, n := u.Dims()
	x1 := u.Slice(0, m, 0, n-1).(*mat.CDense)
	x2 := u.Slice(0, m, 1, n).(*mat.CDense)

	r, err := reduceAndEig(x1, x2, e.RelTol, e.MaxRank)
	if err != nil {
		return nil, err
	}
	lambda, err := continuousEigenvalues(r.mu, dt)
	if err != nil {
		return nil, err
	}

	var phi *mat.CDense
	if e.ProjectedModes {
		phi = projectedModes(r)
	} else {
		phi = exactModes(x2, r)
	}
	if err := normalizeModes(phi); err != nil {
		return nil, err
	}
	b, err := fitAmplitudes(phi, gonumExtensions.Column(u, 0))
	if err != nil {
		return nil, err
	}
	return assemble(r.mu, lambda, phi, b)
}

// Exact is the one-call form of ExactEstimator. exactModes selects the
// exact basis; false falls back to the projected one.
func Exact(u *mat.CDense, dt float64, exactModes bool) (*koopman.Decomposition, error) {
	return ExactEstimator{ProjectedModes: !exactModes}.Decompose(u, dt)
}
