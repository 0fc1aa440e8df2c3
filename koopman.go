// Package koopman approximates the Koopman operator of a dynamical system
// from a spatiotemporal data matrix: M spatial rows observed over N
// uniformly spaced snapshots. Three interchangeable estimators produce
// (eigenvalue, mode, amplitude) triples: exact dynamic mode decomposition
// (dmd.ExactEstimator), a delay-augmented windowed variant
// (dmd.WindowedEstimator) and a per-row discrete Fourier reference
// (kdft.Estimator). This package ties them together with the shared
// preprocessing, ranking and the common output contract.
//
// Eigenvalues are continuous-time: λ = Log(μ)/Δt on the principal branch,
// so the real part is a growth rate and the imaginary part an angular
// frequency. Frequencies with |Im λ|·Δt > π alias and are reported folded;
// no correction is attempted.
package koopman

import "gonum.org/v1/gonum/mat"

// Decomposition is the common output of every estimator: K triples of a
// continuous-time eigenvalue, its discrete counterpart μ = exp(λΔt), a
// spatial mode column and a complex amplitude. Mode columns are normalized
// to unit Euclidean norm, so the amplitudes carry all scaling and
//
//	Σ_k Amplitudes[k] · Modes[:,k]
//
// reproduces the first input snapshot. A Decomposition is freshly allocated
// by each estimator call and never shared.
type Decomposition struct {
	// Eigenvalues holds λ_k. Re = growth rate, Im = angular frequency.
	Eigenvalues []complex128
	// DiscreteEigenvalues holds μ_k = exp(λ_k Δt) as produced by the
	// underlying discrete computation.
	DiscreteEigenvalues []complex128
	// Modes is M×K; column k is the spatial pattern tied to λ_k.
	Modes *mat.CDense
	// Amplitudes holds b_k.
	Amplitudes []complex128
}

// Len returns the number of modes K.
func (d *Decomposition) Len() int {
	return len(d.Eigenvalues)
}

// Reconstruct evaluates Σ_k b_k Φ_k, the estimator's approximation of the
// first snapshot it was given. A decomposition with no modes reconstructs
// to nil.
func (d *Decomposition) Reconstruct() []complex128 {
	if d.Modes == nil {
		return nil
	}
	m, _ := d.Modes.Dims()
	out := make([]complex128, m)
	for k, b := range d.Amplitudes {
		for i := 0; i < m; i++ {
			out[i] += b * d.Modes.At(i, k)
		}
	}
	return out
}

// Decomposer is the contract shared by the mode extraction algorithms.
// Implementations are pure: they never mutate u and carry no state between
// calls, so distinct estimators may run concurrently on the same input.
type Decomposer interface {
	// Decompose extracts Koopman eigenvalue/mode/amplitude triples from
	// an M×N data matrix sampled every dt.
	Decompose(u *mat.CDense, dt float64) (*Decomposition, error)
}
