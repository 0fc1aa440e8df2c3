// Package dmd implements dynamic mode decomposition estimators of the
// Koopman operator: the exact formulation of Tu et al. and a
// delay-augmented windowed variant. Both share the same reduced-operator
// pipeline (truncated SVD of the first snapshot block, then the
// eigendecomposition of the shifted block projected through the singular
// bases) and differ only in the snapshot matrices they feed it.
//
// Discrete eigenvalues μ are mapped to continuous time as λ = Log(μ)/Δt on
// the principal branch. Angular frequencies above π/Δt alias into the
// principal strip; this is a documented limitation and is not corrected.
// Mode columns are normalized to unit Euclidean norm and amplitudes are the
// least-squares fit of the mode basis to the first snapshot.
package dmd

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// validate applies the checks shared by both estimators.
func validate(u *mat.CDense, dt float64, maxRank int) error {
	if u == nil {
		return fmt.Errorf("%w: nil data matrix", koopman.ErrInvalidInput)
	}
	m, n := u.Dims()
	if m == 0 || n < 2 {
		return fmt.Errorf("%w: need at least two snapshots, got %dx%d", koopman.ErrInvalidInput, m, n)
	}
	if gonumExtensions.NANORINF(u) {
		return fmt.Errorf("%w: data matrix contains NaN or Inf", koopman.ErrInvalidInput)
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: sample period %v", koopman.ErrInvalidParameter, dt)
	}
	if maxRank < 0 {
		return fmt.Errorf("%w: negative rank cap %d", koopman.ErrInvalidParameter, maxRank)
	}
	return nil
}

// reduced holds the outcome of the shared SVD → reduced operator → eigen
// pipeline applied to a snapshot pair (x1, x2).
type reduced struct {
	u  *mat.CDense  // left singular basis of x1
	s  []float64    // kept singular values
	v  *mat.CDense  // right singular basis of x1
	mu []complex128 // discrete eigenvalues of the reduced operator
	w  *mat.CDense  // eigenvectors of the reduced operator
}

// reduceAndEig runs the pipeline. Truncation keeps singular values above
// relTol*σ_max (eps*max(dims) when relTol <= 0), capped at maxRank.
func reduceAndEig(x1, x2 *mat.CDense, relTol float64, maxRank int) (*reduced, error) {
	u, s, v, err := gonumExtensions.TruncatedSVD(x1, relTol, maxRank)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", koopman.ErrNumericalInstability, err)
	}
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: truncation left an empty singular basis", koopman.ErrRankDeficient)
	}

	// Reduced operator Ã = Uᴴ X2 V Σ⁻¹.
	proj := gonumExtensions.MulConjTrans(u, x2)
	atilde := gonumExtensions.Mul(proj, v)
	scaleColumnsInv(atilde, s)

	mu, w, err := gonumExtensions.Eig(atilde)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", koopman.ErrNumericalInstability, err)
	}
	return &reduced{u: u, s: s, v: v, mu: mu, w: w}, nil
}

// continuousEigenvalues maps μ → Log(μ)/Δt. A vanishing discrete eigenvalue
// has no continuous counterpart and reports numerical instability.
func continuousEigenvalues(mu []complex128, dt float64) ([]complex128, error) {
	lambda := make([]complex128, len(mu))
	for k, m := range mu {
		if m == 0 {
			return nil, fmt.Errorf("%w: zero discrete eigenvalue", koopman.ErrNumericalInstability)
		}
		lambda[k] = cmplx.Log(m) / complex(dt, 0)
	}
	return lambda, nil
}

// exactModes forms Φ = X2 V Σ⁻¹ W, the mode basis living in the image of
// the shifted snapshots.
func exactModes(x2 *mat.CDense, r *reduced) *mat.CDense {
	p := gonumExtensions.Mul(x2, r.v)
	scaleColumnsInv(p, r.s)
	return gonumExtensions.Mul(p, r.w)
}

// projectedModes forms Φ = U W, the mode basis projected onto the leading
// singular directions of the unshifted snapshots.
func projectedModes(r *reduced) *mat.CDense {
	return gonumExtensions.Mul(r.u, r.w)
}

// normalizeModes rescales every mode column to unit Euclidean norm.
func normalizeModes(phi *mat.CDense) error {
	m, k := phi.Dims()
	for c := 0; c < k; c++ {
		var sum float64
		for i := 0; i < m; i++ {
			v := phi.At(i, c)
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
		nrm := math.Sqrt(sum)
		if nrm == 0 {
			return fmt.Errorf("%w: vanishing mode %d", koopman.ErrNumericalInstability, c)
		}
		inv := complex(1/nrm, 0)
		for i := 0; i < m; i++ {
			phi.Set(i, c, phi.At(i, c)*inv)
		}
	}
	return nil
}

// fitAmplitudes solves Φ b = first in the least-squares sense.
func fitAmplitudes(phi *mat.CDense, first []complex128) ([]complex128, error) {
	b, err := gonumExtensions.LeastSquares(phi, first)
	if err != nil {
		return nil, fmt.Errorf("%w: amplitude fit: %v", koopman.ErrNumericalInstability, err)
	}
	return b, nil
}

// assemble packages the triple, rejecting any non-finite outcome.
func assemble(mu, lambda []complex128, phi *mat.CDense, b []complex128) (*koopman.Decomposition, error) {
	if gonumExtensions.NANORINF(phi) || !finite(lambda) || !finite(b) {
		return nil, fmt.Errorf("%w: non-finite decomposition", koopman.ErrNumericalInstability)
	}
	return &koopman.Decomposition{
		Eigenvalues:         lambda,
		DiscreteEigenvalues: mu,
		Modes:               phi,
		Amplitudes:          b,
	}, nil
}

func finite(v []complex128) bool {
	for _, x := range v {
		if cmplx.IsNaN(x) || cmplx.IsInf(x) {
			return false
		}
	}
	return true
}

// scaleColumnsInv divides column c of a by s[c].
func scaleColumnsInv(a *mat.CDense, s []float64) {
	m, n := a.Dims()
	for c := 0; c < n && c < len(s); c++ {
		inv := complex(1/s[c], 0)
		for i := 0; i < m; i++ {
			a.Set(i, c, a.At(i, c)*inv)
		}
	}
}
