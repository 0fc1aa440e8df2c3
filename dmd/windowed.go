package dmd

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/gonumExtensions"
)

// WindowedEstimator extracts Koopman triples from a delay-augmented
// snapshot matrix: W time-shifted copies of the data rows are stacked
// Hankel-style before the reduced-operator pipeline runs, raising the
// effective row count to M·W and with it the observability of the
// underlying dynamics. Larger windows trade compute cost for robustness to
// measurement noise.
//
// The concrete augmentation is
//
//	G[j·M+i, c] = U[i, j+c]    j = 0..W-1, c = 0..N-W
//
// so column c of G stacks the W consecutive snapshots starting at time c.
// Modes are mapped back to the original space by keeping the leading M rows
// of the exact augmented modes and renormalizing; amplitudes are fitted in
// the augmented space and rescaled alongside, which keeps the
// reconstruction contract valid in the unaugmented space.
type WindowedEstimator struct {
	// Window is the number of stacked time shifts W, 1 <= W < N.
	Window int
	// RelTol overrides the singular value cutoff relative to σ_max.
	RelTol float64
	// MaxRank caps the truncation rank; 0 means uncapped.
	MaxRank int
}

var _ koopman.Decomposer = WindowedEstimator{}

// Decompose builds the augmented snapshot matrix and runs the shared
// pipeline on its leading/shifted column blocks.
func (e WindowedEstimator) Decompose(u *mat.CDense, dt float64) (*koopman.Decomposition, error) {
	if err := validate(u, dt, e.MaxRank); err != nil {
		return nil, err
	}
	m, n := u.Dims()
	if e.Window < 1 || e.Window >= n {
		return nil, fmt.Errorf("%w: window length %d outside [1, %d)", koopman.ErrInvalidParameter, e.Window, n)
	}

	g := augment(u, e.Window)
	rows, cols := g.Dims()
	x1 := g.Slice(0, rows, 0, cols-1).(*mat.CDense)
	x2 := g.Slice(0, rows, 1, cols).(*mat.CDense)

	r, err := reduceAndEig(x1, x2, e.RelTol, e.MaxRank)
	if err != nil {
		return nil, err
	}
	lambda, err := continuousEigenvalues(r.mu, dt)
	if err != nil {
		return nil, err
	}

	// Amplitudes are fitted in the augmented space, where the mode basis
	// keeps its full rank: the first M rows of the fitted identity
	// Σ b_k Φaug_k = X1g[:,0] are exactly the first original snapshot, so
	// the de-augmented reconstruction contract survives the projection.
	phiAug := exactModes(x2, r)
	b, err := fitAmplitudes(phiAug, gonumExtensions.Column(x1, 0))
	if err != nil {
		return nil, err
	}

	// De-augment: the leading M rows of the augmented modes are the
	// spatial patterns at zero delay. Renormalizing shifts the scale into
	// the amplitudes.
	_, k := phiAug.Dims()
	phi := mat.NewCDense(m, k, nil)
	for c := 0; c < k; c++ {
		col := make([]complex128, m)
		for i := 0; i < m; i++ {
			col[i] = phiAug.At(i, c)
		}
		nrm := gonumExtensions.Norm2(col)
		if nrm == 0 {
			return nil, fmt.Errorf("%w: mode %d vanishes at zero delay", koopman.ErrNumericalInstability, c)
		}
		inv := complex(1/nrm, 0)
		for i := 0; i < m; i++ {
			phi.Set(i, c, col[i]*inv)
		}
		b[c] *= complex(nrm, 0)
	}
	return assemble(r.mu, lambda, phi, b)
}

// Windowed is the one-call form of WindowedEstimator.
func Windowed(u *mat.CDense, dt float64, window int) (*koopman.Decomposition, error) {
	return WindowedEstimator{Window: window}.Decompose(u, dt)
}

// augment stacks window time-shifted copies of u into an (M·window)×(N-window+1)
// matrix.
func augment(u *mat.CDense, window int) *mat.CDense {
	m, n := u.Dims()
	cols := n - window + 1
	g := mat.NewCDense(m*window, cols, nil)
	for j := 0; j < window; j++ {
		for i := 0; i < m; i++ {
			for c := 0; c < cols; c++ {
				g.Set(j*m+i, c, u.At(i, j+c))
			}
		}
	}
	return g
}
