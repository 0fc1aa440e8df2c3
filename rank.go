package koopman

import (
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Rank returns a fresh Decomposition reordered so that the amplitude
// magnitudes |b_k| are non-increasing. The sort is stable: modes with equal
// magnitude keep their original relative order, which makes Rank
// idempotent. The input is left untouched.
func Rank(d *Decomposition) *Decomposition {
	k := d.Len()
	perm := make([]int, k)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return cmplx.Abs(d.Amplitudes[perm[a]]) > cmplx.Abs(d.Amplitudes[perm[b]])
	})
	return permute(d, perm)
}

// TopN returns the n modes of largest amplitude magnitude as a fresh
// Decomposition. n is clamped to [0, K]; for n = 0 the Modes matrix is nil.
func TopN(d *Decomposition, n int) *Decomposition {
	ranked := Rank(d)
	if n < 0 {
		n = 0
	}
	if n >= ranked.Len() {
		return ranked
	}
	var modes *mat.CDense
	if n > 0 {
		m, _ := ranked.Modes.Dims()
		modes = mat.NewCDense(m, n, nil)
		for j := 0; j < n; j++ {
			for i := 0; i < m; i++ {
				modes.Set(i, j, ranked.Modes.At(i, j))
			}
		}
	}
	return &Decomposition{
		Eigenvalues:         ranked.Eigenvalues[:n:n],
		DiscreteEigenvalues: ranked.DiscreteEigenvalues[:n:n],
		Modes:               modes,
		Amplitudes:          ranked.Amplitudes[:n:n],
	}
}

func permute(d *Decomposition, perm []int) *Decomposition {
	k := d.Len()
	out := &Decomposition{
		Eigenvalues:         make([]complex128, k),
		DiscreteEigenvalues: make([]complex128, k),
		Amplitudes:          make([]complex128, k),
	}
	m := 0
	if d.Modes != nil {
		m, _ = d.Modes.Dims()
		out.Modes = mat.NewCDense(m, k, nil)
	}
	for to, from := range perm {
		out.Eigenvalues[to] = d.Eigenvalues[from]
		if d.DiscreteEigenvalues != nil {
			out.DiscreteEigenvalues[to] = d.DiscreteEigenvalues[from]
		}
		out.Amplitudes[to] = d.Amplitudes[from]
		for i := 0; i < m; i++ {
			out.Modes.Set(i, to, d.Modes.At(i, from))
		}
	}
	return out
}
