package gonumExtensions

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSVDFailed is returned when the underlying real SVD does not converge.
var ErrSVDFailed = errors.New("gonumExtensions: SVD failed to converge")

// TruncatedSVD computes the thin singular value decomposition
//
//	Z ≈ U diag(s) Vᴴ
//
// of a complex matrix through the real block embedding T(Z). Singular values
// of T(Z) are those of Z, each appearing twice; duplicates are collapsed by
// walking the spectrum in descending order and keeping one complex right
// singular vector per pair (Gram-Schmidt within groups of near-equal values
// guards against picking the same complex direction twice). Left vectors are
// then formed as U = Z V diag(1/s), which keeps the U/V phases consistent.
//
// Values below relTol*s_max are discarded; relTol <= 0 selects the default
// policy eps*max(m,n). maxRank > 0 additionally caps the returned rank.
// A zero (or fully truncated) matrix yields rank 0: nil factors and an empty
// value slice, with a nil error.
func TruncatedSVD(z *mat.CDense, relTol float64, maxRank int) (u *mat.CDense, s []float64, v *mat.CDense, err error) {
	m, n := z.Dims()

	var svd mat.SVD
	if ok := svd.Factorize(Embed(z), mat.SVDThinV); !ok {
		return nil, nil, nil, ErrSVDFailed
	}
	vals := svd.Values(nil)
	var vr mat.Dense
	svd.VTo(&vr)

	if relTol <= 0 {
		relTol = math.Nextafter(1, 2) - 1
		relTol *= float64(max(m, n))
	}
	cutoff := relTol * vals[0]
	if vals[0] == 0 {
		return nil, nil, nil, nil
	}

	// Collapse the doubled spectrum. groupTol merges values that are equal
	// up to roundoff so that each J-invariant singular subspace is handled
	// as one unit.
	const groupTol = 1e-10
	var cols [][]complex128
	i, k := 0, len(vals)
	for i < k && vals[i] > cutoff {
		if maxRank > 0 && len(cols) >= maxRank {
			break
		}
		j := i + 1
		for j < k && vals[i]-vals[j] <= groupTol*vals[0] {
			j++
		}
		g := (j - i + 1) / 2
		start := len(cols)
		for c := i; c < j && len(cols)-start < g; c++ {
			if maxRank > 0 && len(cols) >= maxRank {
				break
			}
			cand := unembedColumn(&vr, c, n)
			for _, kept := range cols[start:] {
				axpy(cand, -Dotc(kept, cand), kept)
			}
			// A column whose complex image collapses is the J-partner of an
			// already kept direction.
			if nrm := Norm2(cand); nrm > 0.5 {
				scale(cand, complex(1/nrm, 0))
				cols = append(cols, cand)
				s = append(s, vals[c])
			}
		}
		i = j
	}

	r := len(cols)
	if r == 0 {
		return nil, nil, nil, nil
	}

	v = mat.NewCDense(n, r, nil)
	for c, vec := range cols {
		for row := 0; row < n; row++ {
			v.Set(row, c, vec[row])
		}
	}

	u = Mul(z, v)
	for c := 0; c < r; c++ {
		inv := complex(1/s[c], 0)
		for row := 0; row < m; row++ {
			u.Set(row, c, u.At(row, c)*inv)
		}
	}
	return u, s, v, nil
}

// LeastSquares solves min ‖A x − rhs‖ for a complex matrix A through the
// truncated SVD pseudoinverse, x = V diag(1/s) Uᴴ rhs. For rank-deficient A
// this is the minimum-norm solution.
func LeastSquares(a *mat.CDense, rhs []complex128) ([]complex128, error) {
	m, n := a.Dims()
	if len(rhs) != m {
		return nil, errors.New("gonumExtensions: right hand side dimension mismatch")
	}
	u, s, v, err := TruncatedSVD(a, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(s) == 0 {
		return nil, errors.New("gonumExtensions: zero matrix in least squares")
	}
	x := make([]complex128, n)
	for k := range s {
		c := Dotc(Column(u, k), rhs) / complex(s[k], 0)
		axpy(x, c, Column(v, k))
	}
	return x, nil
}
