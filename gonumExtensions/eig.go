package gonumExtensions

import (
	"errors"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by Eig.
var (
	ErrEigFailed     = errors.New("gonumExtensions: eigendecomposition failed to converge")
	ErrEigSeparation = errors.New("gonumExtensions: could not separate the embedded spectrum")
)

// Eig computes the eigendecomposition of a general (non-Hermitian) square
// complex matrix A through the real block embedding T(A). The spectrum of
// T(A) is eig(A) together with its complex conjugate; an eigenvector w of
// T(A), split as w = (p; q), projects onto an eigenvector z = p + iq of A
// exactly when the eigenvalue belongs to eig(A), and onto zero when it only
// belongs to the conjugate copy. Scanning all 2n embedded pairs and keeping
// the n nonvanishing projections (deduplicated for doubled eigenvalues,
// which occur whenever eig(A) is conjugate-symmetric, e.g. for real-valued
// data) recovers vals and unit-norm eigenvector columns of A.
//
// The acceptance order follows the LAPACK output order, so identical input
// produces identical output.
func Eig(a *mat.CDense) (vals []complex128, vecs *mat.CDense, err error) {
	n, nc := a.Dims()
	if n != nc {
		return nil, nil, errors.New("gonumExtensions: eigendecomposition of a non-square matrix")
	}

	var eig mat.Eigen
	if ok := eig.Factorize(Embed(a), mat.EigenRight); !ok {
		return nil, nil, ErrEigFailed
	}
	ev := eig.Values(nil)
	var w mat.CDense
	eig.VectorsTo(&w)

	const (
		projTol  = 1e-8 // minimum surviving norm of the projection
		paralTol = 1e-6 // |cos angle| threshold for duplicate directions
	)
	var kept [][]complex128
	for j := 0; j < 2*n && len(vals) < n; j++ {
		col := Column(&w, j)
		z := make([]complex128, n)
		for i := 0; i < n; i++ {
			z[i] = col[i] + 1i*col[n+i]
		}
		nrm := Norm2(z)
		if nrm < projTol*Norm2(col) {
			// Conjugate-copy eigenvector, carries no information about A.
			continue
		}
		scale(z, complex(1/nrm, 0))

		dup := false
		for k, zk := range kept {
			sameVal := absC(ev[j]-vals[k]) <= 1e-8*(1+absC(ev[j]))
			if sameVal && absC(Dotc(zk, z)) >= 1-paralTol {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		vals = append(vals, ev[j])
		kept = append(kept, z)
	}
	if len(vals) != n {
		return nil, nil, ErrEigSeparation
	}

	vecs = mat.NewCDense(n, n, nil)
	for c, z := range kept {
		for i := 0; i < n; i++ {
			vecs.Set(i, c, z[i])
		}
	}
	return vals, vecs, nil
}

func absC(v complex128) float64 {
	return cmplx.Abs(v)
}
