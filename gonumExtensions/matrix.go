// Package gonumExtensions supplies the complex linear algebra that
// gonum.org/v1/gonum/mat only ships for real matrices. A complex matrix
// Z = X + iY is represented by the real block embedding
//
//	T(Z) = [X -Y; Y X]
//
// which satisfies T(Z) (a; b) = Z (a + ib) split into real and imaginary
// parts, so gonum's real SVD and eigendecomposition kernels carry over to
// complex input. Singular values and eigenvalues of T(Z) appear twice; the
// routines in this package collapse those duplicates back to the complex
// factors.
package gonumExtensions

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// NANORINF checks if there are any NaN or Inf entries in matrix
func NANORINF(matrix mat.CMatrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			v := matrix.At(row, col)
			if cmplx.IsNaN(v) || cmplx.IsInf(v) {
				return true
			}
		}
	}
	return false
}

// Embed returns the real block embedding T(Z) of a complex matrix.
func Embed(z mat.CMatrix) *mat.Dense {
	m, n := z.Dims()
	r := mat.NewDense(2*m, 2*n, nil)
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			v := z.At(row, col)
			re, im := real(v), imag(v)
			r.Set(row, col, re)
			r.Set(row, n+col, -im)
			r.Set(m+row, col, im)
			r.Set(m+row, n+col, re)
		}
	}
	return r
}

// Mul returns the product A B of two complex matrices. mat.CDense carries
// no arithmetic methods, so the product goes through the cblas128 kernel
// directly. Panics with mat.ErrShape on mismatched inner dimensions.
func Mul(a, b *mat.CDense) *mat.CDense {
	m, ka := a.Dims()
	kb, n := b.Dims()
	if ka != kb {
		panic(mat.ErrShape)
	}
	c := mat.NewCDense(m, n, nil)
	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1, a.RawCMatrix(), b.RawCMatrix(), 0, c.RawCMatrix())
	return c
}

// MulConjTrans returns the product Aᴴ B.
func MulConjTrans(a, b *mat.CDense) *mat.CDense {
	ma, n := a.Dims()
	mb, nb := b.Dims()
	if ma != mb {
		panic(mat.ErrShape)
	}
	c := mat.NewCDense(n, nb, nil)
	cblas128.Gemm(blas.ConjTrans, blas.NoTrans, 1, a.RawCMatrix(), b.RawCMatrix(), 0, c.RawCMatrix())
	return c
}

// Column copies column j of a complex matrix into a fresh slice.
func Column(a mat.CMatrix, j int) []complex128 {
	m, _ := a.Dims()
	out := make([]complex128, m)
	for i := 0; i < m; i++ {
		out[i] = a.At(i, j)
	}
	return out
}

// unembedColumn maps column j of an embedded 2n-row real matrix back to a
// complex n-vector, top block carrying the real part, bottom block the
// imaginary part.
func unembedColumn(a *mat.Dense, j, n int) []complex128 {
	out := make([]complex128, n)
	for i := 0; i < n; i++ {
		out[i] = complex(a.At(i, j), a.At(n+i, j))
	}
	return out
}

// Norm2 returns the Euclidean norm of a complex vector.
func Norm2(v []complex128) float64 {
	var sum float64
	for _, x := range v {
		re, im := real(x), imag(x)
		sum += re*re + im*im
	}
	return math.Sqrt(sum)
}

// Dotc returns the Hermitian inner product conj(a)·b.
func Dotc(a, b []complex128) complex128 {
	var sum complex128
	for i := range a {
		sum += cmplx.Conj(a[i]) * b[i]
	}
	return sum
}

// axpy computes y += alpha*x in place.
func axpy(y []complex128, alpha complex128, x []complex128) {
	for i := range y {
		y[i] += alpha * x[i]
	}
}

// scale computes v *= alpha in place.
func scale(v []complex128, alpha complex128) {
	for i := range v {
		v[i] *= alpha
	}
}
