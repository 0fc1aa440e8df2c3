package gonumExtensions

import (
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func randomCDense(m, n int, rng *rand.Rand) *mat.CDense {
	data := make([]complex128, m*n)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return mat.NewCDense(m, n, data)
}

// TestEmbedAction verifies T(Z)(a;b) equals Z(a+ib) split into parts.
func TestEmbedAction(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	z := randomCDense(4, 3, rng)
	w := make([]complex128, 3)
	for i := range w {
		w[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	// Direct product Zw.
	want := make([]complex128, 4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			want[i] += z.At(i, j) * w[j]
		}
	}

	// Embedded product.
	e := Embed(z)
	phi := mat.NewVecDense(6, nil)
	for i := range w {
		phi.SetVec(i, real(w[i]))
		phi.SetVec(3+i, imag(w[i]))
	}
	var out mat.VecDense
	out.MulVec(e, phi)

	for i := 0; i < 4; i++ {
		got := complex(out.AtVec(i), out.AtVec(4+i))
		assert.InDelta(t, 0, cmplx.Abs(got-want[i]), 1e-12)
	}
}

// TestMul checks the cblas128-backed product against a direct triple loop.
func TestMul(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomCDense(4, 3, rng)
	b := randomCDense(3, 5, rng)

	c := Mul(a, b)
	m, n := c.Dims()
	require.Equal(t, 4, m)
	require.Equal(t, 5, n)
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			var want complex128
			for k := 0; k < 3; k++ {
				want += a.At(i, k) * b.At(k, j)
			}
			assert.InDelta(t, 0, cmplx.Abs(c.At(i, j)-want), 1e-12)
		}
	}

	assert.Panics(t, func() { Mul(a, randomCDense(4, 2, rng)) })
}

// TestMulConjTrans checks Aᴴ B against the explicit conjugated loop.
func TestMulConjTrans(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	a := randomCDense(4, 3, rng)
	b := randomCDense(4, 2, rng)

	c := MulConjTrans(a, b)
	m, n := c.Dims()
	require.Equal(t, 3, m)
	require.Equal(t, 2, n)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			var want complex128
			for k := 0; k < 4; k++ {
				want += cmplx.Conj(a.At(k, i)) * b.At(k, j)
			}
			assert.InDelta(t, 0, cmplx.Abs(c.At(i, j)-want), 1e-12)
		}
	}

	assert.Panics(t, func() { MulConjTrans(a, randomCDense(3, 2, rng)) })
}

func TestNANORINF(t *testing.T) {
	clean := mat.NewCDense(2, 2, []complex128{1, 2i, 3, 4})
	assert.False(t, NANORINF(clean))

	dirty := mat.NewCDense(2, 2, []complex128{1, cmplx.NaN(), 3, 4})
	assert.True(t, NANORINF(dirty))

	inf := mat.NewCDense(2, 2, []complex128{1, 2, cmplx.Inf(), 4})
	assert.True(t, NANORINF(inf))
}

// TestTruncatedSVDFactors checks unitarity of the factors and the
// reconstruction U diag(s) Vᴴ == Z on a full-rank random complex matrix.
func TestTruncatedSVDFactors(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	m, n := 6, 4
	z := randomCDense(m, n, rng)

	u, s, v, err := TruncatedSVD(z, 0, 0)
	require.NoError(t, err)
	require.Len(t, s, n)

	for k := 1; k < len(s); k++ {
		assert.LessOrEqual(t, s[k], s[k-1], "singular values must be non-increasing")
	}

	// Uᴴ U = I and Vᴴ V = I.
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			want := 0.0
			if a == b {
				want = 1.0
			}
			assert.InDelta(t, want, cmplx.Abs(Dotc(Column(u, a), Column(u, b))), 1e-10)
			assert.InDelta(t, want, cmplx.Abs(Dotc(Column(v, a), Column(v, b))), 1e-10)
		}
	}

	// Reconstruction.
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var got complex128
			for k := range s {
				got += u.At(i, k) * complex(s[k], 0) * cmplx.Conj(v.At(j, k))
			}
			assert.InDelta(t, 0, cmplx.Abs(got-z.At(i, j)), 1e-10)
		}
	}
}

// TestTruncatedSVDRankOne verifies the truncation policy discards the
// numerically zero part of a rank-one outer product.
func TestTruncatedSVDRankOne(t *testing.T) {
	m, n := 8, 5
	a := make([]complex128, m)
	b := make([]complex128, n)
	for i := range a {
		a[i] = cmplx.Exp(complex(0, float64(i))) * complex(1+float64(i), 0)
	}
	for j := range b {
		b[j] = cmplx.Exp(complex(0.1, -0.3) * complex(float64(j), 0))
	}
	z := mat.NewCDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			z.Set(i, j, a[i]*b[j])
		}
	}

	_, s, _, err := TruncatedSVD(z, 0, 0)
	require.NoError(t, err)
	assert.Len(t, s, 1)

	// Explicit cap takes precedence over the spectrum.
	_, s, _, err = TruncatedSVD(z, 1e-300, 1)
	require.NoError(t, err)
	assert.Len(t, s, 1)
}

func TestTruncatedSVDZeroMatrix(t *testing.T) {
	z := mat.NewCDense(3, 3, nil)
	u, s, v, err := TruncatedSVD(z, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.Nil(t, v)
	assert.Empty(t, s)
}

// TestEigDiagonal recovers the diagonal of a genuinely complex matrix.
func TestEigDiagonal(t *testing.T) {
	want := []complex128{2 + 3i, 1 - 1i, -0.5 + 0.25i}
	a := mat.NewCDense(3, 3, nil)
	for i, w := range want {
		a.Set(i, i, w)
	}

	vals, vecs, err := Eig(a)
	require.NoError(t, err)
	require.Len(t, vals, 3)

	for _, w := range want {
		found := false
		for _, v := range vals {
			if cmplx.Abs(v-w) < 1e-10 {
				found = true
				break
			}
		}
		assert.True(t, found, "missing eigenvalue %v", w)
	}
	assertEigResiduals(t, a, vals, vecs, 1e-10)
}

// TestEigRealRotation exercises the doubled-spectrum path: a real matrix
// embeds with every eigenvalue duplicated and conjugate-symmetric.
func TestEigRealRotation(t *testing.T) {
	a := mat.NewCDense(2, 2, []complex128{0, 1, -1, 0})
	vals, vecs, err := Eig(a)
	require.NoError(t, err)
	require.Len(t, vals, 2)

	foundPlus, foundMinus := false, false
	for _, v := range vals {
		if cmplx.Abs(v-1i) < 1e-10 {
			foundPlus = true
		}
		if cmplx.Abs(v+1i) < 1e-10 {
			foundMinus = true
		}
	}
	assert.True(t, foundPlus && foundMinus, "rotation spectrum must be ±i, got %v", vals)
	assertEigResiduals(t, a, vals, vecs, 1e-10)
}

func TestEigRandomResiduals(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomCDense(5, 5, rng)
	vals, vecs, err := Eig(a)
	require.NoError(t, err)
	require.Len(t, vals, 5)
	assertEigResiduals(t, a, vals, vecs, 1e-9)
}

func TestEigNonSquare(t *testing.T) {
	_, _, err := Eig(mat.NewCDense(2, 3, nil))
	assert.Error(t, err)
}

// assertEigResiduals checks ‖A z − λ z‖ ≈ 0 column by column.
func assertEigResiduals(t *testing.T, a *mat.CDense, vals []complex128, vecs *mat.CDense, tol float64) {
	t.Helper()
	n, _ := a.Dims()
	for k, lambda := range vals {
		z := Column(vecs, k)
		require.InDelta(t, 1, Norm2(z), 1e-10, "eigenvector %d not unit norm", k)
		var resid float64
		for i := 0; i < n; i++ {
			var az complex128
			for j := 0; j < n; j++ {
				az += a.At(i, j) * z[j]
			}
			d := az - lambda*z[i]
			resid += real(d)*real(d) + imag(d)*imag(d)
		}
		assert.LessOrEqual(t, math.Sqrt(resid), tol, "residual too large for eigenvalue %v", lambda)
	}
}

// TestLeastSquares solves an exactly determined tall system.
func TestLeastSquares(t *testing.T) {
	a := mat.NewCDense(3, 2, []complex128{
		1, 0,
		0, 1i,
		1, 1,
	})
	want := []complex128{2 - 1i, 3 + 0.5i}
	rhs := make([]complex128, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			rhs[i] += a.At(i, j) * want[j]
		}
	}

	got, err := LeastSquares(a, rhs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for j := range want {
		assert.InDelta(t, 0, cmplx.Abs(got[j]-want[j]), 1e-10)
	}
}

func TestLeastSquaresDimensionMismatch(t *testing.T) {
	a := mat.NewCDense(3, 2, nil)
	_, err := LeastSquares(a, []complex128{1, 2})
	assert.Error(t, err)
}
