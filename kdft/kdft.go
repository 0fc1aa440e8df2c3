// Package kdft estimates Koopman triples with a per-row discrete Fourier
// transform. It assumes nothing about the data beyond the periodicity a
// finite-length transform implies, which makes it the reference technique
// for purely oscillatory synthetic signals: every DFT bin becomes one mode
// with a purely imaginary eigenvalue on the bin frequency.
package kdft

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/gonumExtensions"
)

// Estimator is the spectral Koopman estimator. It has no parameters; the
// zero value is ready to use.
type Estimator struct{}

var _ koopman.Decomposer = Estimator{}

// Decompose transforms every spatial row independently along the time axis.
// Bin k yields
//
//	λ_k = 2πi·k'/(N·Δt)    (k' = k−N for k > N/2, the principal alias)
//	Φ_k = per-row coefficients at bin k, unit-normalized
//	b_k = ‖C[:,k]‖/N
//
// Amplitudes are kept separate from the modes; with this split the sum
// Σ b_k Φ_k equals the first snapshot exactly, by the inverse transform
// evaluated at time zero. Bins with no content get a zero mode and zero
// amplitude. Decompose always succeeds on non-empty finite input.
func (Estimator) Decompose(u *mat.CDense, dt float64) (*koopman.Decomposition, error) {
	if u == nil {
		return nil, fmt.Errorf("%w: nil data matrix", koopman.ErrInvalidInput)
	}
	m, n := u.Dims()
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("%w: empty data matrix", koopman.ErrInvalidInput)
	}
	if gonumExtensions.NANORINF(u) {
		return nil, fmt.Errorf("%w: data matrix contains NaN or Inf", koopman.ErrInvalidInput)
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return nil, fmt.Errorf("%w: sample period %v", koopman.ErrInvalidParameter, dt)
	}

	fft := fourier.NewCmplxFFT(n)
	coefs := mat.NewCDense(m, n, nil)
	src := make([]complex128, n)
	dst := make([]complex128, n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			src[j] = u.At(i, j)
		}
		dst = fft.Coefficients(dst, src)
		for k := 0; k < n; k++ {
			coefs.Set(i, k, dst[k])
		}
	}

	d := &koopman.Decomposition{
		Eigenvalues:         make([]complex128, n),
		DiscreteEigenvalues: make([]complex128, n),
		Modes:               mat.NewCDense(m, n, nil),
		Amplitudes:          make([]complex128, n),
	}
	invN := 1 / float64(n)
	for k := 0; k < n; k++ {
		lambda := complex(0, binFrequency(k, n, dt))
		d.Eigenvalues[k] = lambda
		d.DiscreteEigenvalues[k] = cmplx.Exp(lambda * complex(dt, 0))

		col := gonumExtensions.Column(coefs, k)
		nrm := gonumExtensions.Norm2(col)
		d.Amplitudes[k] = complex(nrm*invN, 0)
		if nrm > 0 {
			inv := complex(1/nrm, 0)
			for i := 0; i < m; i++ {
				d.Modes.Set(i, k, col[i]*inv)
			}
		}
	}
	return d, nil
}

// Decompose is the one-call form of Estimator.
func Decompose(u *mat.CDense, dt float64) (*koopman.Decomposition, error) {
	return Estimator{}.Decompose(u, dt)
}

// binFrequency returns the angular frequency of DFT bin k folded to the
// principal strip (−π/Δt, π/Δt].
func binFrequency(k, n int, dt float64) float64 {
	if k > n/2 {
		k -= n
	}
	return 2 * math.Pi * float64(k) / (float64(n) * dt)
}
