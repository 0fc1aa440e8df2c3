// Package signal builds the synthetic benchmark fields the estimators are
// validated against: superpositions of complex exponentials with prescribed
// spatial and temporal complex frequencies, optionally degraded by seeded
// multiplicative noise.
package signal

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/field"
)

// Harmonic is one complex exponential component of a synthetic field,
//
//	A · exp(Spatial·x) · exp(Temporal·t)
//
// The real part of a frequency is a growth rate (spatial envelope), the
// imaginary part a wavenumber respectively an angular frequency.
type Harmonic struct {
	Spatial   complex128
	Temporal  complex128
	Amplitude complex128
}

// Axis returns n uniformly spaced points from start up to but excluding
// stop, the half-open sampling grid the DFT estimator expects.
func Axis(start, stop float64, n int) []float64 {
	axis := make([]float64, n)
	switch n {
	case 0:
	case 1:
		axis[0] = start
	default:
		step := (stop - start) / float64(n)
		floats.Span(axis, start, stop-step)
	}
	return axis
}

// Synthesize evaluates the superposition of harmonics on the grid x × t and
// returns it as a validated Field.
func Synthesize(harmonics []Harmonic, x, t []float64) (*field.Field, error) {
	if len(harmonics) == 0 {
		return nil, fmt.Errorf("%w: no harmonics", koopman.ErrInvalidParameter)
	}
	m, n := len(x), len(t)
	if m == 0 || n == 0 {
		return nil, fmt.Errorf("%w: empty axis", koopman.ErrInvalidInput)
	}

	data := mat.NewCDense(m, n, nil)
	for _, h := range harmonics {
		for i := 0; i < m; i++ {
			space := h.Amplitude * cmplx.Exp(h.Spatial*complex(x[i], 0))
			for j := 0; j < n; j++ {
				data.Set(i, j, data.At(i, j)+space*cmplx.Exp(h.Temporal*complex(t[j], 0)))
			}
		}
	}
	return field.New(data, x, t)
}
