// Package field carries the spatiotemporal data matrix together with its
// coordinate axes. A Field couples an M×N complex matrix to a spatial axis
// x of length M and a time axis t of length N; both axes must be strictly
// increasing and uniformly spaced, which is what makes the discrete to
// continuous eigenvalue conversion of the estimators well defined. A Field
// is treated as immutable once built.
package field

import (
	"fmt"
	"math"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// spacingTol is the accepted relative deviation from uniform axis spacing.
const spacingTol = 1e-9

// Field is a spatiotemporal data matrix with its sampling grid.
type Field struct {
	// Data is M×N: row i is the time series observed at X[i], column j the
	// spatial snapshot at T[j].
	Data *mat.CDense
	// X is the spatial axis, length M.
	X []float64
	// T is the time axis, length N.
	T []float64
	// Dx and Dt are the constant grid spacings.
	Dx float64
	Dt float64
}

// New validates data against its axes and builds a Field. The data matrix
// must be finite and non-empty, and both axes strictly increasing with
// constant spacing.
func New(data *mat.CDense, x, t []float64) (*Field, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil data matrix", koopman.ErrInvalidInput)
	}
	m, n := data.Dims()
	if len(x) != m || len(t) != n {
		return nil, fmt.Errorf("%w: axes (%d, %d) do not match data (%d, %d)",
			koopman.ErrInvalidInput, len(x), len(t), m, n)
	}
	if gonumExtensions.NANORINF(data) {
		return nil, fmt.Errorf("%w: data matrix contains NaN or Inf", koopman.ErrInvalidInput)
	}
	dx, err := uniformSpacing(x, "x")
	if err != nil {
		return nil, err
	}
	dt, err := uniformSpacing(t, "t")
	if err != nil {
		return nil, err
	}
	return &Field{Data: data, X: x, T: t, Dx: dx, Dt: dt}, nil
}

// Dims returns the spatial and temporal extents of the field.
func (f *Field) Dims() (m, n int) {
	return f.Data.Dims()
}

// uniformSpacing returns the constant step of a strictly increasing axis.
// Single-point axes have zero spacing.
func uniformSpacing(axis []float64, name string) (float64, error) {
	for _, v := range axis {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("%w: %s axis contains NaN or Inf", koopman.ErrInvalidInput, name)
		}
	}
	if len(axis) < 2 {
		return 0, nil
	}
	d := axis[1] - axis[0]
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s axis is not strictly increasing", koopman.ErrInvalidParameter, name)
	}
	for i := 1; i < len(axis); i++ {
		step := axis[i] - axis[i-1]
		if step <= 0 {
			return 0, fmt.Errorf("%w: %s axis is not strictly increasing", koopman.ErrInvalidParameter, name)
		}
		if math.Abs(step-d) > spacingTol*math.Abs(d) {
			return 0, fmt.Errorf("%w: %s axis is not uniformly spaced", koopman.ErrInvalidParameter, name)
		}
	}
	return d, nil
}
