package field_test

import (
	"math/cmplx"
	"testing"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewField(t *testing.T) {
	data := mat.NewCDense(2, 3, []complex128{1, 2, 3, 4, 5, 6})
	f, err := field.New(data, []float64{0, 0.5}, []float64{0, 0.1, 0.2})
	require.NoError(t, err)

	m, n := f.Dims()
	assert.Equal(t, 2, m)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 0.5, f.Dx, 1e-12)
	assert.InDelta(t, 0.1, f.Dt, 1e-12)
}

func TestNewFieldRejectsAxisMismatch(t *testing.T) {
	data := mat.NewCDense(2, 3, nil)
	_, err := field.New(data, []float64{0}, []float64{0, 1, 2})
	assert.ErrorIs(t, err, koopman.ErrInvalidInput)
}

func TestNewFieldRejectsNonFinite(t *testing.T) {
	data := mat.NewCDense(1, 2, []complex128{1, cmplx.Inf()})
	_, err := field.New(data, []float64{0}, []float64{0, 1})
	assert.ErrorIs(t, err, koopman.ErrInvalidInput)
}

func TestNewFieldRejectsBadAxes(t *testing.T) {
	data := mat.NewCDense(1, 3, []complex128{1, 2, 3})

	// Decreasing.
	_, err := field.New(data, []float64{0}, []float64{0, -1, -2})
	assert.ErrorIs(t, err, koopman.ErrInvalidParameter)

	// Non-uniform.
	_, err = field.New(data, []float64{0}, []float64{0, 1, 3})
	assert.ErrorIs(t, err, koopman.ErrInvalidParameter)

	// Repeated point.
	_, err = field.New(data, []float64{0}, []float64{0, 0, 1})
	assert.ErrorIs(t, err, koopman.ErrInvalidParameter)
}
