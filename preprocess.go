package koopman

import (
	"fmt"

	"github.com/hedgefair/koopman/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// RemoveMean subtracts the per-row temporal mean from u and returns the
// centered matrix together with the mean vector, so that
// u = centered + mean broadcast over columns. All estimators expect their
// input centered this way. The input is left untouched.
func RemoveMean(u *mat.CDense) (centered *mat.CDense, mean []complex128, err error) {
	if u == nil {
		return nil, nil, fmt.Errorf("%w: nil data matrix", ErrInvalidInput)
	}
	m, n := u.Dims()
	if m == 0 || n == 0 {
		return nil, nil, fmt.Errorf("%w: empty data matrix", ErrInvalidInput)
	}
	if gonumExtensions.NANORINF(u) {
		return nil, nil, fmt.Errorf("%w: data matrix contains NaN or Inf", ErrInvalidInput)
	}

	mean = make([]complex128, m)
	inv := complex(1/float64(n), 0)
	for i := 0; i < m; i++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += u.At(i, j)
		}
		mean[i] = sum * inv
	}

	centered = mat.NewCDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			centered.Set(i, j, u.At(i, j)-mean[i])
		}
	}
	return centered, mean, nil
}
