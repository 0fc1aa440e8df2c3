package signal

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/field"
)

// WithMultiplicativeNoise returns a copy of f with every entry scaled by
// (1 + ratio·η), η drawn i.i.d. standard normal from a source seeded with
// seed. ratio is the noise-to-signal ratio; zero reproduces the input
// exactly. The same seed always yields the same noise draws, so sweeping
// the ratio with a fixed seed perturbs the field continuously.
func WithMultiplicativeNoise(f *field.Field, ratio float64, seed int64) (*field.Field, error) {
	if ratio < 0 {
		return nil, fmt.Errorf("%w: negative noise ratio %v", koopman.ErrInvalidParameter, ratio)
	}
	m, n := f.Dims()
	rng := rand.New(rand.NewSource(seed))

	data := mat.NewCDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			data.Set(i, j, f.Data.At(i, j)*complex(1+ratio*rng.NormFloat64(), 0))
		}
	}
	return field.New(data, f.X, f.T)
}
