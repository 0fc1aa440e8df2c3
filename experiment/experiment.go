// Package experiment orchestrates estimator runs over a benchmark field.
// The estimators share no state and have no ordering dependency, so a run
// centers the data once and fans the algorithms out concurrently, gathering
// one ranked decomposition per estimator.
package experiment

import (
	"math/cmplx"
	"sync"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/dmd"
	"github.com/hedgefair/koopman/field"
	"github.com/hedgefair/koopman/kdft"
	"github.com/hedgefair/koopman/signal"
)

// Estimator pairs a Decomposer with a report label.
type Estimator struct {
	Name       string
	Decomposer koopman.Decomposer
}

// Result is one estimator's outcome. Either Decomposition (ranked by
// amplitude) or Err is set.
type Result struct {
	Name          string
	Decomposition *koopman.Decomposition
	Err           error
}

// Default returns the three benchmark estimators: exact DMD, the windowed
// variant with the given window length and the spectral reference.
func Default(window int) []Estimator {
	return []Estimator{
		{Name: "exact-dmd", Decomposer: dmd.ExactEstimator{}},
		{Name: "windowed-dmd", Decomposer: dmd.WindowedEstimator{Window: window}},
		{Name: "kdft", Decomposer: kdft.Estimator{}},
	}
}

// Run removes the temporal mean of f once and applies every estimator to
// the centered matrix concurrently. Results arrive in the order of ests;
// per-estimator failures land in the matching Result rather than aborting
// the others.
func Run(f *field.Field, ests []Estimator) ([]Result, error) {
	centered, _, err := koopman.RemoveMean(f.Data)
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(ests))
	var wg sync.WaitGroup
	wg.Add(len(ests))
	for i, est := range ests {
		go func(i int, est Estimator) {
			defer wg.Done()
			d, err := est.Decomposer.Decompose(centered, f.Dt)
			if err != nil {
				results[i] = Result{Name: est.Name, Err: err}
				return
			}
			results[i] = Result{Name: est.Name, Decomposition: koopman.Rank(d)}
		}(i, est)
	}
	wg.Wait()
	return results, nil
}

// NoiseSweep synthesizes the harmonics on the grid x × t, degrades the
// field with multiplicative noise at every ratio (same seed throughout, so
// the perturbation grows continuously) and reports each estimator's
// dominant amplitude magnitude: out[e][r] belongs to ests[e] at ratios[r].
func NoiseSweep(h []signal.Harmonic, x, t []float64, ratios []float64, seed int64, ests []Estimator) ([][]float64, error) {
	base, err := signal.Synthesize(h, x, t)
	if err != nil {
		return nil, err
	}

	out := make([][]float64, len(ests))
	for e := range out {
		out[e] = make([]float64, len(ratios))
	}
	for r, ratio := range ratios {
		noisy, err := signal.WithMultiplicativeNoise(base, ratio, seed)
		if err != nil {
			return nil, err
		}
		results, err := Run(noisy, ests)
		if err != nil {
			return nil, err
		}
		for e, res := range results {
			if res.Err != nil {
				return nil, res.Err
			}
			out[e][r] = cmplx.Abs(res.Decomposition.Amplitudes[0])
		}
	}
	return out, nil
}
