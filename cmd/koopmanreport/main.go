// Command koopmanreport runs the three Koopman estimators against a
// synthetic benchmark field and prints their leading modes side by side.
//
// Usage:
//
//	koopmanreport [flags]
//
// Examples:
//
//	koopmanreport
//	koopmanreport -m 64 -n 128 -window 20
//	koopmanreport -noise 0.05 -seed 3
//	koopmanreport -plots -out /tmp/koopman
package main

import (
	"flag"
	"fmt"
	"math/cmplx"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/hedgefair/koopman/experiment"
	"github.com/hedgefair/koopman/field"
	"github.com/hedgefair/koopman/signal"
	"github.com/hedgefair/koopman/visualize"
)

func main() {
	var (
		m        = flag.Int("m", 64, "spatial points")
		n        = flag.Int("n", 128, "temporal snapshots")
		xmax     = flag.Float64("xmax", 1, "spatial extent, sampled on [0, xmax)")
		tmax     = flag.Float64("tmax", 2, "temporal extent, sampled on [0, tmax)")
		spatial  = flag.String("spatial", "1+5i", "spatial complex frequency")
		temporal = flag.String("temporal", "0+20i", "temporal complex frequency")
		noise    = flag.Float64("noise", 0, "multiplicative noise-to-signal ratio")
		seed     = flag.Int64("seed", 1, "noise seed")
		window   = flag.Int("window", 20, "windowed DMD delay count")
		top      = flag.Int("top", 5, "modes to report per estimator")
		plots    = flag.Bool("plots", false, "write diagnostic PNG plots")
		out      = flag.String("out", ".", "output directory for plots")
	)
	flag.Parse()

	if err := run(*m, *n, *xmax, *tmax, *spatial, *temporal, *noise, *seed, *window, *top, *plots, *out); err != nil {
		fmt.Fprintf(os.Stderr, "koopmanreport: %v\n", err)
		os.Exit(1)
	}
}

func run(m, n int, xmax, tmax float64, spatial, temporal string, noise float64, seed int64, window, top int, plots bool, out string) error {
	sp, err := parseComplex(spatial)
	if err != nil {
		return fmt.Errorf("bad -spatial: %w", err)
	}
	tp, err := parseComplex(temporal)
	if err != nil {
		return fmt.Errorf("bad -temporal: %w", err)
	}

	harmonics := []signal.Harmonic{{Spatial: sp, Temporal: tp, Amplitude: 1}}
	f, err := signal.Synthesize(harmonics, signal.Axis(0, xmax, m), signal.Axis(0, tmax, n))
	if err != nil {
		return err
	}
	if noise > 0 {
		if f, err = signal.WithMultiplicativeNoise(f, noise, seed); err != nil {
			return err
		}
	}

	results, err := experiment.Run(f, experiment.Default(window))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "estimator\tmode\tRe λ\tIm λ\t|μ|\t|b|\n")
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%s\tfailed: %v\n", res.Name, res.Err)
			continue
		}
		k := top
		if k > res.Decomposition.Len() {
			k = res.Decomposition.Len()
		}
		for i := 0; i < k; i++ {
			fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%.4g\t%.4g\n",
				res.Name, i,
				real(res.Decomposition.Eigenvalues[i]),
				imag(res.Decomposition.Eigenvalues[i]),
				cmplx.Abs(res.Decomposition.DiscreteEigenvalues[i]),
				cmplx.Abs(res.Decomposition.Amplitudes[i]))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plots {
		return writePlots(f, results, top, out)
	}
	return nil
}

func writePlots(f *field.Field, results []experiment.Result, top int, out string) error {
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	if err := visualize.Spectrum(f, filepath.Join(out, "spectrum.png")); err != nil {
		return err
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		base := filepath.Join(out, res.Name)
		if err := visualize.EigenvalueSpectrum(res.Decomposition, base+"-eigenvalues.png"); err != nil {
			return err
		}
		if err := visualize.Modes(f.X, res.Decomposition, top, base+"-modes.png"); err != nil {
			return err
		}
	}
	return nil
}

// parseComplex reads "a+bi" style literals.
func parseComplex(s string) (complex128, error) {
	return strconv.ParseComplex(s, 128)
}
