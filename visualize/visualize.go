// Package visualize renders diagnostic plots for a benchmark run: the
// per-bin power spectrum of a field, the eigenvalue layout in the complex
// plane and the leading spatial modes.
package visualize

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/hedgefair/koopman"
	"github.com/hedgefair/koopman/field"
	"github.com/hedgefair/koopman/kdft"
)

// Spectrum plots the field's temporal power spectrum, |b_k|² of the
// spectral decomposition against the bin angular frequency, and saves it
// as PNG to path.
func Spectrum(f *field.Field, path string) error {
	d, err := kdft.Decompose(f.Data, f.Dt)
	if err != nil {
		return err
	}

	pts := make(plotter.XYs, d.Len())
	for k := 0; k < d.Len(); k++ {
		a := cmplx.Abs(d.Amplitudes[k])
		pts[k] = plotter.XY{X: imag(d.Eigenvalues[k]), Y: a * a}
	}

	p := plot.New()
	p.Title.Text = "Power spectrum"
	p.X.Label.Text = "angular frequency [rad/s]"
	p.Y.Label.Text = "power"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("visualize: spectrum line: %w", err)
	}
	p.Add(line, plotter.NewGrid())
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}

// EigenvalueSpectrum scatters the decomposition's continuous eigenvalues in
// the complex plane, growth rate against angular frequency, and saves it as
// PNG to path.
func EigenvalueSpectrum(d *koopman.Decomposition, path string) error {
	pts := make(plotter.XYs, d.Len())
	for k, lambda := range d.Eigenvalues {
		pts[k] = plotter.XY{X: real(lambda), Y: imag(lambda)}
	}

	p := plot.New()
	p.Title.Text = "Koopman eigenvalues"
	p.X.Label.Text = "Re λ (growth rate)"
	p.Y.Label.Text = "Im λ (angular frequency)"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("visualize: eigenvalue scatter: %w", err)
	}
	p.Add(scatter, plotter.NewGrid())
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// Modes plots the doubled real part of the top modes of d over the spatial
// axis x and saves it as PNG to path. Doubling the real part compensates
// for the implicit conjugate partner each complex mode carries in a
// real-valued reconstruction.
func Modes(x []float64, d *koopman.Decomposition, top int, path string) error {
	ranked := koopman.TopN(d, top)
	if ranked.Len() == 0 {
		return fmt.Errorf("%w: no modes to plot", koopman.ErrInvalidParameter)
	}
	if m, _ := ranked.Modes.Dims(); len(x) != m {
		return fmt.Errorf("%w: axis length %d does not match mode rows %d",
			koopman.ErrInvalidInput, len(x), m)
	}

	p := plot.New()
	p.Title.Text = "Leading Koopman modes"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "2·Re Φ"

	args := make([]interface{}, 0, 2*ranked.Len())
	for k := 0; k < ranked.Len(); k++ {
		pts := make(plotter.XYs, len(x))
		for i := range x {
			pts[i] = plotter.XY{X: x[i], Y: 2 * real(ranked.Modes.At(i, k))}
		}
		name := fmt.Sprintf("λ=%.3g%+.3gi", real(ranked.Eigenvalues[k]), imag(ranked.Eigenvalues[k]))
		args = append(args, name, pts)
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return fmt.Errorf("visualize: mode lines: %w", err)
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, path)
}
