package optics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// SigmaToFWHM converts a Gaussian sigma into a full width at half maximum.
const SigmaToFWHM = 2.355

// GaussianParams describes a·exp(-(x-x0)²/(2σ²)).
type GaussianParams struct {
	Amplitude, Center, Sigma float64
}

// Gaussian evaluates the profile at x.
func Gaussian(x float64, p GaussianParams) float64 {
	d := x - p.Center
	return p.Amplitude * math.Exp(-d*d/(2*p.Sigma*p.Sigma))
}

// FWHM returns |σ|·SigmaToFWHM.
func (p GaussianParams) FWHM() float64 { return math.Abs(p.Sigma) * SigmaToFWHM }

var ErrEmptyProfile = errors.New("profile has no positive samples")

// FitGaussian least-squares fits a Gaussian to (x, y) starting from guess.
// The fit runs in coordinates normalized by the guess so the simplex scale
// does not depend on physical units.
func FitGaussian(x, y []float64, guess GaussianParams) (GaussianParams, error) {
	if len(x) != len(y) || len(x) < 3 {
		return GaussianParams{}, fmt.Errorf("need at least 3 matching samples, got %d/%d", len(x), len(y))
	}
	if floats.Max(y) <= 0 {
		return GaussianParams{}, ErrEmptyProfile
	}
	sa, sx := guess.Amplitude, guess.Sigma
	if sa == 0 {
		sa = floats.Max(y)
	}
	if sx == 0 {
		sx = 1
	}
	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i := range x {
		xs[i] = x[i] / sx
		ys[i] = y[i] / sa
	}
	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			g := GaussianParams{Amplitude: p[0], Center: p[1], Sigma: p[2]}
			if g.Sigma == 0 {
				return math.Inf(1)
			}
			sum := 0.0
			for i := range xs {
				r := Gaussian(xs[i], g) - ys[i]
				sum += r * r
			}
			return sum
		},
	}
	init := []float64{guess.Amplitude / sa, guess.Center / sx, guess.Sigma / sx}
	settings := &optimize.Settings{MajorIterations: 5000}
	res, err := optimize.Minimize(problem, init, settings, &optimize.NelderMead{})
	if err != nil {
		return GaussianParams{}, fmt.Errorf("gaussian fit did not converge: %w", err)
	}
	fit := GaussianParams{
		Amplitude: res.X[0] * sa,
		Center:    res.X[1] * sx,
		Sigma:     math.Abs(res.X[2]) * sx,
	}
	if !finite(fit.Amplitude) || !finite(fit.Center) || !finite(fit.Sigma) || fit.Sigma == 0 {
		return fit, fmt.Errorf("gaussian fit degenerate: %+v", fit)
	}
	return fit, nil
}
