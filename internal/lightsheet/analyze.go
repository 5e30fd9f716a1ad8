package lightsheet

import (
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// AxisResolution is the cutoff-frequency resolution along one axis. When the
// MTF never falls below the noise floor Found is false and Value is the
// Nyquist bound of the padded grid.
type AxisResolution struct {
	Axis   Axis
	Cutoff int     // MTF index from the center
	Value  float64 // m
	Found  bool
}

// AxisFit is the Gaussian fit of one PSF profile. Err is a *FitError when
// the fit failed.
type AxisFit struct {
	Axis   Axis
	Params optics.GaussianParams
	FWHM   float64 // m
	Err    error
}

// Resolution finds, along each axis through the MTF center, the first
// frequency where the MTF meets the noise floor sqrt(max MTF).
func Resolution(mtf *optics.Volume, base float64) [3]AxisResolution {
	var out [3]AxisResolution
	c := mtf.N0 / 2
	at := [3]int{c, c, c}
	floor := math.Sqrt(mtf.Max())
	for n, a := range Axes {
		line := mtf.Line(a.volumeAxis(), at)
		r := AxisResolution{Axis: a}
		for idx := 1; c+idx < len(line); idx++ {
			if line[c+idx]-floor <= 0 {
				r.Cutoff, r.Found = idx, true
				r.Value = 1 / (base * float64(idx))
				break
			}
		}
		if !r.Found {
			r.Cutoff = len(line) / 2
			r.Value = 1 / (base * float64(r.Cutoff))
			logger.Log.Warn("MTF cutoff not found, using Nyquist bound",
				zap.Stringer("axis", a), zap.Float64("value", r.Value))
		}
		out[n] = r
	}
	return out
}

// FWHM fits a Gaussian to the x, y and z profiles through the center of psf
// (offset removed) sampled every pitch metres.
func FWHM(psf *optics.Volume, pitch float64) [3]AxisFit {
	var out [3]AxisFit
	v := psf.Clone()
	v.AddConst(-v.Min())
	c := optics.Center(v.N0)
	at := [3]int{c, c, c}
	for n, a := range Axes {
		y := v.Line(a.volumeAxis(), at)
		x := optics.Axis(len(y))
		floats.Scale(pitch, x)
		guess := optics.GaussianParams{Amplitude: floats.Max(y), Center: 0, Sigma: pitch}
		f := AxisFit{Axis: a}
		g, err := optics.FitGaussian(x, y, guess)
		if err != nil {
			f.Err = &FitError{Axis: a, Err: err}
			logger.Log.Warn("gaussian fit failed", zap.Stringer("axis", a), zap.Error(err))
		} else {
			f.Params, f.FWHM = g, g.FWHM()
		}
		out[n] = f
	}
	return out
}
