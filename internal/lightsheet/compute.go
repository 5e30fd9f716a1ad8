package lightsheet

import (
	"time"

	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Result is everything one simulation produces.
type Result struct {
	Params Params
	Specs  Specs
	Trace  *Trace

	PSF          *optics.Volume // detection, unnormalized ensemble sum
	Illumination *optics.Volume
	Effective    *optics.Volume
	Throughput   float64

	Spectra    *Spectra
	Resolution [3]AxisResolution
	FWHM       [3]AxisFit
}

// Compute runs the full pipeline: trace, light sheet, dipole ensemble,
// effective PSF, noise and MTF, then resolution metrics.
func (m *Microscope) Compute(p Params, progress Progress) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := m.ready(); err != nil {
		return nil, err
	}
	if p.OTFRes < m.camera.Res {
		return nil, configErr("otfRes", -1, "must be >= camera res %d, got %d", m.camera.Res, p.OTFRes)
	}
	start := time.Now()
	sys, err := m.Specs()
	if err != nil {
		return nil, err
	}
	r := &Result{Params: p, Specs: sys}
	if r.Trace, err = m.Trace(); err != nil {
		return nil, err
	}
	if r.Illumination, err = m.LightSheet(p); err != nil {
		return nil, err
	}
	if r.PSF, r.Throughput, err = m.DetectionPSF(p, r.Trace, progress); err != nil {
		return nil, err
	}
	if r.Effective, err = EffectivePSF(r.PSF, r.Illumination); err != nil {
		return nil, err
	}
	if r.Spectra, err = m.Spectra(r.Effective, p); err != nil {
		return nil, err
	}
	r.Resolution = Resolution(r.Spectra.Shot, r.Spectra.BaseFrequency)
	r.FWHM = FWHM(r.Spectra.PSFReadout, sys.ObjectPitch)
	logger.Log.Info("simulation done",
		zap.Float64("resX", r.Resolution[0].Value),
		zap.Float64("resY", r.Resolution[1].Value),
		zap.Float64("resZ", r.Resolution[2].Value),
		zap.Duration("took", time.Since(start)))
	return r, nil
}
