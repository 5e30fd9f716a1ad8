package lightsheet

import (
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Spectra holds the noisy PSF realizations and the three MTFs computed from
// the zero-padded PSF.
type Spectra struct {
	Padding       int     // zeros added per side
	Size          int     // padded edge length
	BaseFrequency float64 // cycles per metre per MTF voxel

	PSFShot    *optics.Volume // Poisson counts, cropped to res
	PSFReadout *optics.Volume // Poisson plus Gaussian readout, cropped to res

	Noiseless *optics.Volume
	Shot      *optics.Volume
	Readout   *optics.Volume
}

// Spectra pads psf to the OTF size, adds detector noise and transforms the
// noiseless, shot and readout volumes.
func (m *Microscope) Spectra(psf *optics.Volume, p Params) (*Spectra, error) {
	sys, err := m.Specs()
	if err != nil {
		return nil, err
	}
	backend, err := optics.BackendByName(p.Backend)
	if err != nil {
		return nil, &ConfigError{Field: "fft", Index: -1, Err: err}
	}
	res := m.camera.Res
	if p.OTFRes < res {
		return nil, configErr("otfRes", -1, "must be >= camera res %d, got %d", res, p.OTFRes)
	}
	pad := (p.OTFRes - res) / 2
	padded := psf.Pad(pad)
	var shot, readout *optics.Volume
	if p.SNR != 0 {
		shot, readout = optics.NewNoise(p.Seed).Apply(padded, p.SNR*p.SNR, m.camera.Offset, m.camera.RMS)
	} else {
		shot, readout = padded.Clone(), padded.Clone()
	}
	size := padded.N0
	sp := &Spectra{
		Padding:       pad,
		Size:          size,
		BaseFrequency: 1 / (float64(size) * sys.ObjectPitch),
		PSFShot:       shot.Crop(pad, res),
		PSFReadout:    readout.Crop(pad, res),
		Noiseless:     optics.MTF(backend, padded),
		Shot:          optics.MTF(backend, shot),
		Readout:       optics.MTF(backend, readout),
	}
	logger.Log.Info("MTF computed",
		zap.Int("size", size),
		zap.Float64("snr", p.SNR),
		zap.Float64("baseFrequency", sp.BaseFrequency))
	return sp, nil
}
