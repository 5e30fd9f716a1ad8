package optics

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Noise injects detector noise. Src seeds every draw so runs repeat exactly;
// a nil Src falls back to the global source.
type Noise struct {
	Src rand.Source
}

// NewNoise returns an injector seeded with seed.
func NewNoise(seed uint64) Noise { return Noise{Src: rand.NewSource(seed)} }

// Apply scales v so its peak holds snr2 photons, then draws shot noise
// (Poisson) and adds readout noise (Gaussian with mean offset and deviation
// rms) on top of the shot-noise counts.
func (n Noise) Apply(v *Volume, snr2, offset, rms float64) (shot, readout *Volume) {
	shot = NewVolume(v.N0, v.N1, v.N2)
	readout = NewVolume(v.N0, v.N1, v.N2)
	peak := v.Max()
	scale := 0.0
	if peak > 0 {
		scale = snr2 / peak
	}
	read := distuv.Normal{Mu: offset, Sigma: rms, Src: n.Src}
	for i, x := range v.Data {
		lambda := x * scale
		counts := 0.0
		if lambda > 0 {
			counts = distuv.Poisson{Lambda: lambda, Src: n.Src}.Rand()
		}
		shot.Data[i] = counts
		if rms > 0 {
			readout.Data[i] = counts + read.Rand()
		} else {
			readout.Data[i] = counts + offset
		}
	}
	return shot, readout
}
