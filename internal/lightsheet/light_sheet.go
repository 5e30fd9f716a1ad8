package lightsheet

import (
	"math"

	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// sheetAperture builds the slit pupil of the illumination objective: only the
// center column passes, up to the sheet opening half-angle.
func sheetAperture(res int, opening float64) (theta, phi, r optics.Grid) {
	x, y, r := optics.Coords(res)
	half := float64(optics.Center(res))
	theta = asinGrid(r, math.Sin(opening)/half)
	phi = optics.Map2(y, x, math.Atan2)
	c := optics.Center(res)
	for row := 0; row < res; row++ {
		for col := 0; col < res; col++ {
			if col != c || theta.At(row, col) > opening {
				theta.Set(row, col, math.NaN())
			}
		}
	}
	return theta, phi, r
}

// sheetField bends the uniformly polarized input through the illumination
// objective. Blocked pupil pixels come out as zero.
func sheetField(theta, phi optics.Grid, pol Polarization) optics.VecGrid {
	t := optics.Chain([]optics.MatGrid{
		optics.InvRotZGrid(phi),
		optics.RefractionGrid(scaled(theta, -1)),
		optics.RotZGrid(phi),
	})
	in := optics.NewVecGrid(theta.N)
	e := optics.FromReal(pol.Vector())
	for i := range in.Data {
		in.Data[i] = e
	}
	return t.Apply(in).Clean()
}

// LightSheet computes the illumination intensity in the detection frame
// (axes y, x, z), with the sheet propagating along detection x.
func (m *Microscope) LightSheet(p Params) (*optics.Volume, error) {
	sys, err := m.Specs()
	if err != nil {
		return nil, err
	}
	backend, err := optics.BackendByName(p.Backend)
	if err != nil {
		return nil, &ConfigError{Field: "fft", Index: -1, Err: err}
	}
	res := m.camera.Res
	ri := m.lenses[0].RI
	k := 2 * math.Pi / m.lambdaEx * ri
	na := ri * math.Sin(p.SheetOpening)
	dk := k * math.Sin(p.SheetOpening) / float64(optics.Center(res))

	theta, phi, r := sheetAperture(res, p.SheetOpening)
	field := sheetField(theta, phi, p.Polarization)

	kz := r.Map(func(v float64) float64 {
		q := dk * v
		return math.Sqrt(k*k - q*q)
	})
	pitch := sys.ObjectPitch
	z := optics.Axis(res)
	for i := range z {
		z[i] *= pitch
	}
	scaling := m.lambdaEx / (2 * pitch * na)
	vol := m.evaluator(backend).Intensity(field, kz, z, obliqueness(theta), res, scaling)
	logger.Log.Info("light sheet computed",
		zap.String("polarization", string(p.Polarization)),
		zap.Float64("openingDeg", p.SheetOpening*180/math.Pi),
		zap.Float64("scaling", scaling),
		zap.Float64("peak", vol.Max()))
	return vol.Permute120(), nil
}
