package lightsheet

import (
	"math"

	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
)

// Specs are the scalar properties derived from the lens train and camera.
type Specs struct {
	Magnification      float64 // lateral, sample to camera
	Alpha              float64 // sample-plane rotation, rad
	AxialMagnification float64
	ZVoxel             float64 // axial sampling in image space, m
	Scaling            float64 // Debye sampling constant for the detection path
	FoV                float64 // field of view in the sample, m
	ObjectPitch        float64 // camera pitch mapped into the sample, m
}

// Specs computes (once per configuration) the system specs.
func (m *Microscope) Specs() (Specs, error) {
	if err := m.ready(); err != nil {
		return Specs{}, err
	}
	if m.specs == nil {
		s := computeSpecs(m.lenses, *m.camera, m.lambdaEm)
		m.specs = &s
		logger.Log.Info("system specs",
			zap.Float64("magnification", s.Magnification),
			zap.Float64("axialMagnification", s.AxialMagnification),
			zap.Float64("alphaDeg", s.Alpha*180/math.Pi),
			zap.Float64("zVoxel", s.ZVoxel),
			zap.Float64("scaling", s.Scaling),
			zap.Float64("fov", s.FoV))
	}
	return *m.specs, nil
}

func computeSpecs(lenses []Lens, cam Camera, lambdaEm float64) Specs {
	mag := 1.0
	tilt := 0.0
	for i, l := range lenses {
		if i%2 == 0 {
			mag *= l.NA
		} else {
			mag /= l.NA
		}
		tilt += l.Tilt
	}
	first, last := lenses[0], lenses[len(lenses)-1]
	axial := mag * mag * last.RI / first.RI
	return Specs{
		Magnification:      mag,
		Alpha:              math.Pi/2 - tilt,
		AxialMagnification: axial,
		ZVoxel:             cam.Pitch / mag * axial,
		Scaling:            lambdaEm / (2 * cam.Pitch * last.NA),
		FoV:                cam.Pitch * float64(cam.Res) / mag,
		ObjectPitch:        cam.Pitch / mag,
	}
}
