package lightsheet

import "math"

// Lens is one rotationally symmetric element of the optical train. RI is the
// refractive index of the space the lens faces; Tilt rotates its optical axis
// about x (radians).
type Lens struct {
	NA   float64
	RI   float64
	Tilt float64
}

// NewLens validates the element parameters.
func NewLens(na, ri, tilt float64) (Lens, error) {
	l := Lens{NA: na, RI: ri, Tilt: tilt}
	if err := l.validate(-1); err != nil {
		return Lens{}, err
	}
	return l, nil
}

func (l Lens) validate(index int) error {
	switch {
	case !isFinite(l.RI) || l.RI < 1:
		return configErr("lens.ri", index, "refractive index must be >= 1, got %v", l.RI)
	case !isFinite(l.NA) || l.NA <= 0:
		return configErr("lens.na", index, "numerical aperture must be > 0, got %v", l.NA)
	case l.NA > l.RI:
		return configErr("lens.na", index, "numerical aperture %v exceeds refractive index %v", l.NA, l.RI)
	case !isFinite(l.Tilt) || math.Abs(l.Tilt) >= math.Pi/2:
		return configErr("lens.tilt", index, "tilt must be within (-90°, 90°), got %v rad", l.Tilt)
	}
	return nil
}

// AcceptanceAngle is the largest polar angle the lens passes, asin(NA/RI).
func (l Lens) AcceptanceAngle() float64 { return math.Asin(l.NA / l.RI) }

// Tilted reports whether the optical axis is rotated.
func (l Lens) Tilted() bool { return l.Tilt != 0 }
