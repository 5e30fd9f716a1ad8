package lightsheet

import (
	"math"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

func isFinite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }

// Axis names a lateral or axial direction of the focal volume.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

var Axes = [3]Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// volumeAxis maps a direction onto the volume layout (y, x, z).
func (a Axis) volumeAxis() int {
	switch a {
	case AxisX:
		return 1
	case AxisY:
		return 0
	}
	return 2
}

// obliqueness returns 1/cos(theta), zero for NaN and grazing pixels.
func obliqueness(theta optics.Grid) optics.Grid {
	return theta.Map(func(t float64) float64 {
		c := math.Cos(t)
		if !isFinite(c) || c <= grazingCos {
			return 0
		}
		return 1 / c
	})
}

// asinGrid applies asin(s·v) per pixel; out-of-domain pixels become NaN.
func asinGrid(g optics.Grid, s float64) optics.Grid {
	return g.Map(func(v float64) float64 { return math.Asin(s * v) })
}
