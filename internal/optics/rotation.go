package optics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis rotations are passive: they rotate the coordinate frame by the given
// angle, which moves a fixed vector by minus that angle. Refraction is the
// one active rotation in the toolkit.

// FrameX returns the real passive rotation about x.
func FrameX(a float64) mgl64.Mat3 { return mgl64.Rotate3DX(a).Transpose() }

// FrameY returns the real passive rotation about y.
func FrameY(a float64) mgl64.Mat3 { return mgl64.Rotate3DY(a).Transpose() }

// FrameZ returns the real passive rotation about z.
func FrameZ(a float64) mgl64.Mat3 { return mgl64.Rotate3DZ(a).Transpose() }

// FromMgl lifts a real matrix into a Jones matrix.
func FromMgl(m mgl64.Mat3) Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = complex(m.At(r, c), 0)
		}
	}
	return R
}

func RotX(a float64) Mat3 { return FromMgl(FrameX(a)) }
func RotY(a float64) Mat3 { return FromMgl(FrameY(a)) }
func RotZ(a float64) Mat3 { return FromMgl(FrameZ(a)) }

// Refraction is the ideal-lens bending matrix in the meridional frame: an
// active rotation about y by theta.
func Refraction(theta float64) Mat3 { return FromMgl(mgl64.Rotate3DY(theta)) }

func RotYGrid(a Grid) MatGrid { return MatGridOf(a, RotY) }
func RotZGrid(a Grid) MatGrid { return MatGridOf(a, RotZ) }

// InvRotZGrid is the per-pixel inverse of RotZGrid.
func InvRotZGrid(a Grid) MatGrid {
	return MatGridOf(a, func(v float64) Mat3 { return RotZ(-v) })
}

// RefractionGrid applies Refraction per pixel.
func RefractionGrid(theta Grid) MatGrid { return MatGridOf(theta, Refraction) }

// Direction returns the unit wavevector for polar angle theta and azimuth phi.
func Direction(theta, phi float64) mgl64.Vec3 {
	st := math.Sin(theta)
	return mgl64.Vec3{st * math.Cos(phi), st * math.Sin(phi), math.Cos(theta)}
}

// Angles inverts Direction. Theta is NaN when the vector points backwards
// (negative z).
func Angles(k mgl64.Vec3) (theta, phi float64) {
	phi = math.Atan2(k[1], k[0])
	theta = math.Atan2(math.Hypot(k[0], k[1]), k[2])
	if k[2] < 0 || math.IsNaN(k[2]) {
		theta = math.NaN()
	}
	return theta, phi
}
