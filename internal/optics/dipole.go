package optics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// FibonacciDipoles spreads n orientations quasi-uniformly over the sphere.
func FibonacciDipoles(n int) (phi, theta []float64) {
	phi = make([]float64, n)
	theta = make([]float64, n)
	for i := 0; i < n; i++ {
		z := 1 - 2*(float64(i)+0.5)/float64(n)
		theta[i] = math.Acos(z)
		phi[i] = math.Mod(float64(i)*goldenAngle, 2*math.Pi)
	}
	return phi, theta
}

// Orientation returns the unit dipole axis for the given angles.
func Orientation(phi, theta float64) mgl64.Vec3 { return Direction(theta, phi) }

// CollectionEfficiency is the fraction of a dipole's radiated power emitted
// into the cone of half-angle thetaMax around +z.
func CollectionEfficiency(pol mgl64.Vec3, thetaMax float64) float64 {
	if math.IsNaN(thetaMax) || thetaMax <= 0 {
		return 0
	}
	if thetaMax > math.Pi {
		thetaMax = math.Pi
	}
	p := pol.Normalize()
	cb2 := p[2] * p[2]
	sb2 := 1 - cb2
	c := math.Cos(thetaMax)
	a := 1 - c
	b := (1 - c*c*c) / 3
	// ∫cap (1 - (p·k)²) dΩ / 2π, averaged over azimuth.
	inCone := a - cb2*b - 0.5*sb2*(a-b)
	return inCone / (4.0 / 3.0)
}

// DipoleField is the far field of a dipole on the aperture: the component of
// pol transverse to each pixel's wavevector, scaled by sqrt(weight). Pixels
// with NaN angles stay NaN.
func DipoleField(pol mgl64.Vec3, phi, theta Grid, weight float64) VecGrid {
	out := NewVecGrid(theta.N)
	amp := math.Sqrt(weight)
	for i := range out.Data {
		k := Direction(theta.Data[i], phi.Data[i])
		e := pol.Sub(k.Mul(pol.Dot(k))).Mul(amp)
		out.Data[i] = FromReal(e)
	}
	return out
}
