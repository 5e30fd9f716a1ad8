package optics

import (
	"math"
	"math/cmplx"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a complex field vector (Ex, Ey, Ez).
type Vec3 [3]complex128

// FromReal lifts a real vector into a field vector.
func FromReal(v mgl64.Vec3) Vec3 {
	return Vec3{complex(v[0], 0), complex(v[1], 0), complex(v[2], 0)}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (v Vec3) Scale(s complex128) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Intensity returns |Ex|²+|Ey|²+|Ez|².
func (v Vec3) Intensity() float64 {
	s := 0.0
	for _, c := range v {
		s += real(c)*real(c) + imag(c)*imag(c)
	}
	return s
}

// IsFinite reports whether every component is finite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			return false
		}
	}
	return true
}

// Clean replaces non-finite components with zero.
func (v Vec3) Clean() Vec3 {
	for i, c := range v {
		if cmplx.IsNaN(c) || cmplx.IsInf(c) {
			v[i] = 0
		}
	}
	return v
}

func (A Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		A.M[0][0]*v[0] + A.M[0][1]*v[1] + A.M[0][2]*v[2],
		A.M[1][0]*v[0] + A.M[1][1]*v[1] + A.M[1][2]*v[2],
		A.M[2][0]*v[0] + A.M[2][1]*v[1] + A.M[2][2]*v[2],
	}
}

// VecGrid holds one field vector per pixel of an N×N grid.
type VecGrid struct {
	N    int
	Data []Vec3
}

func NewVecGrid(n int) VecGrid { return VecGrid{N: n, Data: make([]Vec3, n*n)} }

// Clean replaces non-finite components with zero in place.
func (g VecGrid) Clean() VecGrid {
	for i := range g.Data {
		g.Data[i] = g.Data[i].Clean()
	}
	return g
}

// ScaleBy multiplies every pixel by the matching scalar in s.
func (g VecGrid) ScaleBy(s Grid) VecGrid {
	out := NewVecGrid(g.N)
	for i := range g.Data {
		out.Data[i] = g.Data[i].Scale(complex(s.Data[i], 0))
	}
	return out
}

// Power sums the intensity over all finite pixels.
func (g VecGrid) Power() float64 {
	s := 0.0
	for _, v := range g.Data {
		if p := v.Intensity(); !math.IsNaN(p) && !math.IsInf(p, 0) {
			s += p
		}
	}
	return s
}
