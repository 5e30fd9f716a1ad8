package optics

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestFibonacciDipoles(t *testing.T) {
	phi, theta := FibonacciDipoles(1)
	if math.Abs(theta[0]-math.Pi/2) > 1e-12 || phi[0] != 0 {
		t.Fatalf("single dipole should lie along x, got theta=%v phi=%v", theta[0], phi[0])
	}
	phi, theta = FibonacciDipoles(200)
	var mean mgl64.Vec3
	for i := range phi {
		p := Orientation(phi[i], theta[i])
		if math.Abs(p.Len()-1) > 1e-12 {
			t.Fatalf("dipole %d is not unit length", i)
		}
		mean = mean.Add(p)
	}
	if mean.Len()/200 > 0.02 {
		t.Fatalf("lattice is biased: mean %v", mean.Mul(1.0/200))
	}
}

func TestCollectionEfficiency(t *testing.T) {
	for _, pol := range []mgl64.Vec3{{1, 0, 0}, {0, 0, 1}, {0.3, 0.4, 0.866}} {
		if e := CollectionEfficiency(pol, math.Pi); math.Abs(e-1) > 1e-12 {
			t.Fatalf("full sphere collects %v for %v", e, pol)
		}
		if e := CollectionEfficiency(pol, math.Pi/2); math.Abs(e-0.5) > 1e-12 {
			t.Fatalf("hemisphere collects %v for %v", e, pol)
		}
	}
	// An axial dipole radiates least along the axis.
	axial := CollectionEfficiency(mgl64.Vec3{0, 0, 1}, 0.5)
	lateral := CollectionEfficiency(mgl64.Vec3{1, 0, 0}, 0.5)
	if !(axial < lateral) {
		t.Fatalf("axial %v should collect less than lateral %v", axial, lateral)
	}
	if CollectionEfficiency(mgl64.Vec3{1, 0, 0}, math.NaN()) != 0 {
		t.Fatal("NaN cone should collect nothing")
	}
}

func TestDipoleFieldIsTransverse(t *testing.T) {
	theta := Grid{N: 2, Data: []float64{0, 0.3, 1.0, math.NaN()}}
	phi := Grid{N: 2, Data: []float64{0, 1.2, -2.0, 0}}
	pol := mgl64.Vec3{0.6, 0, 0.8}
	f := DipoleField(pol, phi, theta, 0.25)
	for i := 0; i < 3; i++ {
		k := FromReal(Direction(theta.Data[i], phi.Data[i]))
		dot := f.Data[i][0]*k[0] + f.Data[i][1]*k[1] + f.Data[i][2]*k[2]
		if cmplx.Abs(dot) > 1e-12 {
			t.Fatalf("pixel %d: field not transverse (%v)", i, dot)
		}
	}
	// On axis the field is the transverse part of pol scaled by sqrt(0.25).
	if math.Abs(real(f.Data[0][0])-0.3) > 1e-12 || cmplx.Abs(f.Data[0][2]) > 1e-12 {
		t.Fatalf("on-axis field %v", f.Data[0])
	}
	if f.Data[3].IsFinite() {
		t.Fatalf("NaN angle should give NaN field")
	}
}
