package optics

import (
	"math/cmplx"
	"testing"
)

func mat3Close(a, b Mat3, tol float64) bool {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if cmplx.Abs(a.M[r][c]-b.M[r][c]) > tol {
				return false
			}
		}
	}
	return true
}

func TestMat3MulIdentity(t *testing.T) {
	A := Mat3{M: [3][3]complex128{
		{1, 2i, 3},
		{4, 5, 6 - 1i},
		{7, 8, 9},
	}}
	if !mat3Close(A.Mul(I3()), A, 1e-12) || !mat3Close(I3().Mul(A), A, 1e-12) {
		t.Fatalf("identity multiplication changed the matrix")
	}
	if !mat3Close(A.Transpose().Transpose(), A, 0) {
		t.Fatalf("double transpose is not identity")
	}
	if A.Transpose().M[0][1] != 4 {
		t.Fatalf("transpose wrong: %v", A.Transpose().M)
	}
}

func TestMatGridApply(t *testing.T) {
	g := Broadcast(Diag3(2, 3, 4), 2)
	v := NewVecGrid(2)
	for i := range v.Data {
		v.Data[i] = Vec3{1, 1, 1}
	}
	out := g.Apply(v)
	for i, e := range out.Data {
		if e != (Vec3{2, 3, 4}) {
			t.Fatalf("pixel %d: got %v", i, e)
		}
	}
}

func TestVec3Clean(t *testing.T) {
	v := Vec3{cmplx.NaN(), 1, cmplx.Inf()}
	if v.IsFinite() {
		t.Fatal("NaN vector reported finite")
	}
	c := v.Clean()
	if c != (Vec3{0, 1, 0}) {
		t.Fatalf("clean: %v", c)
	}
	if c.Intensity() != 1 {
		t.Fatalf("intensity: %v", c.Intensity())
	}
}
