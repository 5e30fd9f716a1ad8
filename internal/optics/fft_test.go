package optics

import (
	"math"
	"math/cmplx"
	"testing"
)

func naiveDFT(x []complex128, sign float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		for j, v := range x {
			out[k] += v * cmplx.Exp(complex(0, sign*2*math.Pi*float64(j*k)/float64(n)))
		}
	}
	return out
}

func TestBackendsMatchDFT(t *testing.T) {
	x := []complex128{1, 2 - 1i, 0.5, -3, 4i, 1 + 1i, 0, 2}
	for _, name := range []string{BackendGonum, BackendGoDSP} {
		t.Run(name, func(t *testing.T) {
			b, err := BackendByName(name)
			if err != nil {
				t.Fatal(err)
			}
			plan := b.Plan(len(x))
			fwd := plan.Forward(nil, x)
			inv := plan.Inverse(nil, x)
			wantF, wantI := naiveDFT(x, -1), naiveDFT(x, 1)
			for i := range x {
				if cmplx.Abs(fwd[i]-wantF[i]) > 1e-9 {
					t.Fatalf("forward[%d] = %v, want %v", i, fwd[i], wantF[i])
				}
				if cmplx.Abs(inv[i]-wantI[i]) > 1e-9 {
					t.Fatalf("inverse[%d] = %v, want %v", i, inv[i], wantI[i])
				}
			}
		})
	}
}

func TestBackendByNameUnknown(t *testing.T) {
	if _, err := BackendByName("fftw"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if b, err := BackendByName(""); err != nil || b.Name() != BackendGonum {
		t.Fatalf("default backend: %v %v", b, err)
	}
}

func TestTransform3RoundTrip(t *testing.T) {
	n0, n1, n2 := 3, 4, 5
	data := make([]complex128, n0*n1*n2)
	for i := range data {
		data[i] = complex(float64(i%7), float64(i%3))
	}
	orig := append([]complex128(nil), data...)
	Transform3(GonumFFT{}, data, n0, n1, n2, false)
	Transform3(GonumFFT{}, data, n0, n1, n2, true)
	scale := complex(float64(n0*n1*n2), 0)
	for i := range data {
		if cmplx.Abs(data[i]/scale-orig[i]) > 1e-9 {
			t.Fatalf("round trip mismatch at %d: %v vs %v", i, data[i]/scale, orig[i])
		}
	}
}
