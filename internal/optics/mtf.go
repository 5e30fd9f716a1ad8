package optics

import "math/cmplx"

// MTF returns |fftshift(fftn(ifftshift(v)))|: the modulation transfer
// function with the zero frequency at the volume center.
func MTF(b Backend, v *Volume) *Volume {
	if b == nil {
		b = GonumFFT{}
	}
	n0, n1, n2 := v.N0, v.N1, v.N2
	data := make([]complex128, len(v.Data))
	for i := 0; i < n0; i++ {
		ri := shiftIndex(i, n0)
		for j := 0; j < n1; j++ {
			rj := shiftIndex(j, n1)
			for k := 0; k < n2; k++ {
				data[(ri*n1+rj)*n2+shiftIndex(k, n2)] = complex(v.At(i, j, k), 0)
			}
		}
	}
	Transform3(b, data, n0, n1, n2, false)
	out := NewVolume(n0, n1, n2)
	for i := 0; i < n0; i++ {
		ri := shiftIndex(i, n0)
		for j := 0; j < n1; j++ {
			rj := shiftIndex(j, n1)
			for k := 0; k < n2; k++ {
				out.Set(i, j, k, cmplx.Abs(data[(ri*n1+rj)*n2+shiftIndex(k, n2)]))
			}
		}
	}
	return out
}
