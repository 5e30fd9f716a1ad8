package optics

import (
	"fmt"

	dspfft "github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// LineFFT transforms 1-D sequences of a fixed length. Inverse is not
// normalized. Implementations need not be safe for concurrent use.
type LineFFT interface {
	Len() int
	Forward(dst, src []complex128) []complex128
	Inverse(dst, src []complex128) []complex128
}

// Backend creates line transforms. Multi-dimensional transforms are built
// from separable passes over lines.
type Backend interface {
	Name() string
	Plan(n int) LineFFT
}

const (
	BackendGonum = "gonum"
	BackendGoDSP = "godsp"
)

// BackendByName resolves a backend; an empty name selects gonum.
func BackendByName(name string) (Backend, error) {
	switch name {
	case "", BackendGonum:
		return GonumFFT{}, nil
	case BackendGoDSP:
		return DSPFFT{}, nil
	}
	return nil, fmt.Errorf("unknown FFT backend %q", name)
}

// GonumFFT is backed by gonum's dsp/fourier.
type GonumFFT struct{}

func (GonumFFT) Name() string { return BackendGonum }

func (GonumFFT) Plan(n int) LineFFT { return gonumLine{t: fourier.NewCmplxFFT(n)} }

type gonumLine struct{ t *fourier.CmplxFFT }

func (g gonumLine) Len() int { return g.t.Len() }

func (g gonumLine) Forward(dst, src []complex128) []complex128 {
	return g.t.Coefficients(dst, src)
}

func (g gonumLine) Inverse(dst, src []complex128) []complex128 {
	return g.t.Sequence(dst, src)
}

// DSPFFT is backed by github.com/mjibson/go-dsp/fft.
type DSPFFT struct{}

func (DSPFFT) Name() string { return BackendGoDSP }

func (DSPFFT) Plan(n int) LineFFT { return dspLine{n: n} }

type dspLine struct{ n int }

func (d dspLine) Len() int { return d.n }

func (d dspLine) Forward(dst, src []complex128) []complex128 {
	return fill(dst, dspfft.FFT(src), 1)
}

func (d dspLine) Inverse(dst, src []complex128) []complex128 {
	return fill(dst, dspfft.IFFT(src), complex(float64(d.n), 0))
}

func fill(dst, res []complex128, s complex128) []complex128 {
	if dst == nil {
		dst = make([]complex128, len(res))
	}
	for i, v := range res {
		dst[i] = v * s
	}
	return dst
}

// Transform3 runs a separable 3-D transform in place over data laid out as
// (i*n1 + j)*n2 + k.
func Transform3(b Backend, data []complex128, n0, n1, n2 int, inverse bool) {
	dims := [3]int{n0, n1, n2}
	strides := [3]int{n1 * n2, n2, 1}
	for axis := 0; axis < 3; axis++ {
		n := dims[axis]
		if n < 2 {
			continue
		}
		plan := b.Plan(n)
		line := make([]complex128, n)
		out := make([]complex128, n)
		o1, o2 := (axis+1)%3, (axis+2)%3
		for a := 0; a < dims[o1]; a++ {
			for c := 0; c < dims[o2]; c++ {
				base := a*strides[o1] + c*strides[o2]
				for t := 0; t < n; t++ {
					line[t] = data[base+t*strides[axis]]
				}
				if inverse {
					plan.Inverse(out, line)
				} else {
					plan.Forward(out, line)
				}
				for t := 0; t < n; t++ {
					data[base+t*strides[axis]] = out[t]
				}
			}
		}
	}
}

// shiftIndex maps an fftshift-ed index back to raw FFT order.
func shiftIndex(i, n int) int { return (i - n/2 + n) % n }
