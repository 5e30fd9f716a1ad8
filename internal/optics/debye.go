package optics

import (
	"math"
	"math/cmplx"
)

// Debye evaluates the vectorial Debye diffraction integral as an inverse 2-D
// FFT of the weighted aperture field, one z plane at a time.
//
// The aperture is sampled on an N×N FFT grid with N = round(res·scaling),
// which makes one output sample equal one detector pixel. When N < res the
// aperture is wrapped modulo N (the exact DFT of the longer sequence). The
// output keeps the principal period of the focal field around the optical
// axis and leaves the rest of the res×res window dark.
type Debye struct {
	Backend Backend
}

// NewDebye returns an evaluator on b, defaulting to gonum.
func NewDebye(b Backend) Debye {
	if b == nil {
		b = GonumFFT{}
	}
	return Debye{Backend: b}
}

// FFTSize is the transform length for a given output size and scaling.
func FFTSize(res int, scaling float64) int {
	n := int(math.Round(float64(res) * scaling))
	if n < 1 {
		n = 1
	}
	return n
}

// Intensity returns |E|² on a res×res×len(z) volume (axes y, x, z). Field, kz
// and bao share one aperture grid; non-finite entries contribute nothing.
func (d Debye) Intensity(field VecGrid, kz Grid, z []float64, bao Grid, res int, scaling float64) *Volume {
	out := NewVolume(res, res, len(z))
	n := field.N
	N := FFTSize(res, scaling)
	if N == 1 {
		d.single(out, field, kz, z, bao)
		return out
	}

	type tap struct {
		raw int // flat index in the N×N buffer
		kz  float64
		w   Vec3
	}
	taps := make([]tap, 0, n*n)
	touched := make([]bool, N)
	pc := Center(n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			p := r*n + c
			b := bao.Data[p]
			if !finite(b) || b == 0 {
				continue
			}
			w := field.Data[p].Clean().Scale(complex(b, 0))
			if w.Intensity() == 0 {
				continue
			}
			k := kz.Data[p]
			if !finite(k) {
				k = 0
			}
			ri, ci := wrap(r-pc, N), wrap(c-pc, N)
			touched[ri] = true
			taps = append(taps, tap{raw: ri*N + ci, kz: k, w: w})
		}
	}
	rows := make([]int, 0, N)
	for r, ok := range touched {
		if ok {
			rows = append(rows, r)
		}
	}

	// Output window: out index -> raw FFT index, or -1 outside the period.
	window := make([]int, res)
	oc := Center(res)
	for i := range window {
		m := i - oc
		if m >= -N/2 && m < N-N/2 {
			window[i] = wrap(m, N)
		} else {
			window[i] = -1
		}
	}

	plan := d.Backend.Plan(N)
	buf := make([]complex128, N*N)
	line := make([]complex128, N)
	tmp := make([]complex128, N)
	for zi, zv := range z {
		for comp := 0; comp < 3; comp++ {
			for i := range buf {
				buf[i] = 0
			}
			for _, t := range taps {
				if t.w[comp] == 0 {
					continue
				}
				buf[t.raw] += t.w[comp] * cmplx.Exp(complex(0, t.kz*zv))
			}
			// Rows along x; only rows that received aperture samples are non-zero.
			for _, r := range rows {
				plan.Inverse(tmp, buf[r*N:(r+1)*N])
				copy(buf[r*N:(r+1)*N], tmp)
			}
			// Columns along y, only where the output window needs them.
			for xo, cx := range window {
				if cx < 0 {
					continue
				}
				for i := range line {
					line[i] = 0
				}
				for _, r := range rows {
					line[r] = buf[r*N+cx]
				}
				plan.Inverse(tmp, line)
				for yo, ry := range window {
					if ry < 0 {
						continue
					}
					v := tmp[ry]
					out.Data[out.idx(yo, xo, zi)] += real(v)*real(v) + imag(v)*imag(v)
				}
			}
		}
	}
	return out
}

// single handles a one-point transform: the whole aperture sums into the
// on-axis voxel.
func (d Debye) single(out *Volume, field VecGrid, kz Grid, z []float64, bao Grid) {
	c := Center(out.N0)
	for zi, zv := range z {
		var e Vec3
		for p, v := range field.Data {
			b, k := bao.Data[p], kz.Data[p]
			if !finite(b) || !finite(k) {
				continue
			}
			e = e.Add(v.Clean().Scale(complex(b, 0) * cmplx.Exp(complex(0, k*zv))))
		}
		out.Set(c, c, zi, e.Intensity())
	}
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
