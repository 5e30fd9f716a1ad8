package optics

import (
	"math"
	"math/cmplx"
	"testing"
)

func uniformAperture(n int) (VecGrid, Grid, Grid) {
	field := NewVecGrid(n)
	kz, bao := NewGrid(n), NewGrid(n)
	for i := range field.Data {
		field.Data[i] = Vec3{1, 0, 0}
		bao.Data[i] = 1
	}
	return field, kz, bao
}

func TestDebyeUniformApertureIsDelta(t *testing.T) {
	res := 16
	field, kz, bao := uniformAperture(res)
	z := []float64{-1e-6, 0, 1e-6}
	for _, b := range []Backend{GonumFFT{}, DSPFFT{}} {
		vol := NewDebye(b).Intensity(field, kz, z, bao, res, 1)
		c := Center(res)
		for k := range z {
			peak := vol.At(c, c, k)
			want := float64(res*res) * float64(res*res)
			if peak < 0.999*want || peak > 1.001*want {
				t.Fatalf("%s: peak at z[%d] = %v, want %v", b.Name(), k, peak, want)
			}
			for i := 0; i < res; i++ {
				for j := 0; j < res; j++ {
					if i == c && j == c {
						continue
					}
					if v := vol.At(i, j, k); v > 1e-9*peak {
						t.Fatalf("%s: off-axis energy %v at (%d,%d,%d)", b.Name(), v, i, j, k)
					}
				}
			}
		}
	}
}

func TestDebyeKeepsPrincipalPeriod(t *testing.T) {
	res := 16
	field, kz, bao := uniformAperture(res)
	// scaling 0.25 -> 4-point transform; only the central 4×4 window is lit.
	vol := NewDebye(nil).Intensity(field, kz, []float64{0}, bao, res, 0.25)
	c := Center(res)
	for i := 0; i < res; i++ {
		for j := 0; j < res; j++ {
			v := vol.At(i, j, 0)
			inside := i-c >= -2 && i-c < 2 && j-c >= -2 && j-c < 2
			if !inside && v != 0 {
				t.Fatalf("energy outside principal period at (%d,%d): %v", i, j, v)
			}
		}
	}
	if vol.At(c, c, 0) != vol.Max() {
		t.Fatalf("peak is not on axis")
	}
}

func TestDebyeIgnoresNaN(t *testing.T) {
	res := 8
	field, kz, bao := uniformAperture(res)
	field.Data[0] = Vec3{cmplx.NaN(), 0, 0}
	bao.Data[1] = math.NaN()
	vol := NewDebye(nil).Intensity(field, kz, []float64{0}, bao, res, 1)
	for i, v := range vol.Data {
		if !finite(v) {
			t.Fatalf("non-finite voxel %d", i)
		}
	}
}

func TestFFTSize(t *testing.T) {
	if FFTSize(64, 0.125) != 8 || FFTSize(64, 0.001) != 1 || FFTSize(128, 5.07) != 649 {
		t.Fatalf("unexpected FFT sizes")
	}
}
