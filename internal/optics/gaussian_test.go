package optics

import (
	"errors"
	"math"
	"testing"
)

func TestFitGaussianRecoversParameters(t *testing.T) {
	want := GaussianParams{Amplitude: 830, Center: 3e-8, Sigma: 2.1e-7}
	n := 41
	x := make([]float64, n)
	y := make([]float64, n)
	step := 5e-8
	for i := range x {
		x[i] = float64(i-n/2) * step
		y[i] = Gaussian(x[i], want)
	}
	got, err := FitGaussian(x, y, GaussianParams{Amplitude: 800, Center: 0, Sigma: step})
	if err != nil {
		t.Fatalf("fit failed: %v", err)
	}
	if math.Abs(got.Sigma-want.Sigma)/want.Sigma > 1e-3 {
		t.Fatalf("sigma %v, want %v", got.Sigma, want.Sigma)
	}
	if math.Abs(got.FWHM()-want.Sigma*SigmaToFWHM)/want.FWHM() > 1e-3 {
		t.Fatalf("fwhm %v", got.FWHM())
	}
	if math.Abs(got.Center-want.Center) > 1e-9 {
		t.Fatalf("center %v, want %v", got.Center, want.Center)
	}
}

func TestFitGaussianEmptyProfile(t *testing.T) {
	_, err := FitGaussian([]float64{-1, 0, 1}, []float64{0, 0, 0}, GaussianParams{Amplitude: 1, Sigma: 1})
	if !errors.Is(err, ErrEmptyProfile) {
		t.Fatalf("want ErrEmptyProfile, got %v", err)
	}
	if _, err := FitGaussian([]float64{0}, []float64{1}, GaussianParams{}); err == nil {
		t.Fatal("too few samples should fail")
	}
}

func TestQuantize(t *testing.T) {
	v := NewVolume(1, 1, 4)
	copy(v.Data, []float64{-1, 0.5, 2, math.NaN()})
	q := Quantize16(v)
	if q[0] != 0 || q[1] != 16384 || q[2] != 65535 || q[3] != 0 {
		t.Fatalf("quantized %v", q)
	}
	copy(v.Data, []float64{12.4, 70000, -3, 0})
	c := Counts16(v)
	if c[0] != 12 || c[1] != 65535 || c[2] != 0 {
		t.Fatalf("counts %v", c)
	}
}
