package optics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
)

func gaussianBlob(n int) *Volume {
	v := NewCube(n)
	c := float64(Center(n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				d2 := (float64(i)-c)*(float64(i)-c) + (float64(j)-c)*(float64(j)-c) + (float64(k)-c)*(float64(k)-c)
				v.Set(i, j, k, math.Exp(-d2/8))
			}
		}
	}
	return v
}

// relativeNoise is the residual deviation of the rescaled shot-noise volume
// from the clean one.
func relativeNoise(clean, shot *Volume, snr2 float64) float64 {
	res := make([]float64, len(clean.Data))
	for i := range res {
		res[i] = shot.Data[i]/snr2 - clean.Data[i]/clean.Max()
	}
	return stat.StdDev(res, nil)
}

func TestNoiseDecreasesWithSNR(t *testing.T) {
	clean := gaussianBlob(12)
	prev := math.Inf(1)
	for _, snr := range []float64{5, 10, 20, 50} {
		shot, _ := NewNoise(7).Apply(clean, snr*snr, 0, 0)
		rel := relativeNoise(clean, shot, snr*snr)
		if !(rel < prev) {
			t.Fatalf("SNR %v: relative noise %v did not drop below %v", snr, rel, prev)
		}
		prev = rel
	}
}

func TestNoiseDeterministicAndOffset(t *testing.T) {
	clean := gaussianBlob(6)
	s1, r1 := NewNoise(42).Apply(clean, 400, 100, 1.4)
	s2, r2 := NewNoise(42).Apply(clean, 400, 100, 1.4)
	for i := range s1.Data {
		if s1.Data[i] != s2.Data[i] || r1.Data[i] != r2.Data[i] {
			t.Fatalf("same seed gave different noise at %d", i)
		}
		if s1.Data[i] < 0 || s1.Data[i] != math.Round(s1.Data[i]) {
			t.Fatalf("shot counts must be non-negative integers, got %v", s1.Data[i])
		}
	}
	if m := stat.Mean(r1.Data, nil) - stat.Mean(s1.Data, nil); math.Abs(m-100) > 1 {
		t.Fatalf("readout offset mean %v, want ~100", m)
	}
	if orig := gaussianBlob(6); orig.Max() != clean.Max() {
		t.Fatalf("input volume modified")
	}
}

func TestNoiseZeroVolume(t *testing.T) {
	shot, readout := NewNoise(1).Apply(NewCube(3), 100, 5, 0)
	if shot.Max() != 0 || readout.Min() != 5 || readout.Max() != 5 {
		t.Fatalf("zero volume: shot max %v, readout [%v,%v]", shot.Max(), readout.Min(), readout.Max())
	}
}
