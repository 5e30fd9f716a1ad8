package lightsheet

import (
	"math"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

func blob(n int, sigma, scale float64) *optics.Volume {
	v := optics.NewCube(n)
	c := float64(optics.Center(n))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				d2 := sq(float64(i)-c) + sq(float64(j)-c) + sq(float64(k)-c)
				v.Set(i, j, k, scale*math.Exp(-d2/(2*sigma*sigma)))
			}
		}
	}
	return v
}

func sq(x float64) float64 { return x * x }

func TestEffectivePSFCommutesAndIgnoresScale(t *testing.T) {
	a := blob(8, 1.5, 1)
	b := blob(8, 3, 1)
	b.Set(1, 2, 3, 0.7)
	ab, err := EffectivePSF(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, _ := EffectivePSF(b, a)
	a2 := a.Clone()
	a2.Scale(123.4)
	b2 := b.Clone()
	b2.Scale(1e-5)
	scaled, _ := EffectivePSF(a2, b2)
	for i := range ab.Data {
		if math.Abs(ab.Data[i]-ba.Data[i]) > 1e-15 {
			t.Fatalf("not commutative at %d", i)
		}
		if math.Abs(ab.Data[i]-scaled.Data[i]) > 1e-12 {
			t.Fatalf("depends on input scale at %d: %v vs %v", i, ab.Data[i], scaled.Data[i])
		}
	}
	if math.Abs(ab.Max()-1) > 1e-12 {
		t.Fatalf("coincident peaks should give 1, got %v", ab.Max())
	}
}

func TestEffectivePSFZeroArm(t *testing.T) {
	out, err := EffectivePSF(optics.NewCube(4), blob(4, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if out.Max() != 0 || out.Min() != 0 {
		t.Fatal("zero arm should give an all-zero product")
	}
	if _, err := EffectivePSF(optics.NewCube(4), optics.NewCube(5)); err == nil {
		t.Fatal("shape mismatch accepted")
	}
}

func TestExcitationWeight(t *testing.T) {
	lp := mgl64.Vec3{1, 0, 0}
	if w := excitationWeight(0, mgl64.Vec3{0, 1, 0}, lp); w != 1 {
		t.Fatalf("isotropic weight %v", w)
	}
	if w := excitationWeight(0.4, mgl64.Vec3{0, 1, 0}, lp); w != 0 {
		t.Fatalf("orthogonal dipole weight %v", w)
	}
	if w := excitationWeight(0.4, mgl64.Vec3{-1, 0, 0}, lp); w != 1 {
		t.Fatalf("antiparallel dipole weight %v", w)
	}
}

func ensembleSystem(t *testing.T) (*Microscope, *Trace) {
	t.Helper()
	m := newSystem(t, 16, 2e-6, [2]float64{0.8, 1}, [2]float64{0.8, 1})
	tr, err := m.Trace()
	if err != nil {
		t.Fatal(err)
	}
	return m, tr
}

func TestDetectionPSFWorkersAgree(t *testing.T) {
	m, tr := ensembleSystem(t)
	p := DefaultParams()
	p.Ensemble = 6
	p.Workers = 1
	seq, tp1, err := m.DetectionPSF(p, tr, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Workers = 4
	par, tp4, err := m.DetectionPSF(p, tr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(tp1-tp4) > 1e-12 {
		t.Fatalf("throughput differs: %v vs %v", tp1, tp4)
	}
	if !(tp1 > 0 && tp1 <= 1) {
		t.Fatalf("throughput %v outside (0,1]", tp1)
	}
	tol := 1e-9 * seq.Max()
	for i := range seq.Data {
		if math.Abs(seq.Data[i]-par.Data[i]) > tol {
			t.Fatalf("voxel %d: %v vs %v", i, seq.Data[i], par.Data[i])
		}
	}
}

func TestDetectionPSFProgressIsMonotonic(t *testing.T) {
	m, tr := ensembleSystem(t)
	p := DefaultParams()
	p.Ensemble = 7
	p.Workers = 3
	var mu sync.Mutex
	var got []int
	sink := ProgressFunc(func(pc int) {
		mu.Lock()
		got = append(got, pc)
		mu.Unlock()
	})
	if _, _, err := m.DetectionPSF(p, tr, sink); err != nil {
		t.Fatal(err)
	}
	if len(got) != p.Ensemble {
		t.Fatalf("%d updates for %d dipoles", len(got), p.Ensemble)
	}
	for i := 1; i < len(got); i++ {
		if got[i] < got[i-1] {
			t.Fatalf("progress went backwards: %v", got)
		}
	}
	if got[len(got)-1] != 100 {
		t.Fatalf("last update %d, want 100", got[len(got)-1])
	}
}

func TestProgressDoesNotChangeResult(t *testing.T) {
	m, tr := ensembleSystem(t)
	p := DefaultParams()
	p.Ensemble = 3
	p.Workers = 1
	a, _, _ := m.DetectionPSF(p, tr, nil)
	bar := NewTerminalProgress(nil, "")
	b, _, _ := m.DetectionPSF(p, tr, bar)
	bar.Finish()
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatal("progress sink changed the PSF")
		}
	}
}

type countingDiffraction struct {
	mu    sync.Mutex
	calls int
}

func (d *countingDiffraction) Intensity(field optics.VecGrid, kz optics.Grid, z []float64, bao optics.Grid, res int, scaling float64) *optics.Volume {
	d.mu.Lock()
	d.calls++
	d.mu.Unlock()
	v := optics.NewVolume(res, res, len(z))
	v.Set(res/2, res/2, len(z)/2, field.Power())
	return v
}

func TestSetDiffractionSwapsEvaluator(t *testing.T) {
	m, tr := ensembleSystem(t)
	d := &countingDiffraction{}
	m.SetDiffraction(d)
	p := DefaultParams()
	p.Ensemble = 5
	psf, _, err := m.DetectionPSF(p, tr, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.calls != p.Ensemble {
		t.Fatalf("%d evaluator calls for %d dipoles", d.calls, p.Ensemble)
	}
	if i, j, k := psf.ArgMax(); i != 8 || j != 8 || k != 8 {
		t.Fatalf("stub output lost: peak at (%d,%d,%d)", i, j, k)
	}
	m.SetDiffraction(nil)
	if _, ok := m.evaluator(nil).(optics.Debye); !ok {
		t.Fatal("nil should restore the Debye evaluator")
	}
}
