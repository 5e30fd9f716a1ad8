package lightsheet

import (
	"fmt"
	"math"

	"github.com/alitto/pond/v2"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// detectionGrid holds the per-pixel quantities shared by every dipole.
type detectionGrid struct {
	kz      optics.Grid
	z       []float64
	bao     optics.Grid
	scaling float64
}

func (m *Microscope) detectionGrid(tr *Trace, sys Specs) detectionGrid {
	res := m.camera.Res
	last := m.lenses[len(m.lenses)-1]
	k := 2 * math.Pi / m.lambdaEm * last.RI
	dk := k * (last.NA / last.RI) / float64(optics.Center(res))
	_, _, r := optics.Coords(res)
	kz := r.Map(func(v float64) float64 {
		q := dk * v
		s := math.Sqrt(k*k - q*q)
		if math.IsNaN(s) {
			return 0
		}
		return s
	})
	z := optics.Axis(res)
	for i := range z {
		z[i] *= sys.ZVoxel
	}
	return detectionGrid{kz: kz, z: z, bao: obliqueness(tr.Exit().Theta), scaling: sys.Scaling}
}

// excitationWeight is the probability that a dipole along pol was excited by
// light polarized along lp.
func excitationWeight(anisotropy float64, pol, lp mgl64.Vec3) float64 {
	if anisotropy == anisotropyIsotropic {
		return 1
	}
	return math.Abs(pol.Dot(lp))
}

// DetectionPSF sums the image-space intensity of the dipole ensemble and
// returns it with the mean optical throughput.
func (m *Microscope) DetectionPSF(p Params, tr *Trace, progress Progress) (*optics.Volume, float64, error) {
	sys, err := m.Specs()
	if err != nil {
		return nil, 0, err
	}
	backend, err := optics.BackendByName(p.Backend)
	if err != nil {
		return nil, 0, &ConfigError{Field: "fft", Index: -1, Err: err}
	}
	diff := m.evaluator(backend)
	res := m.camera.Res
	grid := m.detectionGrid(tr, sys)
	entrance := tr.Entrance()
	thetaMax := entrance.Theta.NaNMax()
	lp := optics.FrameY(sys.Alpha).Mul3x1(p.Polarization.Vector())

	phis, thetas := optics.FibonacciDipoles(p.Ensemble)
	weights := make([]float64, p.Ensemble)
	acc := newAccumulator(res, res, len(grid.z))
	counter := newProgressCounter(p.Ensemble, progress)
	DebugLogOnce("detection Debye grid: %d-point FFT for %d px (scaling %.4f)", optics.FFTSize(res, grid.scaling), res, grid.scaling)

	pool := pond.NewPool(p.workers())
	defer pool.StopAndWait()
	group := pool.NewGroup()
	for i := range phis {
		group.Submit(func() {
			pol := optics.Orientation(phis[i], thetas[i])
			ae := excitationWeight(p.Anisotropy, pol, lp)
			ei := optics.DipoleField(pol, entrance.Phi, entrance.Theta, ae)
			ef := tr.Transform.Apply(ei).ScaleBy(tr.Apodization).Clean()
			tt := 0.0
			if pin := ei.Power(); pin > 0 {
				tt = ef.Power() / pin
			}
			weights[i] = optics.CollectionEfficiency(pol, thetaMax) * ae * tt
			acc.add(diff.Intensity(ef, grid.kz, grid.z, grid.bao, res, grid.scaling))
			counter.step()
			DebugLog("dipole %d/%d: ae=%.4f tt=%.4f", i+1, p.Ensemble, ae, tt)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, 0, fmt.Errorf("dipole ensemble: %w", err)
	}
	throughput := stat.Mean(weights, nil)
	logger.Log.Info("detection PSF computed",
		zap.Int("dipoles", p.Ensemble),
		zap.Int("workers", p.workers()),
		zap.Float64("throughput", throughput),
		zap.Float64("peak", acc.sum.Max()))
	return acc.sum, throughput, nil
}
