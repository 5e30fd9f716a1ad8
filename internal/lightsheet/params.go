package lightsheet

import (
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/multierr"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Polarization selects the light-sheet input polarization.
type Polarization string

const (
	PolP Polarization = "p"
	PolS Polarization = "s"
	PolU Polarization = "u" // diagonal, equal p and s
)

// Vector returns the base field direction; unknown modes give the zero vector.
func (p Polarization) Vector() mgl64.Vec3 {
	switch p {
	case PolP:
		return mgl64.Vec3{1, 0, 0}
	case PolS:
		return mgl64.Vec3{0, 1, 0}
	case PolU:
		return mgl64.Vec3{math.Sqrt2 / 2, math.Sqrt2 / 2, 0}
	}
	return mgl64.Vec3{}
}

// Params is the validated, immutable simulation configuration.
type Params struct {
	Ensemble     int          // number of dipole orientations
	OTFRes       int          // edge of the zero-padded volume used for the MTF
	Polarization Polarization // light-sheet polarization
	Anisotropy   float64      // 0 (isotropic) or 0.4 (fully polarized excitation)
	SheetOpening float64      // light-sheet half-angle, rad
	SNR          float64      // target peak SNR; 0 disables noise
	Workers      int          // dipole workers; 0 means runtime.NumCPU()
	Seed         uint64       // noise seed
	Backend      string       // FFT backend name
}

// DefaultParams mirrors the package defaults.
func DefaultParams() Params {
	return Params{
		Ensemble:     Ensemble,
		OTFRes:       OTFRes,
		Polarization: PolarizationDef,
		Anisotropy:   Anisotropy,
		SheetOpening: SheetOpeningDeg * math.Pi / 180,
		SNR:          SNR,
		Seed:         1,
		Backend:      optics.BackendGonum,
	}
}

// Validate reports every invalid field at once.
func (p Params) Validate() error {
	var err error
	if p.Ensemble <= 0 {
		err = multierr.Append(err, configErr("ensemble", -1, "must be > 0, got %d", p.Ensemble))
	}
	if p.OTFRes <= 0 {
		err = multierr.Append(err, configErr("otfRes", -1, "must be > 0, got %d", p.OTFRes))
	}
	switch p.Polarization {
	case PolP, PolS, PolU:
	default:
		err = multierr.Append(err, configErr("polarization", -1, "must be one of p, s, u; got %q", p.Polarization))
	}
	if !isAnisotropy(p.Anisotropy) {
		err = multierr.Append(err, configErr("anisotropy", -1, "supported values are 0 and 0.4, got %v", p.Anisotropy))
	}
	if !isFinite(p.SheetOpening) || p.SheetOpening <= 0 || p.SheetOpening >= math.Pi/2 {
		err = multierr.Append(err, configErr("sheetOpening", -1, "half-angle must be within (0, 90°), got %v rad", p.SheetOpening))
	}
	if !isFinite(p.SNR) || p.SNR < 0 {
		err = multierr.Append(err, configErr("snr", -1, "must be >= 0, got %v", p.SNR))
	}
	if p.Workers < 0 {
		err = multierr.Append(err, configErr("workers", -1, "must be >= 0, got %d", p.Workers))
	}
	if _, berr := optics.BackendByName(p.Backend); berr != nil {
		err = multierr.Append(err, &ConfigError{Field: "fft", Index: -1, Err: berr})
	}
	return err
}

func isAnisotropy(a float64) bool {
	return math.Abs(a-anisotropyIsotropic) < 1e-12 || math.Abs(a-anisotropyPolarized) < 1e-12
}

func (p Params) workers() int {
	if p.Workers > 0 {
		return p.Workers
	}
	return runtime.NumCPU()
}
