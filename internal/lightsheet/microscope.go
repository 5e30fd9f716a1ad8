package lightsheet

import (
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Diffraction turns an aperture field into focal-volume intensity.
// optics.Debye is the FFT implementation.
type Diffraction interface {
	Intensity(field optics.VecGrid, kz optics.Grid, z []float64, bao optics.Grid, res int, scaling float64) *optics.Volume
}

// Microscope is an ordered optical train plus its detector. Lens 0 faces the
// sample; the last lens forms the image on the camera.
type Microscope struct {
	lambdaEx    float64 // excitation wavelength, m
	lambdaEm    float64 // emission wavelength, m
	lenses      []Lens
	camera      *Camera
	diffraction Diffraction
	specs       *Specs
}

// NewMicroscope starts an empty train for the given wavelengths.
func NewMicroscope(lambdaEx, lambdaEm float64) (*Microscope, error) {
	if !isFinite(lambdaEx) || lambdaEx <= 0 {
		return nil, configErr("excitationWavelength", -1, "must be > 0, got %v", lambdaEx)
	}
	if !isFinite(lambdaEm) || lambdaEm <= 0 {
		return nil, configErr("emissionWavelength", -1, "must be > 0, got %v", lambdaEm)
	}
	return &Microscope{lambdaEx: lambdaEx, lambdaEm: lambdaEm}, nil
}

// AddLens appends a lens at the detector end.
func (m *Microscope) AddLens(l Lens) error {
	if err := l.validate(len(m.lenses)); err != nil {
		return err
	}
	m.lenses = append(m.lenses, l)
	m.specs = nil
	logger.Log.Debug("lens added", zap.Int("index", len(m.lenses)-1), zap.Float64("na", l.NA),
		zap.Float64("ri", l.RI), zap.Float64("tilt", l.Tilt))
	return nil
}

// InsertLens places a lens at pos, shifting later lenses back. pos may equal
// the current length (append).
func (m *Microscope) InsertLens(pos int, l Lens) error {
	if pos < 0 || pos > len(m.lenses) {
		return configErr("lens.position", pos, "insertion position out of range [0,%d]", len(m.lenses))
	}
	if err := l.validate(pos); err != nil {
		return err
	}
	m.lenses = append(m.lenses, Lens{})
	copy(m.lenses[pos+1:], m.lenses[pos:])
	m.lenses[pos] = l
	m.specs = nil
	logger.Log.Debug("lens inserted", zap.Int("index", pos), zap.Float64("na", l.NA), zap.Float64("ri", l.RI))
	return nil
}

// ExcitationWavelength returns the light-sheet wavelength in meters.
func (m *Microscope) ExcitationWavelength() float64 { return m.lambdaEx }

// EmissionWavelength returns the detection wavelength in meters.
func (m *Microscope) EmissionWavelength() float64 { return m.lambdaEm }

// SetCamera installs the detector, replacing any previous one.
func (m *Microscope) SetCamera(c Camera) error {
	if err := c.validate(); err != nil {
		return err
	}
	m.camera = &c
	m.specs = nil
	return nil
}

// SetDiffraction swaps the diffraction evaluator; nil restores the default.
func (m *Microscope) SetDiffraction(d Diffraction) { m.diffraction = d }

// Lenses returns a copy of the optical train.
func (m *Microscope) Lenses() []Lens { return append([]Lens(nil), m.lenses...) }

// Camera returns the detector and whether one is set.
func (m *Microscope) Camera() (Camera, bool) {
	if m.camera == nil {
		return Camera{}, false
	}
	return *m.camera, true
}

func (m *Microscope) ready() error {
	if len(m.lenses) == 0 {
		return ErrNoLenses
	}
	if m.camera == nil {
		return ErrNoCamera
	}
	return nil
}

func (m *Microscope) evaluator(backend optics.Backend) Diffraction {
	if m.diffraction != nil {
		return m.diffraction
	}
	return optics.NewDebye(backend)
}
