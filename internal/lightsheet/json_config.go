package lightsheet

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

type LensCfg struct {
	NA      float64 `json:"na" yaml:"na"`
	RI      float64 `json:"ri" yaml:"ri"`
	TiltDeg float64 `json:"tiltDeg,omitempty" yaml:"tiltDeg,omitempty"`
	// Optional insertion index into the lenses built so far; appended when nil.
	Position *int `json:"position,omitempty" yaml:"position,omitempty"`
}

type CameraCfg struct {
	Res    float64 `json:"res" yaml:"res"` // pixels, must be integral
	Pitch  float64 `json:"pitch" yaml:"pitch"`
	Offset float64 `json:"offset" yaml:"offset"`
	RMS    float64 `json:"rms" yaml:"rms"`
}

type Config struct {
	ExcitationNM    float64   `json:"excitationNm" yaml:"excitationNm"`
	EmissionNM      float64   `json:"emissionNm" yaml:"emissionNm"`
	Lenses          []LensCfg `json:"lenses" yaml:"lenses"`
	Camera          CameraCfg `json:"camera" yaml:"camera"`
	Ensemble        int       `json:"ensemble,omitempty" yaml:"ensemble,omitempty"`
	OTFRes          int       `json:"otfRes,omitempty" yaml:"otfRes,omitempty"`
	Polarization    string    `json:"polarization,omitempty" yaml:"polarization,omitempty"`
	Anisotropy      *float64  `json:"anisotropy,omitempty" yaml:"anisotropy,omitempty"`
	SheetOpeningDeg float64   `json:"sheetOpeningDeg,omitempty" yaml:"sheetOpeningDeg,omitempty"`
	SNR             *float64  `json:"snr,omitempty" yaml:"snr,omitempty"`
	Workers         int       `json:"workers,omitempty" yaml:"workers,omitempty"`
	Seed            uint64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	FFT             string    `json:"fft,omitempty" yaml:"fft,omitempty"`
	GIFDelay        int       `json:"gifDelay,omitempty" yaml:"gifDelay,omitempty"`
	Gamma           float64   `json:"gamma,omitempty" yaml:"gamma,omitempty"`
}

func (c LensCfg) Build(index int) (Lens, error) {
	l := Lens{NA: c.NA, RI: c.RI, Tilt: c.TiltDeg * math.Pi / 180.0}
	if err := l.validate(index); err != nil {
		return Lens{}, err
	}
	return l, nil
}

func (c CameraCfg) Build() (Camera, error) {
	if c.Res != math.Trunc(c.Res) || c.Res < 2 || c.Res > math.MaxInt32 {
		return Camera{}, configErr("camera.res", -1, "pixel count must be an integer >= 2, got %v", c.Res)
	}
	return NewCamera(int(c.Res), c.Pitch, c.Offset, c.RMS)
}

// Params converts the simulation settings; unset fields were defaulted by
// loadConfig.
func (c *Config) Params() Params {
	p := DefaultParams()
	p.Ensemble = c.Ensemble
	p.OTFRes = c.OTFRes
	p.Polarization = Polarization(c.Polarization)
	p.SheetOpening = c.SheetOpeningDeg * math.Pi / 180.0
	p.Workers = c.Workers
	p.Seed = c.Seed
	p.Backend = c.FFT
	if c.Anisotropy != nil {
		p.Anisotropy = *c.Anisotropy
	}
	if c.SNR != nil {
		p.SNR = *c.SNR
	}
	return p
}

// Build assembles the microscope and validated parameters, reporting every
// problem found.
func (c *Config) Build() (*Microscope, Params, error) {
	m, err := NewMicroscope(c.ExcitationNM/1e9, c.EmissionNM/1e9)
	if err != nil {
		return nil, Params{}, err
	}
	var errs error
	if len(c.Lenses) == 0 {
		errs = multierr.Append(errs, &ConfigError{Field: "lenses", Index: -1, Err: ErrNoLenses})
	}
	for i, lc := range c.Lenses {
		l, err := lc.Build(i)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if lc.Position != nil {
			err = m.InsertLens(*lc.Position, l)
		} else {
			err = m.AddLens(l)
		}
		errs = multierr.Append(errs, err)
	}
	cam, err := c.Camera.Build()
	if err == nil {
		err = m.SetCamera(cam)
	}
	errs = multierr.Append(errs, err)
	p := c.Params()
	errs = multierr.Append(errs, p.Validate())
	if errs == nil && p.OTFRes < cam.Res {
		errs = configErr("otfRes", -1, "must be >= camera res %d, got %d", cam.Res, p.OTFRes)
	}
	if errs != nil {
		return nil, Params{}, errs
	}
	return m, p, nil
}

func decodeConfig(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := decodeConfig(path, data, &cfg); err != nil {
		return nil, &ConfigError{Field: "file", Index: -1, Err: fmt.Errorf("%s: %w", path, err)}
	}
	// Defaults
	if cfg.Ensemble == 0 {
		cfg.Ensemble = Ensemble
	}
	if cfg.OTFRes == 0 {
		cfg.OTFRes = OTFRes
	}
	if cfg.Polarization == "" {
		cfg.Polarization = string(PolarizationDef)
	}
	if cfg.SheetOpeningDeg == 0 {
		cfg.SheetOpeningDeg = SheetOpeningDeg
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.FFT == "" {
		cfg.FFT = optics.BackendGonum
	}
	if cfg.GIFDelay <= 0 {
		cfg.GIFDelay = GIFDelay
	}
	if cfg.Gamma <= 0 {
		cfg.Gamma = Gamma
	}
	DebugLog("Loaded config from %s: lenses=%d, res=%v, ensemble=%d, otf=%d, pol=%s", path, len(cfg.Lenses), cfg.Camera.Res, cfg.Ensemble, cfg.OTFRes, cfg.Polarization)
	return &cfg, nil
}
