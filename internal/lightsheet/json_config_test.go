package lightsheet

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigJSONDefaultsAndBuild(t *testing.T) {
	path := writeFile(t, "sys.json", `{
		"excitationNm": 488, "emissionNm": 507,
		"lenses": [
			{"na": 1.35, "ri": 1.4},
			{"na": 0.25, "ri": 1},
			{"na": 0.95, "ri": 1},
			{"na": 0.2463, "ri": 1, "position": 2},
			{"na": 1, "ri": 1.7, "tiltDeg": 40}
		],
		"camera": {"res": 32, "pitch": 2e-6, "offset": 100, "rms": 1.4},
		"otfRes": 64
	}`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ensemble != Ensemble || cfg.Polarization != "u" || cfg.SheetOpeningDeg != SheetOpeningDeg || cfg.GIFDelay != GIFDelay {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	m, p, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	lenses := m.Lenses()
	if len(lenses) != 5 || lenses[2].NA != 0.2463 || lenses[3].NA != 0.95 {
		t.Fatalf("position not honoured: %+v", lenses)
	}
	if math.Abs(lenses[4].Tilt-40*math.Pi/180) > 1e-12 {
		t.Fatalf("tilt %v", lenses[4].Tilt)
	}
	if p.Anisotropy != Anisotropy || p.SNR != SNR || p.OTFRes != 64 {
		t.Fatalf("params %+v", p)
	}
	ex, em := m.ExcitationWavelength(), m.EmissionWavelength()
	if math.Abs(ex-488e-9) > 1e-18 || math.Abs(em-507e-9) > 1e-18 {
		t.Fatalf("wavelengths %v %v", ex, em)
	}
}

func TestLoadConfigYAMLExplicitZeros(t *testing.T) {
	path := writeFile(t, "sys.yaml", `
excitationNm: 488
emissionNm: 500
lenses:
  - {na: 1, ri: 1}
  - {na: 1, ri: 1}
camera: {res: 16, pitch: 2.0e-6}
anisotropy: 0
snr: 0
fft: godsp
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	_, p, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.Anisotropy != 0 || p.SNR != 0 || p.Backend != "godsp" {
		t.Fatalf("explicit zeros lost: %+v", p)
	}
}

func TestConfigBuildReportsEveryProblem(t *testing.T) {
	pos := 7
	cfg := &Config{
		ExcitationNM: 488, EmissionNM: 500,
		Lenses: []LensCfg{
			{NA: 1.5, RI: 1},
			{NA: 0.5, RI: 1, Position: &pos},
		},
		Camera:          CameraCfg{Res: 12.5, Pitch: 1e-6},
		Ensemble:        10,
		OTFRes:          32,
		Polarization:    "q",
		SheetOpeningDeg: 5,
		FFT:             "gonum",
	}
	_, _, err := cfg.Build()
	if !errors.Is(err, ErrConfig) {
		t.Fatalf("want ErrConfig, got %v", err)
	}
	for _, f := range []string{"lens.na", "lens.position", "camera.res", "polarization"} {
		if !containsField(err, f) {
			t.Fatalf("missing %s in %v", f, err)
		}
	}
}

func TestConfigOTFBelowRes(t *testing.T) {
	cfg := &Config{
		ExcitationNM: 488, EmissionNM: 500,
		Lenses:          []LensCfg{{NA: 1, RI: 1}},
		Camera:          CameraCfg{Res: 64, Pitch: 1e-6},
		Ensemble:        1,
		OTFRes:          32,
		Polarization:    "p",
		SheetOpeningDeg: 5,
		FFT:             "gonum",
	}
	if _, _, err := cfg.Build(); !containsField(err, "otfRes") {
		t.Fatalf("want otfRes error, got %v", err)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: %v", err)
	}
	path := writeFile(t, "bad.json", `{"lenses": [`)
	if _, err := loadConfig(path); !errors.Is(err, ErrConfig) {
		t.Fatalf("malformed file: %v", err)
	}
}

func TestExampleConfigs(t *testing.T) {
	for _, name := range []string{"oblique_plane.json", "widefield.yaml"} {
		t.Run(name, func(t *testing.T) {
			cfg, err := loadConfig(filepath.Join("..", "..", "configs", name))
			if err != nil {
				t.Fatal(err)
			}
			m, _, err := cfg.Build()
			if err != nil {
				t.Fatal(err)
			}
			if _, err := m.Specs(); err != nil {
				t.Fatal(err)
			}
		})
	}
}
