package lightsheet

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
)

// Run simulates the system in cfgPath and writes every output under outDir.
func Run(cfgPath, outDir string, progress Progress) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	m, p, err := cfg.Build()
	if err != nil {
		return err
	}
	if outDir == "" {
		outDir = OutDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	start := time.Now()
	r, err := m.Compute(p, progress)
	if err != nil {
		return err
	}
	DebugLog("Compute took %s", time.Since(start))

	for _, s := range r.Stacks() {
		if err := SaveTIFFStack(outDir, s); err != nil {
			return err
		}
	}
	if err := m.Metadata(r).Save(filepath.Join(outDir, MetadataFile)); err != nil {
		return err
	}
	if err := saveDiagnostics(r, outDir, cfg); err != nil {
		return err
	}
	logger.Log.Info("outputs written", zap.String("dir", outDir), zap.Duration("took", time.Since(start)))
	return nil
}

// saveDiagnostics writes the optional outputs switched on in vars.go. All
// are attempted; failures are combined.
func saveDiagnostics(r *Result, outDir string, cfg *Config) error {
	var err error
	if PNG {
		dir := filepath.Join(outDir, "pngs")
		if e := os.MkdirAll(dir, 0o755); e != nil {
			err = multierr.Append(err, e)
		} else {
			err = multierr.Append(err, SavePNGSequence16(r.Effective, filepath.Join(dir, "PSF_effective"), cfg.Gamma))
			DebugLog("Saved PNG sequence with prefix: %s", dir)
		}
	}
	if GIF {
		path := filepath.Join(outDir, "PSF_effective.gif")
		err = multierr.Append(err, SaveAnimatedGIF(r.Effective, path, cfg.GIFDelay, cfg.Gamma))
		DebugLog("Saved animated GIF: %s", path)
	}
	if RAW {
		raws := []Stack{
			{Name: "PSF", Vol: r.PSF},
			{Name: "illumination", Vol: r.Illumination},
			{Name: "PSF_effective", Vol: r.Effective},
		}
		for _, s := range raws {
			err = multierr.Append(err, SaveRawVolume(s.Vol, filepath.Join(outDir, "raw", s.Name+".raw")))
		}
	}
	if Plot {
		err = multierr.Append(err, SaveMTFPlot(r.Spectra, filepath.Join(outDir, PlotFile)))
	}
	return err
}

// PrintSpecs loads cfgPath and writes the derived system specs to w.
func PrintSpecs(cfgPath string, w io.Writer) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	m, _, err := cfg.Build()
	if err != nil {
		return err
	}
	s, err := m.Specs()
	if err != nil {
		return err
	}
	cam, _ := m.Camera()
	fmt.Fprintf(w, "Lenses:                %d\n", len(m.Lenses()))
	fmt.Fprintf(w, "Magnification:         %.6g\n", s.Magnification)
	fmt.Fprintf(w, "Axial magnification:   %.6g\n", s.AxialMagnification)
	fmt.Fprintf(w, "Sample rotation [deg]: %.4g\n", s.Alpha*180/math.Pi)
	fmt.Fprintf(w, "Z voxel [um]:          %.6g\n", s.ZVoxel*1e6)
	fmt.Fprintf(w, "Object pitch [um]:     %.6g\n", s.ObjectPitch*1e6)
	fmt.Fprintf(w, "FoV [um]:              %.6g (%d px)\n", s.FoV*1e6, cam.Res)
	fmt.Fprintf(w, "Debye scaling:         %.6g\n", s.Scaling)
	return nil
}
