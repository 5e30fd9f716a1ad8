package lightsheet

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// mtfProfile returns the normalized MTF from the center outwards along one
// axis, with frequencies in cycles per micron.
func mtfProfile(mtf *optics.Volume, axis Axis, base float64) plotter.XYs {
	c := mtf.N0 / 2
	line := mtf.Line(axis.volumeAxis(), [3]int{c, c, c})
	dc := line[c]
	if !(dc > 0) {
		dc = 1
	}
	xys := make(plotter.XYs, len(line)-c)
	for i := range xys {
		xys[i].X = float64(i) * base * 1e-6
		xys[i].Y = line[c+i] / dc
	}
	return xys
}

// SaveMTFPlot draws the x, y and z profiles of the noiseless and shot-noise
// MTFs.
func SaveMTFPlot(sp *Spectra, path string) error {
	p := plot.New()
	p.Title.Text = "MTF profiles"
	p.X.Label.Text = "frequency [1/µm]"
	p.Y.Label.Text = "MTF / MTF(0)"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{}
	var lines []interface{}
	for _, a := range Axes {
		lines = append(lines,
			a.String()+" noiseless", floorLog(mtfProfile(sp.Noiseless, a, sp.BaseFrequency)),
			a.String()+" poisson", floorLog(mtfProfile(sp.Shot, a, sp.BaseFrequency)))
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// floorLog keeps a log axis drawable when a profile touches zero.
func floorLog(xys plotter.XYs) plotter.XYs {
	for i := range xys {
		if !(xys[i].Y > 1e-12) {
			xys[i].Y = 1e-12
		}
	}
	return xys
}
