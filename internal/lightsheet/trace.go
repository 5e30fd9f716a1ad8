package lightsheet

import (
	"math"
	"math/cmplx"

	"go.uber.org/zap"

	"github.com/lukaszgryglicki/lightsheet/internal/logger"
	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Frame is the per-pixel ray geometry at one lens: polar angle Theta and
// azimuth Phi in that lens's own frame. NaN marks pixels whose ray does not
// pass.
type Frame struct {
	Lens  int // index into the lens list
	Theta optics.Grid
	Phi   optics.Grid
}

// clip invalidates rays beyond the lens acceptance angle.
func (f Frame) clip(l Lens) Frame {
	limit := l.AcceptanceAngle()
	for i, t := range f.Theta.Data {
		if t > limit {
			f.Theta.Data[i] = math.NaN()
		}
	}
	return f
}

// Trace is the result of tracing the camera grid back to the sample.
type Trace struct {
	Frames      []Frame          // reverse order: Frames[0] is the camera-side lens
	Jones       []optics.MatGrid // chain in application order right to left
	Transform   optics.MatGrid   // Chain(Jones)
	Apodization optics.Grid
}

// Exit is the frame of the lens that forms the image.
func (t *Trace) Exit() Frame { return t.Frames[0] }

// Entrance is the frame of the lens facing the sample.
func (t *Trace) Entrance() Frame { return t.Frames[len(t.Frames)-1] }

// rotationDirections returns the refraction sign used at each reverse step.
// Every relay pair flips the image, so the sign repeats with period four and
// its phase depends on the number of lenses.
func rotationDirections(n int) []float64 {
	dir := make([]float64, n)
	for j := range dir {
		e := (n-j+1)/2 + 1
		if e%2 == 0 {
			dir[j] = -1
		} else {
			dir[j] = 1
		}
	}
	return dir
}

// Trace walks the lens train from the camera back to the sample and builds
// the per-pixel polarization transform and apodization.
func (m *Microscope) Trace() (*Trace, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	n := len(m.lenses)
	res := m.camera.Res
	dirs := rotationDirections(n)
	x, y, r := optics.Coords(res)
	half := float64(optics.Center(res))

	apod := optics.NewGrid(res)
	for i := range apod.Data {
		apod.Data[i] = 1
	}
	tr := &Trace{Frames: make([]Frame, 0, n)}
	var prev Frame
	var prevLens Lens
	for i := 0; i < n; i++ {
		li := n - 1 - i
		lens := m.lenses[li]
		dir := dirs[i]
		var f Frame
		var jones []optics.MatGrid
		switch {
		case i == 0:
			f = Frame{
				Theta: asinGrid(r, lens.NA/lens.RI/half),
				Phi:   optics.Map2(y, x, math.Atan2),
			}
			jones = []optics.MatGrid{
				optics.InvRotZGrid(f.Phi),
				optics.RefractionGrid(scaled(f.Theta, dir)),
			}
			scaleApodization(apod, f.Theta, lens.RI, false)
		case i%2 == 1:
			f = collimate(prev, prevLens, lens)
			jones = []optics.MatGrid{optics.RefractionGrid(scaled(f.Theta, dir))}
			scaleApodization(apod, f.Theta, lens.RI, true)
		default:
			step := focusStepFor(lens, prevLens)
			f, jones = step.trace(prev, prevLens, lens, dir)
			scaleApodization(apod, f.Theta, lens.RI, false)
			DebugLog("lens %d: focusing step %s", li, step)
		}
		f.Lens = li
		f = f.clip(lens)
		tr.Frames = append(tr.Frames, f)
		tr.Jones = append(tr.Jones, jones...)
		prev, prevLens = f, lens
	}
	tr.Jones = append(tr.Jones, optics.RotZGrid(prev.Phi))
	tr.Transform = optics.Chain(tr.Jones)
	tr.Apodization = apod
	tr.maskBlocked()
	logger.Log.Debug("trace built", zap.Int("lenses", n), zap.Int("jones", len(tr.Jones)),
		zap.Float64("entranceThetaMax", tr.Entrance().Theta.NaNMax()))
	return tr, nil
}

// maskBlocked marks every pixel whose ray was clipped by any lens as NaN in
// the transform and the apodization.
func (t *Trace) maskBlocked() {
	var blocked optics.Mat3
	for r := range blocked.M {
		for c := range blocked.M[r] {
			blocked.M[r][c] = cmplx.NaN()
		}
	}
	for p := range t.Apodization.Data {
		for _, f := range t.Frames {
			if math.IsNaN(f.Theta.Data[p]) {
				t.Apodization.Data[p] = math.NaN()
				t.Transform.Data[p] = blocked
				break
			}
		}
	}
}

// collimate maps the previous frame through a collimated space: the pupil
// radius is preserved, so NA·sin scales by the sine condition.
func collimate(prev Frame, prevLens, lens Lens) Frame {
	s := lens.NA * prevLens.RI / (lens.RI * prevLens.NA)
	return Frame{
		Theta: prev.Theta.Map(func(t float64) float64 { return math.Asin(s * math.Sin(t)) }),
		Phi:   prev.Phi.Clone(),
	}
}

// scaleApodization multiplies (or divides) by sqrt(RI·cos theta).
func scaleApodization(apod, theta optics.Grid, ri float64, divide bool) {
	for i, t := range theta.Data {
		f := math.Sqrt(ri * math.Cos(t))
		if divide {
			apod.Data[i] /= f
		} else {
			apod.Data[i] *= f
		}
	}
}

func scaled(g optics.Grid, s float64) optics.Grid {
	return g.Map(func(v float64) float64 { return s * v })
}

// snell refracts theta from index n1 into n2.
func snell(theta optics.Grid, n1, n2 float64) optics.Grid {
	return theta.Map(func(t float64) float64 { return math.Asin(n1 * math.Sin(t) / n2) })
}

// reframe expresses directions given in one lens frame in a frame rotated by
// tilt about x.
func reframe(theta, phi optics.Grid, tilt float64) (optics.Grid, optics.Grid) {
	R := optics.FrameX(-tilt)
	th, ph := optics.NewGrid(theta.N), optics.NewGrid(theta.N)
	for i := range theta.Data {
		k := R.Mul3x1(optics.Direction(theta.Data[i], phi.Data[i]))
		th.Data[i], ph.Data[i] = optics.Angles(k)
	}
	return th, ph
}

// focusStep crosses the focal space between two lenses. The variant is picked
// once per lens pair from which of the two is tilted.
type focusStep interface {
	trace(prev Frame, prevLens, lens Lens, dir float64) (Frame, []optics.MatGrid)
	String() string
}

type untiltedFocus struct{}

type tiltedCurrentFocus struct{}

type tiltedPreviousFocus struct{}

func focusStepFor(lens, prevLens Lens) focusStep {
	switch {
	case lens.Tilted():
		return tiltedCurrentFocus{}
	case prevLens.Tilted():
		return tiltedPreviousFocus{}
	}
	return untiltedFocus{}
}

func (untiltedFocus) String() string       { return "untilted" }
func (tiltedCurrentFocus) String() string  { return "tilted-current" }
func (tiltedPreviousFocus) String() string { return "tilted-previous" }

// Both lenses share one axis: refract at the interface and bend.
func (untiltedFocus) trace(prev Frame, prevLens, lens Lens, dir float64) (Frame, []optics.MatGrid) {
	theta := snell(prev.Theta, prevLens.RI, lens.RI)
	return Frame{Theta: theta, Phi: prev.Phi.Clone()}, []optics.MatGrid{
		optics.RotYGrid(scaled(prev.Theta, -dir)),
		optics.FresnelGrid(theta, prev.Theta, lens.RI, prevLens.RI),
		optics.RotYGrid(scaled(theta, dir)),
		optics.RefractionGrid(scaled(theta, dir)),
	}
}

// The current lens is tilted: move into its frame first, then refract at an
// interface normal to its axis.
func (tiltedCurrentFocus) trace(prev Frame, prevLens, lens Lens, dir float64) (Frame, []optics.MatGrid) {
	inTheta, phi := reframe(prev.Theta, prev.Phi, lens.Tilt)
	theta := snell(inTheta, prevLens.RI, lens.RI)
	return Frame{Theta: theta, Phi: phi}, []optics.MatGrid{
		optics.RotZGrid(prev.Phi),
		optics.Broadcast(optics.RotX(lens.Tilt), prev.Theta.N),
		optics.InvRotZGrid(phi),
		optics.RotYGrid(scaled(inTheta, -dir)),
		optics.FresnelGrid(theta, inTheta, lens.RI, prevLens.RI),
		optics.RotYGrid(scaled(theta, dir)),
		optics.RefractionGrid(scaled(theta, dir)),
	}
}

// The previous lens is tilted: refract at an interface normal to its axis,
// then move into the current lens frame.
func (tiltedPreviousFocus) trace(prev Frame, prevLens, lens Lens, dir float64) (Frame, []optics.MatGrid) {
	inTheta := snell(prev.Theta, prevLens.RI, lens.RI)
	inPhi := prev.Phi
	theta, phi := reframe(inTheta, inPhi, prevLens.Tilt)
	return Frame{Theta: theta, Phi: phi}, []optics.MatGrid{
		optics.RotYGrid(scaled(prev.Theta, -dir)),
		optics.FresnelGrid(inTheta, prev.Theta, lens.RI, prevLens.RI),
		optics.RotYGrid(scaled(inTheta, dir)),
		optics.RotZGrid(inPhi),
		optics.Broadcast(optics.RotX(prevLens.Tilt), prev.Theta.N),
		optics.InvRotZGrid(phi),
		optics.RefractionGrid(scaled(theta, dir)),
	}
}
