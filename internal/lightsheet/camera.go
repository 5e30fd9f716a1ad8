package lightsheet

// Camera is the square detector: Res pixels per side at Pitch metres, with a
// readout offset and RMS noise in counts.
type Camera struct {
	Res    int
	Pitch  float64
	Offset float64
	RMS    float64
}

// NewCamera validates the detector parameters.
func NewCamera(res int, pitch, offset, rms float64) (Camera, error) {
	c := Camera{Res: res, Pitch: pitch, Offset: offset, RMS: rms}
	if err := c.validate(); err != nil {
		return Camera{}, err
	}
	return c, nil
}

func (c Camera) validate() error {
	switch {
	case c.Res < 2:
		return configErr("camera.res", -1, "pixel count must be an integer >= 2, got %d", c.Res)
	case !isFinite(c.Pitch) || c.Pitch <= 0:
		return configErr("camera.pitch", -1, "pixel pitch must be > 0, got %v", c.Pitch)
	case !isFinite(c.Offset):
		return configErr("camera.offset", -1, "offset must be finite")
	case !isFinite(c.RMS) || c.RMS < 0:
		return configErr("camera.rms", -1, "readout RMS must be >= 0, got %v", c.RMS)
	}
	return nil
}
