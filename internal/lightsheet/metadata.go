package lightsheet

import (
	"encoding/json"
	"math"
	"os"
)

// Metadata is the data.json summary of a run. Lengths are in the units named
// by the keys; failed FWHM fits are written as null.
type Metadata struct {
	Dipoles         int      `json:"Dipoles in ensamble"`
	EmissionNM      float64  `json:"Emission wavelength [nm]"`
	ExcitationNM    float64  `json:"Excitation wavelength [nm]"`
	FoVPixels       int      `json:"Full FoV [pixels]"`
	FoVMicrons      float64  `json:"Full FoV in object space [microns]"`
	SheetOpeningDeg float64  `json:"Light sheet opening [degrees]"`
	Magnification   float64  `json:"Magnification transverse"`
	AxialMag        float64  `json:"Magnification axial"`
	BaseFrequency   float64  `json:"MTF base frequency"`
	MTFSize         int      `json:"MTF size [pixels]"`
	Efficiency      float64  `json:"Optical efficiency"`
	VoxelMicrons    float64  `json:"Voxel size [microns]"`
	XResNM          float64  `json:"X_res [nm]"`
	YResNM          float64  `json:"Y_res [nm]"`
	ZResNM          float64  `json:"Z_res [nm]"`
	XFWHMNM         *float64 `json:"X_FWHM [nm]"`
	YFWHMNM         *float64 `json:"Y_FWHM [nm]"`
	ZFWHMNM         *float64 `json:"Z_FWHM [nm]"`
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }

// Metadata summarizes r for the microscope that produced it.
func (m *Microscope) Metadata(r *Result) Metadata {
	md := Metadata{
		Dipoles:         r.Params.Ensemble,
		EmissionNM:      round2(m.lambdaEm * 1e9),
		ExcitationNM:    round2(m.lambdaEx * 1e9),
		FoVPixels:       m.camera.Res,
		FoVMicrons:      r.Specs.FoV * 1e6,
		SheetOpeningDeg: math.Round(r.Params.SheetOpening * 180 / math.Pi),
		Magnification:   r.Specs.Magnification,
		AxialMag:        r.Specs.AxialMagnification,
		BaseFrequency:   r.Spectra.BaseFrequency,
		MTFSize:         r.Spectra.Size,
		Efficiency:      r.Throughput,
		VoxelMicrons:    m.camera.Pitch * 1e6,
		XResNM:          r.Resolution[0].Value * 1e9,
		YResNM:          r.Resolution[1].Value * 1e9,
		ZResNM:          r.Resolution[2].Value * 1e9,
	}
	fwhm := func(f AxisFit) *float64 {
		if f.Err != nil {
			return nil
		}
		v := f.FWHM * 1e9
		return &v
	}
	md.XFWHMNM, md.YFWHMNM, md.ZFWHMNM = fwhm(r.FWHM[0]), fwhm(r.FWHM[1]), fwhm(r.FWHM[2])
	return md
}

// Save writes the metadata as indented JSON.
func (md Metadata) Save(path string) error {
	data, err := json.MarshalIndent(md, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
