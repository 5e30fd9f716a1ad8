package lightsheet

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// Stack is one named 16-bit volume ready for writing.
type Stack struct {
	Name string
	Vol  *optics.Volume
	Data []uint16 // same layout as Vol.Data
}

// Stacks lists the seven result volumes. Photon-count stacks keep their
// counts; everything else is scaled to the full 16-bit range.
func (r *Result) Stacks() []Stack {
	norm := func(name string, v *optics.Volume) Stack { return Stack{name, v, optics.Quantize16(v)} }
	counts := func(name string, v *optics.Volume) Stack { return Stack{name, v, optics.Counts16(v)} }
	return []Stack{
		norm("PSF", r.PSF),
		norm("PSF_effective", r.Effective),
		counts("PSF_poisson", r.Spectra.PSFShot),
		counts("PSF_readout", r.Spectra.PSFReadout),
		norm("MTF_noiseless", r.Spectra.Noiseless),
		norm("MTF_poisson", r.Spectra.Shot),
		norm("MTF_readout", r.Spectra.Readout),
	}
}

// SaveTIFFStack writes one Deflate-compressed Gray16 TIFF per z slice into
// dir/name/.
func SaveTIFFStack(dir string, s Stack) error {
	sub := filepath.Join(dir, s.Name)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		return err
	}
	n0, n1, n2 := s.Vol.N0, s.Vol.N1, s.Vol.N2
	width := digits(n2)
	opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
	for k := 0; k < n2; k++ {
		img := grayFrame(s.Data, n0, n1, n2, k)
		full := filepath.Join(sub, fmt.Sprintf("%s_%0*d.tiff", s.Name, width, k))
		f, err := os.Create(full)
		if err != nil {
			return err
		}
		if err := tiff.Encode(f, img, opts); err != nil {
			f.Close()
			return fmt.Errorf("%s slice %d: %w", s.Name, k, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	DebugLog("Saved TIFF stack %s (%d slices)", sub, n2)
	return nil
}

// grayFrame extracts z slice k as an image with x across and y down.
func grayFrame(data []uint16, n0, n1, n2, k int) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, n1, n0))
	for i := 0; i < n0; i++ {
		row := i * img.Stride
		for j := 0; j < n1; j++ {
			v := data[(i*n1+j)*n2+k]
			img.Pix[row+2*j] = uint8(v >> 8)
			img.Pix[row+2*j+1] = uint8(v)
		}
	}
	return img
}

// digits is the zero-padding width for indices 0..n-1.
func digits(n int) int {
	w := 1
	for m := n - 1; m >= 10; m /= 10 {
		w++
	}
	return w
}
