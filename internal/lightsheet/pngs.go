package lightsheet

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

// SavePNGSequence16 writes one 16-bit grayscale PNG per z slice.
// Each slice is normalized to its own peak, then gamma is applied.
func SavePNGSequence16(v *optics.Volume, prefix string, gamma float64) error {
	n0, n1, n2 := v.N0, v.N1, v.N2

	toU16 := func(x, scale float64) uint16 {
		if !(x > 0) {
			return 0
		}
		n := x * scale
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint16(math.Round(n * 65535.0))
	}

	width := digits(n2)
	step := max(1, n2/100)

	for k := 0; k < n2; k++ {
		if k%step == 0 {
			DebugLog("[PNG]  %.2f%%", float64(k+1)*100/float64(n2))
		}
		sliceMax := 0.0
		for i := 0; i < n0; i++ {
			for j := 0; j < n1; j++ {
				if x := v.At(i, j, k); x > sliceMax {
					sliceMax = x
				}
			}
		}
		if sliceMax == 0 {
			sliceMax = 1
		}
		scale := 1.0 / sliceMax

		// flip y so up is up
		img := image.NewGray16(image.Rect(0, 0, n1, n0))
		for i := 0; i < n0; i++ {
			rowOff := (n0 - 1 - i) * img.Stride
			for j := 0; j < n1; j++ {
				g := toU16(v.At(i, j, k), scale)
				img.Pix[rowOff+2*j] = uint8(g >> 8)
				img.Pix[rowOff+2*j+1] = uint8(g)
			}
		}

		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return err
		}
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(f, img); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
