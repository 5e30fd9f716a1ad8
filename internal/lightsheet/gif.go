package lightsheet

import (
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"

	"github.com/lukaszgryglicki/lightsheet/internal/optics"
)

var grayPalette = func() color.Palette {
	p := make(color.Palette, 256)
	for i := range p {
		p[i] = color.Gray{Y: uint8(i)}
	}
	return p
}()

// SaveAnimatedGIF writes one frame per z slice, delay in 100ths of a second.
// Slices are normalized to the global peak so brightness is comparable
// between frames.
func SaveAnimatedGIF(v *optics.Volume, path string, delay int, gamma float64) error {
	n0, n1, n2 := v.N0, v.N1, v.N2
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, n2),
		Delay: make([]int, 0, n2),
	}
	peak := v.Max()
	if !(peak > 0) {
		peak = 1
	}
	toByte := func(x float64) uint8 {
		if !(x > 0) {
			return 0
		}
		n := x / peak
		if n > 1 {
			n = 1
		}
		if gamma != 1 {
			n = math.Pow(n, 1.0/gamma)
		}
		return uint8(math.Round(n * 255))
	}
	for k := 0; k < n2; k++ {
		if k%max(1, n2/100) == 0 {
			DebugLog("[GIF] %.2f%%", float64(k+1)*100/float64(n2))
		}
		img := image.NewPaletted(image.Rect(0, 0, n1, n0), grayPalette)
		for i := 0; i < n0; i++ {
			rowOff := (n0 - 1 - i) * img.Stride
			for j := 0; j < n1; j++ {
				img.Pix[rowOff+j] = toByte(v.At(i, j, k))
			}
		}
		out.Image = append(out.Image, img)
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, out)
}
