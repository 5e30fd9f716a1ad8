package optics

import "math"

// Quantize16 maps a volume onto 0..65535 relative to its global maximum.
// Negative and non-finite voxels map to 0.
func Quantize16(v *Volume) []uint16 {
	out := make([]uint16, len(v.Data))
	m := v.Max()
	if !(m > 0) || math.IsInf(m, 0) {
		return out
	}
	for i, x := range v.Data {
		out[i] = toU16(x / m)
	}
	return out
}

// Counts16 rounds photon counts into 0..65535 without normalization.
func Counts16(v *Volume) []uint16 {
	out := make([]uint16, len(v.Data))
	for i, x := range v.Data {
		if !finite(x) || x <= 0 {
			continue
		}
		r := math.Round(x)
		if r > 65535 {
			r = 65535
		}
		out[i] = uint16(r)
	}
	return out
}

func toU16(n float64) uint16 {
	if !(n > 0) {
		return 0
	}
	if n > 1 {
		n = 1
	}
	return uint16(math.Round(n * 65535))
}
