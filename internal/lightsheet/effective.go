package lightsheet

import "github.com/lukaszgryglicki/lightsheet/internal/optics"

// EffectivePSF is the voxelwise product of the peak-normalized detection and
// illumination volumes. A volume without a positive peak contributes zeros.
func EffectivePSF(det, ill *optics.Volume) (*optics.Volume, error) {
	return optics.Mul(det.Normalized(), ill.Normalized())
}
