package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Volume stores a real 3-D field.
// Axis 0 is y (rows), axis 1 is x (columns), axis 2 is z.
type Volume struct {
	N0, N1, N2 int
	Data       []float64 // flat: (i*N1 + j)*N2 + k
}

// NewVolume allocates a zero volume.
func NewVolume(n0, n1, n2 int) *Volume {
	if n0 < 0 || n1 < 0 || n2 < 0 {
		panic("volume dimensions must be non-negative")
	}
	return &Volume{N0: n0, N1: n1, N2: n2, Data: make([]float64, n0*n1*n2)}
}

// NewCube allocates a zero n×n×n volume.
func NewCube(n int) *Volume { return NewVolume(n, n, n) }

func (v *Volume) idx(i, j, k int) int { return (i*v.N1+j)*v.N2 + k }

func (v *Volume) At(i, j, k int) float64     { return v.Data[v.idx(i, j, k)] }
func (v *Volume) Set(i, j, k int, x float64) { v.Data[v.idx(i, j, k)] = x }

// Dims returns the three axis lengths.
func (v *Volume) Dims() [3]int { return [3]int{v.N0, v.N1, v.N2} }

// SameShape reports whether both volumes have identical dimensions.
func (v *Volume) SameShape(o *Volume) bool { return v.Dims() == o.Dims() }

// Clone returns a deep copy.
func (v *Volume) Clone() *Volume {
	out := NewVolume(v.N0, v.N1, v.N2)
	copy(out.Data, v.Data)
	return out
}

// Max returns the largest value (0 for an empty volume).
func (v *Volume) Max() float64 {
	if len(v.Data) == 0 {
		return 0
	}
	return floats.Max(v.Data)
}

// Min returns the smallest value (0 for an empty volume).
func (v *Volume) Min() float64 {
	if len(v.Data) == 0 {
		return 0
	}
	return floats.Min(v.Data)
}

// Sum returns the total of all voxels.
func (v *Volume) Sum() float64 { return floats.Sum(v.Data) }

// ArgMax returns the coordinates of the largest voxel.
func (v *Volume) ArgMax() (i, j, k int) {
	if len(v.Data) == 0 {
		return 0, 0, 0
	}
	n := floats.MaxIdx(v.Data)
	k = n % v.N2
	j = (n / v.N2) % v.N1
	i = n / (v.N1 * v.N2)
	return i, j, k
}

// Add accumulates o into v.
func (v *Volume) Add(o *Volume) error {
	if !v.SameShape(o) {
		return fmt.Errorf("volume shape mismatch: %v vs %v", v.Dims(), o.Dims())
	}
	floats.Add(v.Data, o.Data)
	return nil
}

// Scale multiplies every voxel by s in place.
func (v *Volume) Scale(s float64) { floats.Scale(s, v.Data) }

// AddConst adds c to every voxel in place.
func (v *Volume) AddConst(c float64) { floats.AddConst(c, v.Data) }

// Normalized returns a copy divided by its maximum. A volume whose maximum is
// not positive comes back as zeros.
func (v *Volume) Normalized() *Volume {
	out := NewVolume(v.N0, v.N1, v.N2)
	m := v.Max()
	if !(m > 0) || math.IsInf(m, 0) {
		return out
	}
	for i, x := range v.Data {
		out.Data[i] = x / m
	}
	return out
}

// Mul returns the voxel-wise product of a and b.
func Mul(a, b *Volume) (*Volume, error) {
	if !a.SameShape(b) {
		return nil, fmt.Errorf("volume shape mismatch: %v vs %v", a.Dims(), b.Dims())
	}
	out := a.Clone()
	floats.Mul(out.Data, b.Data)
	return out, nil
}

// Pad returns a copy with p zero voxels added on both sides of every axis.
func (v *Volume) Pad(p int) *Volume {
	if p < 0 {
		panic("negative padding")
	}
	out := NewVolume(v.N0+2*p, v.N1+2*p, v.N2+2*p)
	for i := 0; i < v.N0; i++ {
		for j := 0; j < v.N1; j++ {
			src := v.Data[v.idx(i, j, 0) : v.idx(i, j, 0)+v.N2]
			dst := out.idx(i+p, j+p, p)
			copy(out.Data[dst:dst+v.N2], src)
		}
	}
	return out
}

// Crop returns the cube of edge n starting at offset off on every axis.
func (v *Volume) Crop(off, n int) *Volume {
	if off < 0 || off+n > v.N0 || off+n > v.N1 || off+n > v.N2 {
		panic(fmt.Sprintf("crop [%d:%d] out of range %v", off, off+n, v.Dims()))
	}
	out := NewCube(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			src := v.idx(i+off, j+off, off)
			dst := out.idx(i, j, 0)
			copy(out.Data[dst:dst+n], v.Data[src:src+n])
		}
	}
	return out
}

// Permute120 reorders axes so that out[i][j][k] = v[k][i][j].
func (v *Volume) Permute120() *Volume {
	out := NewVolume(v.N1, v.N2, v.N0)
	for a := 0; a < v.N0; a++ {
		for b := 0; b < v.N1; b++ {
			for c := 0; c < v.N2; c++ {
				out.Set(b, c, a, v.At(a, b, c))
			}
		}
	}
	return out
}

// Line returns the voxels along axis with the other two coordinates taken
// from at.
func (v *Volume) Line(axis int, at [3]int) []float64 {
	n := v.Dims()[axis]
	out := make([]float64, n)
	p := at
	for t := 0; t < n; t++ {
		p[axis] = t
		out[t] = v.At(p[0], p[1], p[2])
	}
	return out
}
