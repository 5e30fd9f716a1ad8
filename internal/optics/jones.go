package optics

import "math"

// Fresnel returns the transmission Jones matrix for light crossing from a
// medium of index n1 at polar angle theta1 into index n2 at theta2, in a frame
// whose z axis is the interface normal and whose xz plane is the plane of
// incidence.
func Fresnel(theta1, theta2, n1, n2 float64) Mat3 {
	ts, tp := FresnelCoefficients(theta1, theta2, n1, n2)
	return Diag3(complex(tp, 0), complex(ts, 0), complex(tp, 0))
}

// FresnelCoefficients returns the s and p amplitude transmission coefficients.
func FresnelCoefficients(theta1, theta2, n1, n2 float64) (ts, tp float64) {
	c1, c2 := math.Cos(theta1), math.Cos(theta2)
	ts = 2 * n1 * c1 / (n1*c1 + n2*c2)
	tp = 2 * n1 * c1 / (n2*c1 + n1*c2)
	return ts, tp
}

// FresnelGrid applies Fresnel per pixel.
func FresnelGrid(theta1, theta2 Grid, n1, n2 float64) MatGrid {
	g := MatGrid{N: theta1.N, Data: make([]Mat3, len(theta1.Data))}
	for i := range g.Data {
		g.Data[i] = Fresnel(theta1.Data[i], theta2.Data[i], n1, n2)
	}
	return g
}

// Chain multiplies per-pixel matrices in list order, M0·M1·…·Mn, so the last
// element acts on a vector first.
func Chain(mats []MatGrid) MatGrid {
	if len(mats) == 0 {
		return MatGrid{}
	}
	out := MatGrid{N: mats[0].N, Data: make([]Mat3, len(mats[0].Data))}
	for p := range out.Data {
		acc := mats[0].Data[p]
		for _, m := range mats[1:] {
			acc = acc.Mul(m.Data[p])
		}
		out.Data[p] = acc
	}
	return out
}
