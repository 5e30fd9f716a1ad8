package optics

// Mat3 is a complex 3×3 Jones matrix (row-major).
type Mat3 struct {
	M [3][3]complex128
}

func I3() Mat3 {
	return Mat3{M: [3][3]complex128{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}}
}

// Diag3 builds a diagonal matrix.
func Diag3(a, b, c complex128) Mat3 {
	return Mat3{M: [3][3]complex128{
		{a, 0, 0},
		{0, b, 0},
		{0, 0, c},
	}}
}

func (A Mat3) Mul(B Mat3) Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			var sum complex128
			for k := 0; k < 3; k++ {
				sum += A.M[r][k] * B.M[k][c]
			}
			R.M[r][c] = sum
		}
	}
	return R
}

func (A Mat3) Transpose() Mat3 {
	var R Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			R.M[r][c] = A.M[c][r]
		}
	}
	return R
}

// MatGrid holds one Jones matrix per pixel of an N×N grid.
type MatGrid struct {
	N    int
	Data []Mat3
}

// Broadcast repeats one matrix over every pixel.
func Broadcast(m Mat3, n int) MatGrid {
	g := MatGrid{N: n, Data: make([]Mat3, n*n)}
	for i := range g.Data {
		g.Data[i] = m
	}
	return g
}

// MatGridOf builds a grid from a per-pixel angle map.
func MatGridOf(a Grid, f func(float64) Mat3) MatGrid {
	g := MatGrid{N: a.N, Data: make([]Mat3, len(a.Data))}
	for i, v := range a.Data {
		g.Data[i] = f(v)
	}
	return g
}

// Mul multiplies pixel by pixel: R[p] = A[p]·B[p].
func (A MatGrid) Mul(B MatGrid) MatGrid {
	R := MatGrid{N: A.N, Data: make([]Mat3, len(A.Data))}
	for i := range A.Data {
		R.Data[i] = A.Data[i].Mul(B.Data[i])
	}
	return R
}

// Apply multiplies every pixel's matrix with that pixel's vector.
func (A MatGrid) Apply(v VecGrid) VecGrid {
	out := VecGrid{N: A.N, Data: make([]Vec3, len(A.Data))}
	for i := range A.Data {
		out.Data[i] = A.Data[i].MulVec(v.Data[i])
	}
	return out
}
