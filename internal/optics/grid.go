package optics

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid is a square N×N scalar field, row-major: row = y, column = x.
type Grid struct {
	N    int
	Data []float64
}

// NewGrid allocates a zero grid.
func NewGrid(n int) Grid {
	return Grid{N: n, Data: make([]float64, n*n)}
}

// NaNGrid allocates a grid filled with NaN.
func NaNGrid(n int) Grid {
	g := NewGrid(n)
	for i := range g.Data {
		g.Data[i] = math.NaN()
	}
	return g
}

func (g Grid) At(r, c int) float64     { return g.Data[r*g.N+c] }
func (g Grid) Set(r, c int, v float64) { g.Data[r*g.N+c] = v }

// Map returns a new grid with f applied to every pixel.
func (g Grid) Map(f func(float64) float64) Grid {
	out := NewGrid(g.N)
	for i, v := range g.Data {
		out.Data[i] = f(v)
	}
	return out
}

// Map2 combines two grids of equal size pixel by pixel.
func Map2(a, b Grid, f func(x, y float64) float64) Grid {
	out := NewGrid(a.N)
	for i := range a.Data {
		out.Data[i] = f(a.Data[i], b.Data[i])
	}
	return out
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	out := NewGrid(g.N)
	copy(out.Data, g.Data)
	return out
}

// NaNMax returns the largest non-NaN value, or NaN when every pixel is NaN.
func (g Grid) NaNMax() float64 {
	m := math.NaN()
	for _, v := range g.Data {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}
	return m
}

// Center is the index of the zero coordinate on an n-point axis.
func Center(n int) int { return n / 2 }

// Axis returns the centered integer coordinates i - n/2 for i = 0..n-1.
func Axis(n int) []float64 {
	if n == 1 {
		return []float64{0}
	}
	c := Center(n)
	return floats.Span(make([]float64, n), float64(-c), float64(n-1-c))
}

// Coords returns the centered pixel coordinates of an n×n grid:
// x (column), y (row) and the radial distance r.
func Coords(n int) (x, y, r Grid) {
	ax := Axis(n)
	x, y, r = NewGrid(n), NewGrid(n), NewGrid(n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			x.Set(row, col, ax[col])
			y.Set(row, col, ax[row])
			r.Set(row, col, math.Hypot(ax[col], ax[row]))
		}
	}
	return x, y, r
}
