// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Lattice is a set of three lattice vectors stored as matrix columns.
type Lattice struct {
	vecs [3][3]float64
	m    *mat.Dense
	inv  *mat.Dense
}

// New builds a lattice from its vectors a, b, c in Cartesian coordinates.
// Returns ErrSingular if the vectors do not span 3D space.
func New(a, b, c [3]float64) (*Lattice, error) {
	return FromRows([3][3]float64{a, b, c})
}

// FromRows builds a lattice whose vectors are the rows of v.
func FromRows(v [3][3]float64) (*Lattice, error) {
	m := mat.NewDense(3, 3, nil)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			m.Set(i, j, v[j][i])
		}
	}
	if math.Abs(mat.Det(m)) < 1e-12 {
		return nil, ErrSingular
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(m); err != nil {
		return nil, fmt.Errorf("lattice: %v: %w", err, ErrSingular)
	}

	return &Lattice{vecs: v, m: m, inv: inv}, nil
}

// Vectors returns the lattice vectors as rows.
func (l *Lattice) Vectors() [3][3]float64 { return l.vecs }

// Volume returns the absolute cell volume.
func (l *Lattice) Volume() float64 { return math.Abs(mat.Det(l.m)) }

// FracToCart converts fractional coordinates to Cartesian.
func (l *Lattice) FracToCart(f [3]float64) [3]float64 {
	return mulVec(l.m, f)
}

// CartToFrac converts Cartesian coordinates to fractional.
func (l *Lattice) CartToFrac(c [3]float64) [3]float64 {
	return mulVec(l.inv, c)
}

// Dist returns the Cartesian distance between two fractional coordinates.
func (l *Lattice) Dist(f1, f2 [3]float64) float64 {
	d := l.FracToCart([3]float64{f1[0] - f2[0], f1[1] - f2[1], f1[2] - f2[2]})
	return floats.Norm(d[:], 2)
}

// Lengths returns |a|, |b|, |c|.
func (l *Lattice) Lengths() [3]float64 {
	var out [3]float64
	for i, v := range l.vecs {
		out[i] = floats.Norm(v[:], 2)
	}

	return out
}

// MinLength returns the shortest lattice vector length among a, b, c.
func (l *Lattice) MinLength() float64 {
	ls := l.Lengths()
	return floats.Min(ls[:])
}

// EncloseSphere returns, per lattice direction, the number of cells needed
// in each sign so that every point within radius r of the origin cell is
// covered: ceil(r·|row_i(L⁻¹)|).
// Complexity: O(1).
func (l *Lattice) EncloseSphere(r float64) [3]int {
	var dims [3]int
	for i := 0; i < 3; i++ {
		row := mat.Row(nil, i, l.inv)
		dims[i] = int(math.Ceil(r * floats.Norm(row, 2)))
	}

	return dims
}

// Equal reports whether both lattices have the same vectors within tol.
func (l *Lattice) Equal(o *Lattice, tol float64) bool {
	return mat.EqualApprox(l.m, o.m, tol)
}

// Metric returns the metric tensor LᵀL.
func (l *Lattice) Metric() *mat.Dense {
	g := mat.NewDense(3, 3, nil)
	g.Mul(l.m.T(), l.m)

	return g
}

func mulVec(m *mat.Dense, f [3]float64) [3]float64 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{f[0], f[1], f[2]}))

	return [3]float64{out.AtVec(0), out.AtVec(1), out.AtVec(2)}
}

// Cell returns the unit cell holding fractional coordinate f: floor(f+tol).
func Cell(f [3]float64, tol float64) [3]int {
	return [3]int{
		int(math.Floor(f[0] + tol)),
		int(math.Floor(f[1] + tol)),
		int(math.Floor(f[2] + tol)),
	}
}

// Wrap maps f into the origin cell, consistent with Cell.
func Wrap(f [3]float64, tol float64) [3]float64 {
	c := Cell(f, tol)
	return [3]float64{f[0] - float64(c[0]), f[1] - float64(c[1]), f[2] - float64(c[2])}
}

// Cells enumerates every cell in the box [-dims, dims], outer index first.
// Complexity: O(∏(2·dims+1)).
func Cells(dims [3]int) [][3]int {
	out := make([][3]int, 0, (2*dims[0]+1)*(2*dims[1]+1)*(2*dims[2]+1))
	for i := -dims[0]; i <= dims[0]; i++ {
		for j := -dims[1]; j <= dims[1]; j++ {
			for k := -dims[2]; k <= dims[2]; k++ {
				out = append(out, [3]int{i, j, k})
			}
		}
	}

	return out
}
