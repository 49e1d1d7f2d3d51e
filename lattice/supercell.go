// SPDX-License-Identifier: MIT

package lattice

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Supercell is a superlattice S = P·T of a primitive lattice P with an
// integer transformation matrix T (columns are supercell vectors in
// primitive fractional coordinates).
type Supercell struct {
	Prim *Lattice
	T    [3][3]int

	lat  *Lattice
	tinv *mat.Dense
}

// NewSupercell returns ErrSingular when det(T) = 0.
func NewSupercell(prim *Lattice, T [3][3]int) (*Supercell, error) {
	t := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Set(i, j, float64(T[i][j]))
		}
	}
	if math.Abs(mat.Det(t)) < 0.5 {
		return nil, ErrSingular
	}
	tinv := mat.NewDense(3, 3, nil)
	if err := tinv.Inverse(t); err != nil {
		return nil, ErrSingular
	}
	var rows [3][3]float64
	for j := 0; j < 3; j++ {
		col := [3]float64{float64(T[0][j]), float64(T[1][j]), float64(T[2][j])}
		rows[j] = prim.FracToCart(col)
	}
	lat, err := FromRows(rows)
	if err != nil {
		return nil, err
	}

	return &Supercell{Prim: prim, T: T, lat: lat, tinv: tinv}, nil
}

// Lattice returns the superlattice.
func (s *Supercell) Lattice() *Lattice { return s.lat }

// Volume returns the number of primitive cells in the supercell.
func (s *Supercell) Volume() int {
	t := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Set(i, j, float64(s.T[i][j]))
		}
	}

	return int(math.Round(math.Abs(mat.Det(t))))
}

// BringWithin maps a primitive cell onto its image inside the supercell:
// u - T·floor(T⁻¹u).
func (s *Supercell) BringWithin(u [3]int) [3]int {
	x := mulVec(s.tinv, [3]float64{float64(u[0]), float64(u[1]), float64(u[2])})
	var n [3]int
	for i := range x {
		n[i] = int(math.Floor(x[i] + 1e-8))
	}
	out := u
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i] -= s.T[i][j] * n[j]
		}
	}

	return out
}

// BringWithinFrac shifts a site coordinate by the lattice translation that
// brings its cell inside the supercell.
func (s *Supercell) BringWithinFrac(f [3]float64, tol float64) [3]float64 {
	c := Cell(f, tol)
	w := s.BringWithin(c)
	for i := 0; i < 3; i++ {
		f[i] += float64(w[i] - c[i])
	}

	return f
}

// PrimCells lists every primitive cell inside the supercell, in Cells order.
// Complexity: O(bounding box volume).
func (s *Supercell) PrimCells() [][3]int {
	var lo, hi [3]int
	for mask := 0; mask < 8; mask++ {
		var corner [3]int
		for j := 0; j < 3; j++ {
			if mask&(1<<j) == 0 {
				continue
			}
			for i := 0; i < 3; i++ {
				corner[i] += s.T[i][j]
			}
		}
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], corner[i])
			hi[i] = max(hi[i], corner[i])
		}
	}
	out := make([][3]int, 0, s.Volume())
	for i := lo[0]; i <= hi[0]; i++ {
		for j := lo[1]; j <= hi[1]; j++ {
			for k := lo[2]; k <= hi[2]; k++ {
				u := [3]int{i, j, k}
				if s.BringWithin(u) == u {
					out = append(out, u)
				}
			}
		}
	}

	return out
}
