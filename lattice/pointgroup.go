// SPDX-License-Identifier: MIT

package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/clusterography/symmetry"
)

// PointGroup returns the lattice point group: every integer fractional
// rotation with entries in {-1, 0, 1} that preserves the metric tensor.
// The entry bound covers reduced cells, which is what the generators are fed.
// The identity is placed first.
// Complexity: O(3⁹) metric checks.
func (l *Lattice) PointGroup(tol float64) symmetry.Group {
	g := l.Metric()
	ls := l.Lengths()
	scale := floats.Max(ls[:])
	scale *= scale

	var (
		group symmetry.Group
		vals  [9]int
	)
	r := mat.NewDense(3, 3, nil)
	var tmp, out mat.Dense
	for code := 0; code < 19683; code++ {
		c := code
		for i := range vals {
			vals[i] = c%3 - 1
			c /= 3
		}
		for i := 0; i < 9; i++ {
			r.Set(i/3, i%3, float64(vals[i]))
		}
		det := mat.Det(r)
		if det < 0.5 && det > -0.5 {
			continue
		}
		tmp.Mul(r.T(), g)
		out.Mul(&tmp, r)
		if !mat.EqualApprox(&out, g, tol*scale) {
			continue
		}
		var rot [3][3]int
		for i := 0; i < 9; i++ {
			rot[i/3][i%3] = vals[i]
		}
		group = append(group, symmetry.NewOp(rot, [3]float64{}, fmt.Sprintf("R%d", len(group))))
	}
	group = group.IdentityFirst(tol)
	group[0].Label = "E"

	return group
}
