// SPDX-License-Identifier: MIT

package symmetry

import (
	"fmt"
	"math"
)

// DefaultTol is the coordinate tolerance used when none is configured.
const DefaultTol = 1e-5

// Op is a space-group operation in fractional coordinates: x -> Rot·x + Trans.
type Op struct {
	Rot   [3][3]float64
	Trans [3]float64

	// Label is a free-form name carried into reports ("E", "C4z", ...).
	Label string
}

// Identity returns the identity operation.
func Identity() Op {
	return Op{
		Rot:   [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Label: "E",
	}
}

// NewOp builds an operation from an integer rotation and a translation.
func NewOp(rot [3][3]int, trans [3]float64, label string) Op {
	var op Op
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			op.Rot[i][j] = float64(rot[i][j])
		}
	}
	op.Trans = trans
	op.Label = label

	return op
}

// Apply maps the fractional coordinate f.
// Complexity: O(1).
func (op Op) Apply(f [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = op.Rot[i][0]*f[0] + op.Rot[i][1]*f[1] + op.Rot[i][2]*f[2] + op.Trans[i]
	}

	return out
}

// Compose returns op∘o, the operation that applies o first and op second.
func (op Op) Compose(o Op) Op {
	var out Op
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Rot[i][j] = op.Rot[i][0]*o.Rot[0][j] + op.Rot[i][1]*o.Rot[1][j] + op.Rot[i][2]*o.Rot[2][j]
		}
		out.Trans[i] = op.Rot[i][0]*o.Trans[0] + op.Rot[i][1]*o.Trans[1] + op.Rot[i][2]*o.Trans[2] + op.Trans[i]
	}
	out.Label = op.Label
	if o.Label != "" && o.Label != "E" {
		out.Label = fmt.Sprintf("%s*%s", op.Label, o.Label)
	}

	return out
}

// Translate returns op followed by a lattice translation t.
func (op Op) Translate(t [3]int) Op {
	out := op
	for i := 0; i < 3; i++ {
		out.Trans[i] += float64(t[i])
	}

	return out
}

// Equal reports whether op and o agree elementwise within tol.
func (op Op) Equal(o Op, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(op.Rot[i][j]-o.Rot[i][j]) > tol {
				return false
			}
		}
		if math.Abs(op.Trans[i]-o.Trans[i]) > tol {
			return false
		}
	}

	return true
}

// IsIdentity reports whether op is the identity, with zero translation.
func (op Op) IsIdentity(tol float64) bool {
	return op.Equal(Identity(), tol)
}

// Det returns the determinant of the rotation part.
func (op Op) Det() float64 {
	r := op.Rot
	return r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
}

func (op Op) String() string {
	return fmt.Sprintf("%s %v + %v", op.Label, op.Rot, op.Trans)
}
