package bset

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// SiteFunctions tabulates the single-site functions of a site with m allowed
// occupants: out[k][s] is function k on occupant s, and out[0] is the
// constant 1.
//
// Occupation functions are indicators, out[k][s] = 1 iff s == k.
// Chebychev functions are the polynomials in the spin σ(s) = -1 + 2s/(m-1),
// made orthonormal under the uniform average over occupants:
//
//	(1/m)·Σ_s out[k][s]·out[l][s] = δ(k,l)
//
// so a binary Chebychev site has out[1] = σ = (-1, +1).
// Complexity: O(m³).
func SiteFunctions(m int, basis string) ([][]float64, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: site with %d occupants", ErrBadArgs, m)
	}
	switch basis {
	case SiteBasisOccupation:
		return occupationFunctions(m), nil
	case SiteBasisChebychev:
		return chebychevFunctions(m), nil
	}

	return nil, fmt.Errorf("%w: site_basis_functions %q", ErrBadArgs, basis)
}

func occupationFunctions(m int) [][]float64 {
	out := make([][]float64, m)
	out[0] = ones(m)
	for k := 1; k < m; k++ {
		out[k] = make([]float64, m)
		out[k][k] = 1
	}

	return out
}

// chebychevFunctions runs Gram-Schmidt over 1, σ, σ², ... with the
// inner product (1/m)·Σ_s f(s)·g(s).
func chebychevFunctions(m int) [][]float64 {
	spin := make([]float64, m)
	for s := range spin {
		if m > 1 {
			spin[s] = -1 + 2*float64(s)/float64(m-1)
		}
	}
	inner := func(f, g []float64) float64 { return floats.Dot(f, g) / float64(m) }

	out := make([][]float64, m)
	out[0] = ones(m)
	power := ones(m)
	for k := 1; k < m; k++ {
		floats.Mul(power, spin)
		v := make([]float64, m)
		copy(v, power)
		for l := 0; l < k; l++ {
			// remove the component along every lower function
			floats.AddScaled(v, -inner(v, out[l]), out[l])
		}
		floats.Scale(1/math.Sqrt(inner(v, v)), v)
		// fix the sign so that the last occupant is positive
		if v[m-1] < 0 {
			floats.Scale(-1, v)
		}
		out[k] = v
	}

	return out
}

func ones(m int) []float64 {
	v := make([]float64, m)
	for i := range v {
		v[i] = 1
	}

	return v
}
