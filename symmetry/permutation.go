// SPDX-License-Identifier: MIT

package symmetry

// Permutation reorders a sequence: out[i] = in[p[i]].
type Permutation []int

// IdentityPermutation returns [0, 1, ..., n-1].
func IdentityPermutation(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = i
	}

	return p
}

// Inverse returns q with q[p[i]] = i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = i
	}

	return q
}

// Then returns the permutation equivalent to reordering by p and then by q:
// r[i] = p[q[i]].
func (p Permutation) Then(q Permutation) (Permutation, error) {
	if len(p) != len(q) {
		return nil, ErrPermutationSize
	}
	r := make(Permutation, len(p))
	for i := range q {
		r[i] = p[q[i]]
	}

	return r, nil
}

// IsIdentity reports whether p maps every index onto itself.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if i != v {
			return false
		}
	}

	return true
}

// IsDerangement reports whether no index is fixed by p.
func (p Permutation) IsDerangement() bool {
	for i, v := range p {
		if i == v {
			return false
		}
	}

	return true
}

// Clone returns an independent copy.
func (p Permutation) Clone() Permutation {
	if p == nil {
		return nil
	}
	out := make(Permutation, len(p))
	copy(out, p)

	return out
}

// NextPermutation rearranges p into the lexicographically next permutation
// and reports false (leaving p sorted ascending) once p was the last one.
// Complexity: O(n).
func NextPermutation(p []int) bool {
	n := len(p)
	i := n - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		reverse(p)
		return false
	}
	j := n - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	reverse(p[i+1:])

	return true
}

func reverse(p []int) {
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}
