// SPDX-License-Identifier: MIT

package symmetry

// Group is a finite list of operations. Element order is significant:
// orbits record generating operations by their index in the group.
type Group []Op

// IdentityIndex returns the index of the identity element or -1.
// Complexity: O(|G|).
func (g Group) IdentityIndex(tol float64) int {
	for i, op := range g {
		if op.IsIdentity(tol) {
			return i
		}
	}

	return -1
}

// Validate checks that g is nonempty and contains the identity.
func (g Group) Validate(tol float64) error {
	if len(g) == 0 {
		return ErrEmptyGroup
	}
	if g.IdentityIndex(tol) < 0 {
		return ErrNoIdentity
	}

	return nil
}

// IdentityFirst returns a copy of g with the identity moved to the front,
// keeping the relative order of the remaining elements.
func (g Group) IdentityFirst(tol float64) Group {
	id := g.IdentityIndex(tol)
	out := make(Group, 0, len(g))
	if id >= 0 {
		out = append(out, g[id])
	}
	for i, op := range g {
		if i != id {
			out = append(out, op)
		}
	}

	return out
}
