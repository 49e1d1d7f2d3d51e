// Package: clusterography/symcompare
//
// compare.go - the body shared by every Comparer.
//
// Contract:
//   - Prepare never modifies its input; hooks act on a copy.
//   - Prepared.Perm and Prepared.Translation always describe the copy in
//     terms of the input, so callers can rebuild SymElements from them.
//   - Compare is a total order on prepared clusters of one comparer.

package symcompare

import (
	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Comparer is one periodicity convention. Both hooks modify c in place.
type Comparer interface {
	// Name identifies the convention in records and logs.
	Name() string
	Tol() float64
	// SpatialPrepare applies the translation convention and returns the
	// lattice translation it applied.
	SpatialPrepare(c *cluster.Cluster) [3]int
	// RepresentationPrepare orders the sites canonically and returns the
	// permutation it applied (new[i] = old[p[i]]).
	RepresentationPrepare(c *cluster.Cluster) symmetry.Permutation
}

// FoldsSites reports whether cmp moves sites independently of each other
// while preparing. Pair distances, and so Invariants, then differ between
// clusters that cmp considers equal.
func FoldsSites(cmp Comparer) bool {
	f, ok := cmp.(interface{ FoldsSites() bool })

	return ok && f.FoldsSites()
}

// Prepared is a canonical copy of a cluster plus how it was obtained from
// the input: prepared[i] = translate(input[Perm[i]], Translation).
type Prepared struct {
	Cluster     *cluster.Cluster
	Translation [3]int
	Perm        symmetry.Permutation
}

// Prepare returns RepresentationPrepare(SpatialPrepare(c)) on a copy of c.
func Prepare(cmp Comparer, c *cluster.Cluster) Prepared {
	out := c.Clone()
	t := cmp.SpatialPrepare(out)
	p := cmp.RepresentationPrepare(out)

	return Prepared{Cluster: out, Translation: t, Perm: p}
}

// Anchored prepares c after moving site k to position 0, so that periodic
// conventions anchor on that site. Perm refers to the original order of c.
func Anchored(cmp Comparer, c *cluster.Cluster, k int) Prepared {
	n := c.Len()
	rot := make(symmetry.Permutation, 0, n)
	rot = append(rot, k)
	for i := 0; i < n; i++ {
		if i != k {
			rot = append(rot, i)
		}
	}
	tmp := c.Clone()
	tmp.Reorder(rot)
	pr := Prepare(cmp, tmp)
	// pr.Perm indexes tmp; tmp[j] = c[rot[j]], both of length n.
	perm := make(symmetry.Permutation, n)
	for i, j := range pr.Perm {
		perm[i] = rot[j]
	}
	pr.Perm = perm

	return pr
}

// Forms returns the distinct prepared forms of c over every anchor site.
// Two clusters describe the same site set iff their Forms intersect.
// Complexity: O(n²·log n) per form.
func Forms(cmp Comparer, c *cluster.Cluster) []Prepared {
	if c.Len() == 0 {
		return []Prepared{Prepare(cmp, c)}
	}
	out := make([]Prepared, 0, c.Len())
	for k := 0; k < c.Len(); k++ {
		f := Anchored(cmp, c, k)
		dup := false
		for _, g := range out {
			if Equal(cmp, f.Cluster, g.Cluster) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, f)
		}
	}

	return out
}

// Canonical returns the form of c that Prepare leaves unchanged, so that
// Prepare(Canonical(c).Cluster) equals it. For periodic conventions this
// anchors the cluster on the site that sorts first.
func Canonical(cmp Comparer, c *cluster.Cluster) Prepared {
	forms := Forms(cmp, c)
	for _, f := range forms {
		// a fixed point: preparing again anchors on the same site
		if Equal(cmp, Prepare(cmp, f.Cluster).Cluster, f.Cluster) {
			return f
		}
	}

	// no fixed point within tolerance; any form identifies the site set
	return forms[0]
}

// CanonicalTransform returns the permutation that Prepare applies to c.
func CanonicalTransform(cmp Comparer, c *cluster.Cluster) symmetry.Permutation {
	return Prepare(cmp, c).Perm
}

// Compare orders two prepared clusters: -1, 0 or 1.
func Compare(cmp Comparer, a, b *cluster.Cluster) int {
	tol := cmp.Tol()
	// invariants first: cheap, and they decide most pairs
	if r := cluster.CompareInvariants(a.Invariants(), b.Invariants(), tol); r != 0 {
		return r
	}
	for i := 0; i < a.Len() && i < b.Len(); i++ {
		if r := cluster.CompareSites(a.Site(i), b.Site(i), tol); r != 0 {
			return r
		}
	}

	return compareHop(a.Hop(), b.Hop())
}

// Less reports whether prepared a sorts before prepared b.
func Less(cmp Comparer, a, b *cluster.Cluster) bool { return Compare(cmp, a, b) < 0 }

// Equal reports !Less(a, b) && !Less(b, a).
func Equal(cmp Comparer, a, b *cluster.Cluster) bool { return Compare(cmp, a, b) == 0 }

func compareHop(a, b symmetry.Permutation) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}

	return len(a) - len(b)
}
