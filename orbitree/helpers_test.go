package orbitree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/orbitree"
)

const tol = 1e-5

// cubicPrim returns a unit simple-cubic structure with the full Oh factor group.
func cubicPrim(t *testing.T, basis ...lattice.BasisSite) *lattice.Structure {
	t.Helper()
	l, err := lattice.New([3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	require.NoError(t, err)
	if len(basis) == 0 {
		basis = []lattice.BasisSite{{Occupants: []string{"A", "B"}}}
	}
	s, err := lattice.NewStructure(l, basis, nil, tol)
	require.NoError(t, err)
	s.FactorGroup = s.DeriveFactorGroup(l.PointGroup(tol))
	require.Len(t, s.FactorGroup, 48)

	return s
}

func sites(prim *lattice.Structure, cells ...[3]int) *cluster.Cluster {
	c := cluster.New(prim.Lattice)
	for _, u := range cells {
		c.Append(cluster.StructureSite(prim, 0, u))
	}

	return c
}

// generated returns a periodic tree of prim with the given cutoffs.
func generated(t *testing.T, prim *lattice.Structure, lengths ...float64) *orbitree.Tree {
	t.Helper()
	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(lengths...))
	require.NoError(t, tree.Generate(prim))

	return tree
}

func branchSizes(tree *orbitree.Tree) []int {
	out := make([]int, tree.Size())
	for b := range out {
		out[b] = tree.BranchSize(b)
	}

	return out
}
