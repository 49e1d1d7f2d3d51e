package orbitree_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/orbitree"
	"github.com/katalvlaran/clusterography/symcompare"
)

//----------------------------------------------------------------------------//
// Radius growth
//----------------------------------------------------------------------------//

// TestGenerate_SimpleCubicPairs grows points and nearest-neighbour pairs of
// a binary simple-cubic crystal.
func TestGenerate_SimpleCubicPairs(t *testing.T) {
	prim := cubicPrim(t)
	tree := generated(t, prim, 0, 0, 1.1)

	require.Equal(t, []int{1, 1, 1}, branchSizes(tree))
	assert.Equal(t, 1, tree.OrbitSize(0, 0))
	assert.Equal(t, 1, tree.OrbitSize(1, 0))
	assert.Equal(t, 6, tree.OrbitSize(2, 0))
	assert.Equal(t, 3, tree.NumOrbits())

	pair := tree.Orbit(2, 0)
	assert.InDelta(t, 1.0, pair.MaxLength(), 1e-12)
	assert.InDelta(t, 1.0, pair.MinLength(), 1e-12)
	assert.True(t, pair.EquivalenceMap[0].Op.IsIdentity(tol))
	assert.True(t, symcompare.Equal(tree.Comparer(), pair.Prototype, pair.Equivalents[0]))
	// inversion swaps the two sites, so the pair stabilizer has 16 elements
	assert.Len(t, pair.ClusterGroup, 16)
	assert.Len(t, tree.Orbit(0, 0).ClusterGroup, 48)

	for k, e := range pair.Equivalents {
		require.Equal(t, 2, e.Len())
		origin := e.Site(0).Cell(tol) == [3]int{} || e.Site(1).Cell(tol) == [3]int{}
		assert.True(t, origin, "equivalent %d does not touch the origin cell", k)
	}
}

func TestGenerate_FixedSiteExcluded(t *testing.T) {
	prim := cubicPrim(t,
		lattice.BasisSite{Frac: [3]float64{0, 0, 0}, Occupants: []string{"A", "B"}},
		lattice.BasisSite{Frac: [3]float64{0.5, 0.5, 0.5}, Occupants: []string{"C"}},
	)
	tree := orbitree.New(prim.Lattice,
		orbitree.WithMaxLength(0, 0, 1.1),
		orbitree.WithMinNumComponents(2))
	require.NoError(t, tree.Generate(prim))

	require.Equal(t, []int{1, 1, 1}, branchSizes(tree))
	tree.Each(func(b, p int, o *orbitree.Orbit) {
		for _, e := range o.Equivalents {
			for _, s := range e.Sites() {
				assert.Equal(t, 0, s.Sublattice, "orbit (%d,%d) uses the fixed site", b, p)
			}
		}
	})
}

func TestGenerate_Errors(t *testing.T) {
	prim := cubicPrim(t)

	noGroup := *prim
	noGroup.FactorGroup = nil
	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 1.1))
	assert.ErrorIs(t, tree.Generate(&noGroup), orbitree.ErrEmptyGroup)

	tree = orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 1.1))
	tree.MaxNumSites = 3
	assert.ErrorIs(t, tree.Generate(prim), orbitree.ErrBadCutoffs)

	tree = orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 0.5, 2))
	assert.ErrorIs(t, tree.Generate(prim), orbitree.ErrBranchExhausted)

	other, err := lattice.New([3]float64{2, 0, 0}, [3]float64{0, 2, 0}, [3]float64{0, 0, 2})
	require.NoError(t, err)
	tree = orbitree.New(other, orbitree.WithMaxLength(0, 0, 1.1))
	assert.ErrorIs(t, tree.Generate(prim), orbitree.ErrLatticeMismatch)

	assert.Panics(t, func() { orbitree.WithMaxLength(0, -1) })
	assert.Panics(t, func() { orbitree.WithLogger(nil) })
}

//----------------------------------------------------------------------------//
// Orbit properties
//----------------------------------------------------------------------------//

// TestGenerate_OrbitProperties checks closure, absence of duplicates,
// completeness and index stability on a tree with triplets.
func TestGenerate_OrbitProperties(t *testing.T) {
	prim := cubicPrim(t)
	tree := generated(t, prim, 0, 0, 1.5, 1.5)
	require.Equal(t, []int{1, 1, 2, 2}, branchSizes(tree))
	cmp := tree.Comparer()

	tree.Each(func(b, p int, o *orbitree.Orbit) {
		g, err := tree.Index(b, p)
		require.NoError(t, err)
		assert.Equal(t, g, o.Index())

		found, ok := tree.Find(o.Prototype)
		require.True(t, ok)
		assert.Equal(t, g, found)

		for i := range o.Equivalents {
			for j := i + 1; j < len(o.Equivalents); j++ {
				assert.False(t, symcompare.Equal(cmp, o.Equivalents[i], o.Equivalents[j]),
					"orbit %d equivalents %d and %d coincide", g, i, j)
			}
		}
		for _, e := range o.Equivalents {
			for _, op := range tree.Group() {
				img, err := e.Apply(op, prim)
				require.NoError(t, err)
				assert.True(t, o.Contains(img), "orbit %d not closed under %s", g, op.Label)
			}
		}
	})

	// every pair within the cutoff is somewhere in the tree
	for _, u := range lattice.Cells([3]int{2, 2, 2}) {
		c := sites(prim, [3]int{}, u)
		c.CalcProperties(nil)
		if c.MaxLength() >= 1.5 || c.MinLength() <= tree.MinLength {
			continue
		}
		assert.True(t, tree.Contains(c), "pair to %v missing", u)
	}

	// distinct-length prototypes come out ordered
	assert.Less(t, tree.Orbit(2, 0).MaxLength(), tree.Orbit(2, 1).MaxLength())

	b, p, err := tree.Locate(3)
	require.NoError(t, err)
	assert.Equal(t, [2]int{2, 1}, [2]int{b, p})
}

func TestUpdateIndex_Stable(t *testing.T) {
	prim := cubicPrim(t)
	tree := generated(t, prim, 0, 0, 1.5, 1.5)

	type slot struct {
		id    int
		orbit *orbitree.Orbit
	}
	snapshot := func() map[[2]int]slot {
		out := make(map[[2]int]slot, tree.NumOrbits())
		for b := 0; b < tree.Size(); b++ {
			for p := 0; p < tree.BranchSize(b); p++ {
				id, err := tree.Index(b, p)
				require.NoError(t, err)
				lb, lp, err := tree.Locate(id)
				require.NoError(t, err)
				require.Equal(t, [2]int{b, p}, [2]int{lb, lp})
				out[[2]int{b, p}] = slot{id: id, orbit: tree.Orbit(b, p)}
			}
		}
		return out
	}

	before := snapshot()
	require.Len(t, before, tree.NumOrbits())

	tree.UpdateIndex()
	assert.Equal(t, before, snapshot())

	// the generated tree is already sorted
	tree.SortBranches()
	require.False(t, tree.IndexValid())
	tree.UpdateIndex()
	assert.Equal(t, before, snapshot())
}

func TestGenerate_Hierarchy(t *testing.T) {
	prim := cubicPrim(t)
	tree := generated(t, prim, 0, 0, 1.5, 1.5)

	_, err := tree.Subclusters(0)
	require.ErrorIs(t, err, orbitree.ErrStaleIndex)
	require.NoError(t, tree.UpdateHierarchy())

	row, err := tree.Subclusters(2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, row)

	for g := 0; g < tree.NumOrbits(); g++ {
		b, p, err := tree.Locate(g)
		require.NoError(t, err)
		proto := tree.Prototype(b, p)
		row, err := tree.Subclusters(g)
		require.NoError(t, err)
		if proto.Len() < 2 {
			assert.Empty(t, row)
			continue
		}
		require.Len(t, row, (1<<proto.Len())-2)
		for mask, id := range row {
			require.GreaterOrEqual(t, id, 0)
			sb, sp, err := tree.Locate(id)
			require.NoError(t, err)
			sub := cluster.New(prim.Lattice)
			for i := 0; i < proto.Len(); i++ {
				if (mask+1)&(1<<i) != 0 {
					sub.Append(proto.Site(i))
				}
			}
			assert.Equal(t, sub.Len(), sb)
			assert.True(t, tree.Orbit(sb, sp).Contains(sub))
		}
	}

	// structural changes need an explicit rebuild
	tree.SortBranches()
	_, err = tree.Index(0, 0)
	assert.ErrorIs(t, err, orbitree.ErrStaleIndex)
}

//----------------------------------------------------------------------------//
// Targeted growth
//----------------------------------------------------------------------------//

func TestGenerateCount(t *testing.T) {
	prim := cubicPrim(t)
	tree := orbitree.New(prim.Lattice, orbitree.WithMaxNumSites(2))
	require.NoError(t, tree.GenerateCount(prim, 2))

	require.Equal(t, []int{1, 1, 2}, branchSizes(tree))
	assert.InDelta(t, 1.0, tree.Orbit(2, 0).MaxLength(), 1e-9)
	assert.InDelta(t, math.Sqrt2, tree.Orbit(2, 1).MaxLength(), 1e-9)
	assert.InDelta(t, math.Sqrt2, tree.MaxLength[2], 1e-9)

	assert.ErrorIs(t, tree.GenerateCount(prim, 0), orbitree.ErrBadCutoffs)
	small := orbitree.New(prim.Lattice, orbitree.WithMaxNumSites(1))
	assert.ErrorIs(t, small.GenerateCount(prim, 3), orbitree.ErrBadCutoffs)
}

func TestGenerateNeighbour(t *testing.T) {
	prim := cubicPrim(t)
	tree := orbitree.New(prim.Lattice, orbitree.WithMaxNumSites(3))
	require.NoError(t, tree.GenerateNeighbour(prim, []int{3, 2}))

	require.Equal(t, []int{1, 1, 3, 2}, branchSizes(tree))
	assert.InDeltaSlice(t, []float64{1, math.Sqrt2, math.Sqrt(3)}, tree.NeighbourLengths(), 1e-9)
	assert.InDelta(t, math.Sqrt2, tree.MaxLength[3], 1e-9)

	assert.ErrorIs(t, tree.GenerateNeighbour(prim, []int{3}), orbitree.ErrBadCutoffs)
	assert.ErrorIs(t, tree.GenerateNeighbour(prim, []int{2, 3}), orbitree.ErrBadCutoffs)
}

//----------------------------------------------------------------------------//
// Local, in-cell and explicit prototypes
//----------------------------------------------------------------------------//

func TestGenerateLocal(t *testing.T) {
	prim := cubicPrim(t)
	phenom := sites(prim, [3]int{0, 0, 0}, [3]int{1, 0, 0})

	group, err := orbitree.PhenomenalGroup(prim, phenom)
	require.NoError(t, err)
	assert.Len(t, group, 16)

	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 1.5, 1.5))
	require.NoError(t, tree.GenerateLocal(prim, phenom, false))
	assert.Equal(t, cluster.Local, tree.Mode())

	require.Equal(t, 1, tree.BranchSize(1))
	assert.Equal(t, 8, tree.OrbitSize(1, 0))
	require.Positive(t, tree.BranchSize(2))

	tree.Each(func(b, p int, o *orbitree.Orbit) {
		for _, e := range o.Equivalents {
			for _, s := range e.Sites() {
				assert.Negative(t, phenom.IndexOf(s.Frac, tol), "orbit (%d,%d) holds a phenomenal site", b, p)
			}
			if b >= 2 {
				e.CalcProperties(phenom)
				assert.Less(t, e.MaxLength(), 1.5)
			}
		}
	})
}

func TestGenerateLocal_StopsEarly(t *testing.T) {
	prim := cubicPrim(t)
	phenom := sites(prim, [3]int{0, 0, 0})
	// every candidate is 1 away from the phenomenal site but pairs need < 0.5
	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 1.1, 0.5, 0.5))
	require.NoError(t, tree.GenerateLocal(prim, phenom, false))
	assert.Equal(t, []int{1, 1, 0, 0}, branchSizes(tree))
}

func TestGenerateInCell(t *testing.T) {
	prim := cubicPrim(t)
	scel, err := lattice.NewSupercell(prim.Lattice, [3][3]int{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	require.NoError(t, err)

	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 1.1))
	require.NoError(t, tree.GenerateInCell(prim, scel))
	require.Equal(t, []int{1, 1, 1}, branchSizes(tree))
	assert.Equal(t, 8, tree.OrbitSize(1, 0))
	assert.Equal(t, 12, tree.OrbitSize(2, 0))
}

func TestGenerateInCell_FindsEveryEquivalent(t *testing.T) {
	prim := cubicPrim(t)
	scel, err := lattice.NewSupercell(prim.Lattice, [3][3]int{{3, 0, 0}, {0, 3, 0}, {0, 0, 3}})
	require.NoError(t, err)

	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 1.5, 1.5))
	require.NoError(t, tree.GenerateInCell(prim, scel))
	require.Equal(t, 27, tree.OrbitSize(1, 0))

	// folding into the supercell changes pair distances between equivalents
	for b := 0; b < tree.Size(); b++ {
		for p := 0; p < tree.BranchSize(b); p++ {
			want, err := tree.Index(b, p)
			require.NoError(t, err)
			o := tree.Orbit(b, p)
			for k, e := range o.Equivalents {
				assert.True(t, o.Contains(e), "orbit (%d,%d) equivalent %d", b, p, k)
				got, ok := tree.Find(e)
				require.True(t, ok, "orbit (%d,%d) equivalent %d", b, p, k)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestGenerateFromPrototypes(t *testing.T) {
	prim := cubicPrim(t)
	cmp := symcompare.NewPrimPeriodic(tol)
	pair := sites(prim, [3]int{0, 0, 0}, [3]int{1, 0, 0})
	point := sites(prim, [3]int{0, 0, 0})

	tree := orbitree.New(prim.Lattice)
	require.NoError(t, tree.GenerateFromPrototypes(prim, []orbitree.Prototype{
		{Cluster: pair, Multiplicity: 6},
		{Cluster: point, Multiplicity: 1},
	}, prim.FactorGroup, cmp))
	assert.Equal(t, []int{0, 1, 1}, branchSizes(tree))

	err := tree.GenerateFromPrototypes(prim, []orbitree.Prototype{{Cluster: pair, Multiplicity: 5}}, prim.FactorGroup, cmp)
	assert.ErrorIs(t, err, orbitree.ErrEquivalentMismatch)
}

func TestAddCustomOrbits(t *testing.T) {
	prim := cubicPrim(t)
	tri := sites(prim, [3]int{0, 0, 0}, [3]int{1, 0, 0}, [3]int{0, 1, 0})

	tree := orbitree.New(prim.Lattice)
	require.NoError(t, tree.AddCustomOrbits(prim, []orbitree.CustomOrbit{{Cluster: tri, IncludeSubclusters: true}}))
	assert.Equal(t, []int{1, 1, 2, 1}, branchSizes(tree))
	assert.Equal(t, 3, tree.MaxNumSites)

	row, err := tree.Subclusters(tree.NumOrbits() - 1)
	require.NoError(t, err)
	require.Len(t, row, 6)
	for _, id := range row {
		assert.GreaterOrEqual(t, id, 0)
	}

	// adding it again changes nothing
	require.NoError(t, tree.AddCustomOrbits(prim, []orbitree.CustomOrbit{{Cluster: tri}}))
	assert.Equal(t, []int{1, 1, 2, 1}, branchSizes(tree))

	assert.ErrorIs(t, orbitree.New(prim.Lattice).AddSubclusters(tri), orbitree.ErrUngenerated)
}
