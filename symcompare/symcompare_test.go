package symcompare_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

const tol = 1e-5

func simpleCubic(t *testing.T) *lattice.Structure {
	t.Helper()
	l, err := lattice.New([3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	require.NoError(t, err)
	s, err := lattice.NewStructure(l, []lattice.BasisSite{{Occupants: []string{"A", "B"}}}, nil, tol)
	require.NoError(t, err)

	return s
}

func pair(prim *lattice.Structure, a, b [3]int) *cluster.Cluster {
	return cluster.FromSites(prim.Lattice,
		cluster.StructureSite(prim, 0, a),
		cluster.StructureSite(prim, 0, b))
}

//----------------------------------------------------------------------------//
// Preparation
//----------------------------------------------------------------------------//

func TestPrepare_Variants(t *testing.T) {
	prim := simpleCubic(t)
	c := pair(prim, [3]int{3, 1, 0}, [3]int{2, 1, 0})

	ap := symcompare.Prepare(symcompare.NewAperiodic(tol), c)
	assert.Equal(t, [3]int{}, ap.Translation)
	assert.Equal(t, symmetry.Permutation{1, 0}, ap.Perm)
	assert.Equal(t, [3]float64{2, 1, 0}, ap.Cluster.Site(0).Frac)

	pp := symcompare.Prepare(symcompare.NewPrimPeriodic(tol), c)
	assert.Equal(t, [3]int{-3, -1, 0}, pp.Translation)
	assert.Equal(t, [3]float64{-1, 0, 0}, pp.Cluster.Site(0).Frac)
	assert.Equal(t, [3]float64{0, 0, 0}, pp.Cluster.Site(1).Frac)
	assert.Equal(t, symmetry.Permutation{1, 0}, symcompare.CanonicalTransform(symcompare.NewPrimPeriodic(tol), c))

	// input untouched
	assert.Equal(t, [3]float64{3, 1, 0}, c.Site(0).Frac)

	scel, err := lattice.NewSupercell(prim.Lattice, [3][3]int{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	require.NoError(t, err)

	sp := symcompare.Prepare(symcompare.NewScelPeriodic(scel, tol), c)
	assert.Equal(t, [3]int{-2, 0, 0}, sp.Translation)
	assert.Equal(t, [3]float64{0, 1, 0}, sp.Cluster.Site(0).Frac)
	assert.Equal(t, [3]float64{1, 1, 0}, sp.Cluster.Site(1).Frac)

	ws := symcompare.Prepare(symcompare.NewWithinScel(scel, tol), c)
	assert.Equal(t, [3]float64{0, 1, 0}, ws.Cluster.Site(0).Frac)
	assert.Equal(t, [3]float64{1, 1, 0}, ws.Cluster.Site(1).Frac)
}

func TestForms_AnchorIndependence(t *testing.T) {
	prim := simpleCubic(t)
	cmp := symcompare.NewPrimPeriodic(tol)
	a := symcompare.Prepare(cmp, pair(prim, [3]int{0, 0, 0}, [3]int{1, 0, 0})).Cluster
	b := symcompare.Prepare(cmp, pair(prim, [3]int{0, 0, 0}, [3]int{-1, 0, 0})).Cluster

	// same site set up to translation, different anchor
	require.False(t, symcompare.Equal(cmp, a, b))

	forms := symcompare.Forms(cmp, b)
	require.Len(t, forms, 2)
	found := false
	for _, f := range forms {
		if symcompare.Equal(cmp, f.Cluster, a) {
			found = true
			// prepared[0] is b[1] moved by +x
			assert.Equal(t, symmetry.Permutation{1, 0}, f.Perm)
			assert.Equal(t, [3]int{1, 0, 0}, f.Translation)
		}
	}
	assert.True(t, found)

	empty := cluster.New(prim.Lattice)
	assert.Len(t, symcompare.Forms(cmp, empty), 1)
}

func TestForms_WithinScelFoldsSites(t *testing.T) {
	prim := simpleCubic(t)
	scel, err := lattice.NewSupercell(prim.Lattice, [3][3]int{{3, 0, 0}, {0, 3, 0}, {0, 0, 3}})
	require.NoError(t, err)
	cmp := symcompare.NewWithinScel(scel, tol)
	require.True(t, symcompare.FoldsSites(cmp))
	require.False(t, symcompare.FoldsSites(symcompare.NewPrimPeriodic(tol)))

	// (2,0,0)-(3,0,0) folds onto (0,0,0)-(2,0,0): same site set, other distance
	a := pair(prim, [3]int{0, 0, 0}, [3]int{2, 0, 0})
	b := pair(prim, [3]int{2, 0, 0}, [3]int{3, 0, 0})
	assert.NotEqual(t, a.Invariants(), b.Invariants())

	pa := symcompare.Prepare(cmp, a)
	pb := symcompare.Prepare(cmp, b)
	assert.True(t, symcompare.Equal(cmp, pa.Cluster, pb.Cluster))
	assert.Equal(t, symmetry.Permutation{1, 0}, pb.Perm)
}

//----------------------------------------------------------------------------//
// Ordering
//----------------------------------------------------------------------------//

func TestCompare_TotalOrder(t *testing.T) {
	prim := simpleCubic(t)
	cmp := symcompare.NewPrimPeriodic(tol)
	prep := func(c *cluster.Cluster) *cluster.Cluster { return symcompare.Prepare(cmp, c).Cluster }

	point := prep(cluster.FromSites(prim.Lattice, cluster.StructureSite(prim, 0, [3]int{})))
	nn := prep(pair(prim, [3]int{0, 0, 0}, [3]int{1, 0, 0}))
	nnY := prep(pair(prim, [3]int{0, 0, 0}, [3]int{0, 1, 0}))
	nnn := prep(pair(prim, [3]int{0, 0, 0}, [3]int{1, 1, 0}))

	// fewer sites first, then shorter
	assert.True(t, symcompare.Less(cmp, point, nn))
	assert.True(t, symcompare.Less(cmp, nn, nnn))
	assert.False(t, symcompare.Less(cmp, nnn, nn))

	// same invariants, tie broken by coordinates
	assert.True(t, symcompare.Less(cmp, nnY, nn))
	assert.False(t, symcompare.Equal(cmp, nnY, nn))
	assert.True(t, symcompare.Equal(cmp, nn, nn.Clone()))

	// decoration and hop break ties last
	d0, err := nn.Decorate([]int{0, 1})
	require.NoError(t, err)
	d1, err := nn.Decorate([]int{1, 0})
	require.NoError(t, err)
	assert.True(t, symcompare.Less(cmp, d0, d1))

	h := d0.Clone()
	require.NoError(t, h.SetHop(symmetry.Permutation{1, 0}))
	assert.True(t, symcompare.Less(cmp, d0, h))
}

func TestCanonical_FixedPoint(t *testing.T) {
	prim := simpleCubic(t)
	cmp := symcompare.NewPrimPeriodic(tol)
	c := pair(prim, [3]int{2, 0, 0}, [3]int{1, 0, 0})

	can := symcompare.Canonical(cmp, c)
	assert.Equal(t, [3]float64{0, 0, 0}, can.Cluster.Site(0).Frac)
	assert.Equal(t, [3]float64{1, 0, 0}, can.Cluster.Site(1).Frac)
	assert.Equal(t, symmetry.Permutation{1, 0}, can.Perm)
	assert.Equal(t, [3]int{-1, 0, 0}, can.Translation)

	again := symcompare.Prepare(cmp, can.Cluster)
	assert.True(t, symcompare.Equal(cmp, again.Cluster, can.Cluster))
	assert.True(t, again.Perm.IsIdentity())
}
