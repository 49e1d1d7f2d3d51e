package bset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/clusterography/bset"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/orbitree"
)

const tol = 1e-5

func cubicTree(t *testing.T, occupants []string, lengths ...float64) *orbitree.Tree {
	t.Helper()
	l, err := lattice.New([3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1})
	require.NoError(t, err)
	prim, err := lattice.NewStructure(l, []lattice.BasisSite{{Occupants: occupants}}, nil, tol)
	require.NoError(t, err)
	prim.FactorGroup = prim.DeriveFactorGroup(l.PointGroup(tol))

	tree := orbitree.New(l, orbitree.WithMaxLength(lengths...))
	require.NoError(t, tree.Generate(prim))

	return tree
}

func generate(t *testing.T, o *orbitree.Orbit, args bset.Args) *bset.ClusterFunctions {
	t.Helper()
	fn, err := bset.OccupationEngine{}.Generate(o, args)
	require.NoError(t, err)

	return fn.(*bset.ClusterFunctions)
}

func TestDecodeArgs(t *testing.T) {
	args, err := bset.DecodeArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, bset.DefaultArgs(), args)

	args, err = bset.DecodeArgs(map[string]any{
		"max_poly_order":       "3",
		"site_basis_functions": "chebychev",
	})
	require.NoError(t, err)
	assert.Equal(t, bset.Args{MaxPolyOrder: 3, SiteBasis: bset.SiteBasisChebychev}, args)

	_, err = bset.DecodeArgs(map[string]any{"max_order": 3})
	assert.ErrorIs(t, err, bset.ErrBadArgs)

	_, err = bset.DecodeArgs(map[string]any{"site_basis_functions": "fourier"})
	assert.ErrorIs(t, err, bset.ErrBadArgs)
}

func TestNeighborList(t *testing.T) {
	tree := cubicTree(t, []string{"A", "B"}, 0, 0, 1.1)
	nl, err := bset.BuildNeighborList(tree)
	require.NoError(t, err)

	require.Equal(t, 7, nl.Len())
	assert.Equal(t, bset.UnitCellCoord{}, nl.Coord(0))
	assert.Equal(t, bset.UnitCellCoord{Cell: [3]int{-1, 0, 0}}, nl.Coord(1))
	assert.Equal(t, bset.UnitCellCoord{Cell: [3]int{1, 0, 0}}, nl.Coord(6))

	i, ok := nl.Index(bset.UnitCellCoord{Cell: [3]int{0, 0, 1}})
	require.True(t, ok)
	assert.Equal(t, 4, i)

	_, ok = nl.Index(bset.UnitCellCoord{Cell: [3]int{2, 0, 0}})
	assert.False(t, ok)

	_, err = bset.BuildNeighborList(orbitree.New(tree.Lattice()))
	assert.ErrorIs(t, err, orbitree.ErrUngenerated)
}

func TestOccupationEngine_Counts(t *testing.T) {
	binary := cubicTree(t, []string{"A", "B"}, 0, 0, 1.1)
	ternary := cubicTree(t, []string{"A", "B", "C"}, 0, 0, 1.1)
	unbounded := bset.DefaultArgs()
	quadratic := bset.Args{MaxPolyOrder: 2, SiteBasis: bset.SiteBasisOccupation}

	tests := []struct {
		name string
		o    *orbitree.Orbit
		args bset.Args
		want int
	}{
		{"EmptyCluster", binary.Orbit(0, 0), unbounded, 1},
		{"BinaryPoint", binary.Orbit(1, 0), unbounded, 1},
		{"BinaryPair", binary.Orbit(2, 0), unbounded, 1},
		{"TernaryPoint", ternary.Orbit(1, 0), unbounded, 2},
		{"TernaryPair", ternary.Orbit(2, 0), unbounded, 3},
		{"TernaryPairQuadratic", ternary.Orbit(2, 0), quadratic, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, generate(t, tc.o, tc.args).Size())
		})
	}
}

func TestOccupationEngine_Symmetrized(t *testing.T) {
	ternary := cubicTree(t, []string{"A", "B", "C"}, 0, 0, 1.1)
	fn := generate(t, ternary.Orbit(2, 0), bset.DefaultArgs())

	mixed := fn.Function(1)
	require.Len(t, mixed, 2)
	assert.Equal(t, []int{1, 2}, mixed[0].Orders)
	assert.Equal(t, []int{2, 1}, mixed[1].Orders)
	assert.InDelta(t, 0.5, mixed[0].Coeff, 1e-12)
	assert.InDelta(t, 0.5, mixed[1].Coeff, 1e-12)

	pure := fn.Function(2)
	require.Len(t, pure, 1)
	assert.Equal(t, []int{2, 2}, pure[0].Orders)
	assert.InDelta(t, 1.0, pure[0].Coeff, 1e-12)
}

func TestApplySym(t *testing.T) {
	ternary := cubicTree(t, []string{"A", "B", "C"}, 0, 0, 1.1)
	fn := generate(t, ternary.Orbit(2, 0), bset.DefaultArgs())
	require.NoError(t, fn.UpdateDoFIDs([]int{0, 1}, []int{10, 20}))

	swapped, err := fn.ApplySym(orbitree.SymElement{Perm: []int{1, 0}})
	require.NoError(t, err)
	assert.Equal(t, []int{20, 10}, swapped.DoFIDs())
	assert.Equal(t, fn.Size(), swapped.Size())
	assert.Equal(t, []int{2, 1}, swapped.(*bset.ClusterFunctions).Function(1)[0].Orders)

	_, err = fn.ApplySym(orbitree.SymElement{Perm: []int{0}})
	assert.ErrorIs(t, err, bset.ErrDoFMismatch)
	assert.ErrorIs(t, fn.UpdateDoFIDs([]int{10}, []int{1, 2}), bset.ErrDoFMismatch)
	assert.ErrorIs(t, fn.UpdateDoFIDs([]int{10}, []int{1}), bset.ErrDoFMismatch)
	assert.ErrorIs(t, fn.UpdateDoFIDs([]int{10, 10}, []int{1, 2}), bset.ErrDoFMismatch)
}

func TestSiteFunctions(t *testing.T) {
	occ, err := bset.SiteFunctions(3, bset.SiteBasisOccupation)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1, 1}, {0, 1, 0}, {0, 0, 1}}, occ)

	binary, err := bset.SiteFunctions(2, bset.SiteBasisChebychev)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{-1, 1}, binary[1], 1e-12)

	for m := 1; m <= 4; m++ {
		tab, err := bset.SiteFunctions(m, bset.SiteBasisChebychev)
		require.NoError(t, err)
		require.Len(t, tab, m)
		for k := 0; k < m; k++ {
			for l := 0; l < m; l++ {
				var dot float64
				for s := 0; s < m; s++ {
					dot += tab[k][s] * tab[l][s]
				}
				want := 0.0
				if k == l {
					want = 1
				}
				assert.InDelta(t, want, dot/float64(m), 1e-9, "m=%d k=%d l=%d", m, k, l)
			}
		}
	}

	_, err = bset.SiteFunctions(0, bset.SiteBasisOccupation)
	assert.ErrorIs(t, err, bset.ErrBadArgs)
	_, err = bset.SiteFunctions(2, "fourier")
	assert.ErrorIs(t, err, bset.ErrBadArgs)
}

func TestClusterFunctions_Evaluate(t *testing.T) {
	binary := cubicTree(t, []string{"A", "B"}, 0, 0, 1.1)
	pair := binary.Orbit(2, 0)
	cheb := bset.DefaultArgs()
	cheb.SiteBasis = bset.SiteBasisChebychev

	tests := []struct {
		name string
		args bset.Args
		occ  []int
		want float64
	}{
		{"OccupationBB", bset.DefaultArgs(), []int{1, 1}, 1},
		{"OccupationAB", bset.DefaultArgs(), []int{0, 1}, 0},
		{"OccupationAA", bset.DefaultArgs(), []int{0, 0}, 0},
		{"ChebychevBB", cheb, []int{1, 1}, 1},
		{"ChebychevAB", cheb, []int{0, 1}, -1},
		{"ChebychevAA", cheb, []int{0, 0}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := generate(t, pair, tc.args).Evaluate(tc.occ)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.InDelta(t, tc.want, got[0], 1e-12)
		})
	}

	fn := generate(t, pair, cheb)
	_, err := fn.Evaluate([]int{0})
	assert.ErrorIs(t, err, bset.ErrDoFMismatch)
	_, err = fn.Evaluate([]int{0, 2})
	assert.ErrorIs(t, err, bset.ErrDoFMismatch)
}
