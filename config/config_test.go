package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/clusterography/bset"
	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/config"
	"github.com/katalvlaran/clusterography/orbitree"
)

const header = `
lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
basis:
  - coordinate: [0, 0, 0]
    occupants: [A, B]
`

func load(t *testing.T, orbits string) *config.File {
	t.Helper()
	f, err := config.Load(strings.NewReader(header + orbits))
	require.NoError(t, err)

	return f
}

func branchSizes(tree *orbitree.Tree) []int {
	out := make([]int, tree.Size())
	for b := range out {
		out[b] = tree.BranchSize(b)
	}

	return out
}

func TestReadFile(t *testing.T) {
	f, err := config.ReadFile("testdata/sc_binary.yaml")
	require.NoError(t, err)
	assert.Equal(t, "simple cubic binary", f.Title)
	assert.Equal(t, config.MethodRadius, f.Orbits.Method)
	assert.Equal(t, config.DecorateNone, f.Orbits.Decorate)

	prim, err := f.Structure()
	require.NoError(t, err)
	assert.Len(t, prim.FactorGroup, 48)
	assert.Equal(t, "simple cubic binary", prim.Title)

	args, err := f.BasisArgs()
	require.NoError(t, err)
	assert.Equal(t, bset.Args{MaxPolyOrder: 4, SiteBasis: bset.SiteBasisOccupation}, args)

	tree, err := f.Generate(prim, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 2}, branchSizes(tree))
	assert.True(t, tree.HierarchyValid())

	_, err = config.ReadFile("testdata/missing.yaml")
	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"UnknownKey", header + "colour: red\n", config.ErrParse},
		{"NotYAML", "lattice: [", config.ErrParse},
		{"NoBasis", "lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]\norbits:\n  max_length: [0, 0, 1]\n", config.ErrInvalid},
		{"EmptyOccupants", "lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]\nbasis:\n  - occupants: []\n", config.ErrInvalid},
		{"BadMethod", header + "orbits:\n  method: spiral\n  max_length: [0, 0, 1]\n", config.ErrInvalid},
		{"NoMaxLength", header + "orbits:\n  method: radius\n", config.ErrInvalid},
		{"CountWithoutTarget", header + "orbits:\n  method: count\n  max_num_sites: 2\n", config.ErrInvalid},
		{"NeighbourWithoutShells", header + "orbits:\n  method: neighbour\n  max_num_sites: 2\n", config.ErrInvalid},
		{"LocalWithoutPhenomenal", header + "orbits:\n  method: local\n  max_length: [0, 1.5]\n", config.ErrInvalid},
		{"InCellWithoutSupercell", header + "orbits:\n  method: in_cell\n  max_length: [0, 0, 1.1]\n", config.ErrInvalid},
		{"HopAndDecorate", header + "orbits:\n  max_length: [0, 0, 1.1]\n  hop: true\n  decorate: full\n", config.ErrInvalid},
		{"NegativeLength", header + "orbits:\n  max_length: [0, 0, -1]\n", config.ErrInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.Load(strings.NewReader(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGenerate_Methods(t *testing.T) {
	tests := []struct {
		name   string
		orbits string
		want   []int
	}{
		{"Count", "orbits:\n  method: count\n  max_num_sites: 2\n  max_clusters: 2\n", []int{1, 1, 2}},
		{"Neighbour", "orbits:\n  method: neighbour\n  max_num_sites: 3\n  shells: [3, 2]\n", []int{1, 1, 3, 2}},
		{"InCell", "orbits:\n  method: in_cell\n  max_length: [0, 0, 1.1]\n  supercell: [[2, 0, 0], [0, 2, 0], [0, 0, 2]]\n", []int{1, 1, 1}},
		{"DecoratedFull", "orbits:\n  max_length: [0, 0, 1.1]\n  decorate: full\n", []int{1, 2, 3}},
		{"Custom", "orbits:\n  max_length: [0, 0, 1.1]\n  custom:\n    - sites: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]\n      include_subclusters: true\n", []int{1, 1, 2, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := load(t, tc.orbits)
			prim, err := f.Structure()
			require.NoError(t, err)
			tree, err := f.Generate(prim, nil)
			require.NoError(t, err)
			assert.Equal(t, tc.want, branchSizes(tree))
		})
	}
}

func TestGenerate_Local(t *testing.T) {
	f := load(t, "orbits:\n  method: local\n  max_length: [0, 1.5, 1.5]\n  phenomenal: [[0, 0, 0], [1, 0, 0]]\n")
	prim, err := f.Structure()
	require.NoError(t, err)

	tree, err := f.Generate(prim, nil)
	require.NoError(t, err)
	assert.Equal(t, cluster.Local, tree.Mode())
	assert.Equal(t, 2, tree.Phenomenal().Len())
	assert.Equal(t, 8, tree.OrbitSize(1, 0))

	f.Orbits.Phenomenal = [][3]float64{{0.5, 0.5, 0.5}}
	_, err = f.Generate(prim, nil)
	assert.ErrorIs(t, err, cluster.ErrSiteNotFound)
}
