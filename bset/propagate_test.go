package bset_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/katalvlaran/clusterography/bset"
	"github.com/katalvlaran/clusterography/orbitree"
)

func TestPropagate_DoFIDs(t *testing.T) {
	tree := cubicTree(t, []string{"A", "B", "C"}, 0, 0, 1.5, 1.5)
	nl, err := bset.BuildNeighborList(tree)
	require.NoError(t, err)

	opts := bset.Options{Workers: 3, Logger: zaptest.NewLogger(t)}
	require.NoError(t, bset.Propagate(context.Background(), tree, nl, bset.OccupationEngine{}, bset.DefaultArgs(), opts))

	tree.Each(func(b, p int, o *orbitree.Orbit) {
		require.NotNil(t, o.Basis, "orbit (%d,%d)", b, p)
		require.Len(t, o.EquivBases, o.Size())
		for k, e := range o.Equivalents {
			want, err := nl.DoFIDs(e)
			require.NoError(t, err)
			fn := o.EquivBases[k].(bset.Functions)
			assert.Equal(t, want, fn.DoFIDs(), "orbit (%d,%d) equivalent %d", b, p, k)
			assert.Equal(t, o.Basis.Size(), fn.Size())
		}
	})
}

func TestPropagate_Deterministic(t *testing.T) {
	run := func(workers int) string {
		tree := cubicTree(t, []string{"A", "B", "C"}, 0, 0, 1.5, 1.5)
		nl, err := bset.BuildNeighborList(tree)
		require.NoError(t, err)
		require.NoError(t, bset.Propagate(context.Background(), tree, nl, bset.OccupationEngine{}, bset.DefaultArgs(), bset.Options{Workers: workers}))
		var buf bytes.Buffer
		require.NoError(t, bset.WriteFunctions(&buf, tree))
		return buf.String()
	}

	serial := run(1)
	assert.Equal(t, serial, run(8))
	assert.Contains(t, serial, "Orbit 2  Branch 2  Mult 6  Functions 3")
	assert.True(t, strings.HasPrefix(serial, "Orbit 0  Branch 0  Mult 1  Functions 1\nF0 = 1\n"))
}

func TestPropagate_Errors(t *testing.T) {
	tree := cubicTree(t, []string{"A", "B"}, 0, 0, 1.1)
	nl, err := bset.BuildNeighborList(tree)
	require.NoError(t, err)

	// a neighbor list missing the neighbours cannot place the pair
	small := bset.NewNeighborList([]bset.UnitCellCoord{{}}, tol)
	err = bset.Propagate(context.Background(), tree, small, bset.OccupationEngine{}, bset.DefaultArgs(), bset.Options{})
	assert.ErrorIs(t, err, bset.ErrNotInNeighborList)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = bset.Propagate(ctx, tree, nl, bset.OccupationEngine{}, bset.DefaultArgs(), bset.Options{Workers: 1})
	assert.ErrorIs(t, err, context.Canceled)

	tree.SortBranches()
	err = bset.Propagate(context.Background(), tree, nl, bset.OccupationEngine{}, bset.DefaultArgs(), bset.Options{})
	assert.ErrorIs(t, err, bset.ErrStaleIndex)
}
