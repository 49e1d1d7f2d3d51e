// Package: clusterography/bset
//
// propagate.go - carries prototype functions to every equivalent cluster.
//
// Contract:
//   • The tree index must be current (else ErrStaleIndex).
//   • Every equivalent must be covered by nl (else ErrNotInNeighborList).
//   • Each goroutine writes only its own orbit's Basis and EquivBases.

package bset

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/clusterography/orbitree"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Propagate generates the basis of every orbit prototype with eng and
// carries it to each equivalent. On return each orbit's Basis holds the
// prototype functions and EquivBases[k] the functions of Equivalents[k],
// with degree-of-freedom ids taken from nl.
//
// Orbits are processed by up to opts.Workers goroutines; each writes only
// its own orbit, so the result does not depend on scheduling. The first
// error cancels the remaining orbits.
func Propagate(ctx context.Context, tree *orbitree.Tree, nl *NeighborList, eng Engine, args Args, opts Options) error {
	if !tree.IndexValid() {
		return ErrStaleIndex
	}
	opts = opts.withDefaults()

	var orbits []*orbitree.Orbit
	tree.Each(func(_, _ int, o *orbitree.Orbit) { orbits = append(orbits, o) })

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for _, o := range orbits {
		o := o
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := propagateOrbit(o, nl, eng, args); err != nil {
				return fmt.Errorf("orbit %d: %w", o.Index(), err)
			}
			opts.Logger.Debug("bset: orbit basis",
				zap.Int("orbit", o.Index()),
				zap.Int("functions", o.Basis.Size()),
				zap.Int("equivalents", len(o.EquivBases)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	total := 0
	for _, o := range orbits {
		total += o.Basis.Size()
	}
	opts.Logger.Info("bset: basis propagated",
		zap.Int("orbits", len(orbits)),
		zap.Int("functions", total),
		zap.Int("neighbor_list", nl.Len()))

	return nil
}

func propagateOrbit(o *orbitree.Orbit, nl *NeighborList, eng Engine, args Args) error {
	// --- 1. Functions on the prototype, ids 0..n-1 ---
	fn, err := eng.Generate(o, args)
	if err != nil {
		return err
	}
	// --- 2. Rename to the prototype's neighbor-list ids ---
	protoIDs, err := nl.DoFIDs(o.Prototype)
	if err != nil {
		return err
	}
	if err := fn.UpdateDoFIDs(symmetry.IdentityPermutation(len(protoIDs)), protoIDs); err != nil {
		return err
	}

	// --- 3. One transformed copy per equivalent ---
	bases := make([]orbitree.ClusterBasis, len(o.Equivalents))
	for k, el := range o.EquivalenceMap {
		eq, err := fn.ApplySym(el)
		if err != nil {
			return fmt.Errorf("equivalent %d: %w", k, err)
		}
		// after ApplySym, site j carries the id of prototype site Perm[j]
		from := make([]int, len(el.Perm))
		for j, p := range el.Perm {
			from[j] = protoIDs[p]
		}
		// and must carry the id of equivalent site j
		to, err := nl.DoFIDs(o.Equivalents[k])
		if err != nil {
			return fmt.Errorf("equivalent %d: %w", k, err)
		}
		if err := eq.UpdateDoFIDs(from, to); err != nil {
			return fmt.Errorf("equivalent %d: %w", k, err)
		}
		bases[k] = eq
	}
	o.Basis = fn
	o.EquivBases = bases

	return nil
}
