// Package: clusterography/orbitree
//
// generate.go - radius-bounded growth of periodic orbit trees.
//
// Contract:
//   • Branch n is grown only from the prototypes of branch n-1.
//   • A trial is kept iff accept() holds and no orbit of branch n contains it.
//   • Sites and prototypes are visited in a fixed order, so two runs on the
//     same input give the same tree.
//   • Returns sentinel errors; never panics on user input.
//
// Complexity:
//   • Time: O(Σ_n P(n-1)·|grid|·F) where F is one Find in branch n.
//   • Space: O(|grid|) plus the tree.

package orbitree

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
)

// Generate grows the periodic tree of prim under its factor group.
//
// Sites come from basis sites with at least MinNumComponents occupants,
// replicated over every cell within max(MaxLength) of the origin cell. Each
// branch n is built by extending the prototypes of branch n-1 by one grid
// site; a trial is kept if its longest pair is below MaxLength[n], its
// shortest pair above MinLength and no existing orbit contains it.
//
// Returns ErrEmptyGroup, ErrBadCutoffs, or ErrBranchExhausted when a branch
// below MaxNumSites ends up empty.
func (t *Tree) Generate(prim *lattice.Structure) error {
	if err := t.checkCutoffs(); err != nil {
		return err
	}
	if err := t.bind(prim, symcompare.NewPrimPeriodic(prim.Tol), cluster.Periodic, prim.FactorGroup); err != nil {
		return err
	}
	t.phenom = nil

	// --- 1. Candidate sites: basis sites over every cell within reach ---
	basis := t.basisSites()
	grid := t.grid(basis, slices.Max(t.MaxLength), 0)
	t.logger.Info("orbitree: generating",
		zap.Int("max_num_sites", t.MaxNumSites),
		zap.Int("grid_sites", len(grid)),
		zap.Int("group_order", len(t.group)))

	// --- 2. Branch 0 holds the empty cluster ---
	t.reset(t.MaxNumSites + 1)
	if err := t.seedEmpty(); err != nil {
		return err
	}
	// --- 3. Grow one site at a time ---
	for np := 1; np <= t.MaxNumSites; np++ {
		if t.branches[np-1].Size() == 0 {
			return fmt.Errorf("%w: branch %d is empty, cannot grow %d-site clusters", ErrBranchExhausted, np-1, np)
		}
		limit := t.MaxLength[np]
		added, err := t.growBranch(np, grid, func(c *cluster.Cluster) bool {
			// points carry no pair length
			if np == 1 {
				return true
			}
			return c.MaxLength() < limit && c.MinLength() > t.MinLength
		})
		if err != nil {
			return err
		}
		t.logger.Info("orbitree: branch complete", zap.Int("branch", np), zap.Int("orbits", added))
	}
	// --- 4. Stable order, then global ids ---
	t.SortBranches()
	t.UpdateIndex()

	return nil
}

func (t *Tree) checkCutoffs() error {
	if t.MaxNumSites < 0 {
		return fmt.Errorf("%w: max_num_sites %d", ErrBadCutoffs, t.MaxNumSites)
	}
	if len(t.MaxLength) < t.MaxNumSites+1 {
		return fmt.Errorf("%w: %d max lengths for %d-site clusters", ErrBadCutoffs, len(t.MaxLength), t.MaxNumSites)
	}
	for i, l := range t.MaxLength {
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return fmt.Errorf("%w: max_length[%d] = %v", ErrBadCutoffs, i, l)
		}
	}
	if t.MinLength < 0 || math.IsNaN(t.MinLength) {
		return fmt.Errorf("%w: min_length = %v", ErrBadCutoffs, t.MinLength)
	}

	return nil
}

// basisSites returns the origin-cell sites of every sublattice with enough
// allowed occupants.
func (t *Tree) basisSites() []cluster.Site {
	var out []cluster.Site
	for b, s := range t.prim.Basis {
		if len(s.Occupants) >= t.MinNumComponents {
			out = append(out, cluster.StructureSite(t.prim, b, [3]int{}))
		}
	}

	return out
}

// grid replicates basis over the cells around the origin and keeps sites
// whose distance to the nearest origin-cell basis site lies in
// [minRadius, maxRadius). Origin-cell sites are always kept when minRadius
// is zero.
// Complexity: O(cells·|basis|²).
func (t *Tree) grid(basis []cluster.Site, maxRadius, minRadius float64) []cluster.Site {
	var out []cluster.Site
	for _, cell := range lattice.Cells(t.lat.EncloseSphere(maxRadius)) {
		for _, b := range basis {
			s := b.Translate(cell)
			d := math.Inf(1)
			for _, o := range basis {
				d = math.Min(d, t.lat.Dist(s.Frac, o.Frac))
			}
			origin := cell == [3]int{} && minRadius == 0
			if origin || (d >= minRadius && d < maxRadius) {
				out = append(out, s)
			}
		}
	}

	return out
}

// growBranch extends every prototype of branch np-1 by each grid site and
// adds the accepted, not yet contained trials to branch np.
func (t *Tree) growBranch(np int, grid []cluster.Site, accept func(*cluster.Cluster) bool) (int, error) {
	return t.growFrom(np, grid, nil, accept)
}

// growFrom is growBranch with a per-prototype cursor: prototype i only tries
// grid sites from cursor[i] on, and the cursor is advanced to len(grid).
// A nil cursor tries the whole grid.
func (t *Tree) growFrom(np int, grid []cluster.Site, cursor map[*Orbit]int, accept func(*cluster.Cluster) bool) (int, error) {
	t.ensureBranches(np + 1)
	added := 0
	tol := t.tol()
	for _, o := range t.branches[np-1].orbits {
		start := 0
		if cursor != nil {
			start = cursor[o]
			cursor[o] = len(grid)
		}
		// one scratch per prototype; every trial is undone before the next
		scratch := o.Prototype.Clone()
		for _, s := range grid[start:] {
			scratch.Append(s)
			// keep site 0 in the origin cell; a no-op for Local trees
			tr := scratch.Within(t.mode, tol)
			scratch.CalcProperties(t.phenom)
			if accept(scratch) {
				if _, found := t.FindInBranch(scratch, np); !found {
					// addOrbit keeps its own canonical copy
					if _, err := t.addOrbit(np, scratch.Clone()); err != nil {
						return added, err
					}
					added++
				}
			}
			// undo the anchor shift before dropping the trial site
			scratch.Translate([3]int{-tr[0], -tr[1], -tr[2]})
			scratch.Pop()
		}
	}

	return added, nil
}
