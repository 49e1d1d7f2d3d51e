package orbitree

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// GenerateInCell grows clusters of sites inside scel, comparing them with
// every site folded into the supercell. Orbits are taken under the factor
// group combined with the primitive translations of the supercell. Cutoffs
// apply as in Generate. An empty branch ends growth early with a warning
// and no error.
func (t *Tree) GenerateInCell(prim *lattice.Structure, scel *lattice.Supercell) error {
	if err := t.checkCutoffs(); err != nil {
		return err
	}
	cmp := symcompare.NewWithinScel(scel, prim.Tol)
	if err := t.bind(prim, cmp, cluster.Local, SupercellGroup(prim.FactorGroup, scel)); err != nil {
		return err
	}
	t.phenom = nil

	var grid []cluster.Site
	basis := t.basisSites()
	for _, cell := range scel.PrimCells() {
		for _, b := range basis {
			grid = append(grid, b.Translate(cell))
		}
	}
	t.logger.Info("orbitree: generating in-cell tree",
		zap.Int("volume", scel.Volume()),
		zap.Int("grid_sites", len(grid)))

	t.reset(t.MaxNumSites + 1)
	if err := t.seedEmpty(); err != nil {
		return err
	}
	for np := 1; np <= t.MaxNumSites; np++ {
		if t.branches[np-1].Size() == 0 {
			t.logger.Warn("orbitree: in-cell growth stopped early", zap.Int("empty_branch", np-1))
			break
		}
		limit := t.MaxLength[np]
		if _, err := t.growBranch(np, grid, func(c *cluster.Cluster) bool {
			if np == 1 {
				return true
			}
			return c.MaxLength() < limit && c.MinLength() > t.MinLength
		}); err != nil {
			return err
		}
	}
	t.SortBranches()
	t.UpdateIndex()

	return nil
}

// SupercellGroup returns every element of fg combined with every primitive
// translation inside scel, translations varying slowest.
func SupercellGroup(fg symmetry.Group, scel *lattice.Supercell) symmetry.Group {
	cells := scel.PrimCells()
	out := make(symmetry.Group, 0, len(fg)*len(cells))
	for _, u := range cells {
		for _, g := range fg {
			out = append(out, g.Translate(u))
		}
	}

	return out
}
