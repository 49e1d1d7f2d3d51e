package orbitree

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// PhenomenalGroup returns the factor-group elements, each combined with the
// lattice translation that makes it exact, that map phenom onto itself as a
// set of sites. The empty cluster is stabilized by the whole group.
func PhenomenalGroup(prim *lattice.Structure, phenom *cluster.Cluster) (symmetry.Group, error) {
	if len(prim.FactorGroup) == 0 {
		return nil, ErrEmptyGroup
	}
	if phenom.Len() == 0 {
		return slices.Clone(prim.FactorGroup), nil
	}
	tol := prim.Tol
	// fixed in space: compare without any translation convention
	cmp := symcompare.NewAperiodic(tol)
	target := symcompare.Prepare(cmp, phenom).Cluster
	ref := phenom.Site(0).Cell(tol)

	var out symmetry.Group
	for gi, g := range prim.FactorGroup {
		img, err := phenom.Apply(g, prim)
		if err != nil {
			return nil, fmt.Errorf("orbitree: phenomenal image under op %d: %w", gi, err)
		}
		// The factor group only fixes phenom up to a lattice translation.
		// Try each image site that could be the new home of site 0.
		for k := 0; k < img.Len(); k++ {
			if img.Site(k).Sublattice != phenom.Site(0).Sublattice {
				continue
			}
			c := img.Site(k).Cell(tol)
			tr := [3]int{ref[0] - c[0], ref[1] - c[1], ref[2] - c[2]}
			moved := img.Clone()
			moved.Translate(tr)
			if symcompare.Equal(cmp, symcompare.Prepare(cmp, moved).Cluster, target) {
				// fold the translation into the op so it maps phenom onto itself
				out = append(out, g.Translate(tr))
				break
			}
		}
	}

	return out, nil
}

// GenerateLocal grows clusters around the phenomenal cluster phenom, which
// stays fixed in space. Candidate sites are those whose distance to every
// phenomenal site is below max(MaxLength); phenomenal sites themselves are
// candidates only when includePhenomSites is set. Cluster lengths include
// distances to the phenomenal sites. Orbits are taken under the stabilizer
// of phenom (see PhenomenalGroup).
//
// A branch that comes out empty ends growth early with a warning; the
// smaller tree is kept and no error is returned.
func (t *Tree) GenerateLocal(prim *lattice.Structure, phenom *cluster.Cluster, includePhenomSites bool) error {
	if err := t.checkCutoffs(); err != nil {
		return err
	}
	group, err := PhenomenalGroup(prim, phenom)
	if err != nil {
		return err
	}
	if err := t.bind(prim, symcompare.NewAperiodic(prim.Tol), cluster.Local, group); err != nil {
		return err
	}
	t.phenom = phenom.Clone()
	t.phenom.CalcProperties(nil)

	grid := t.localGrid(includePhenomSites)
	t.logger.Info("orbitree: generating local tree",
		zap.Int("phenomenal_sites", phenom.Len()),
		zap.Int("stabilizer", len(group)),
		zap.Int("grid_sites", len(grid)))

	t.reset(t.MaxNumSites + 1)
	if err := t.seedEmpty(); err != nil {
		return err
	}
	for np := 1; np <= t.MaxNumSites; np++ {
		if t.branches[np-1].Size() == 0 {
			t.logger.Warn("orbitree: local growth stopped early",
				zap.Int("empty_branch", np-1),
				zap.Int("max_num_sites", t.MaxNumSites))
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

func (t *Tree) localGrid(includePhenomSites bool) []cluster.Site {
	tol := t.tol()
	maxRadius := slices.Max(t.MaxLength)
	var center [3]int
	if t.phenom.Len() > 0 {
		center = t.phenom.Site(0).Cell(tol)
	}
	basis := t.basisSites()

	var out []cluster.Site
	for _, cell := range lattice.Cells(t.lat.EncloseSphere(maxRadius)) {
		cell = [3]int{cell[0] + center[0], cell[1] + center[1], cell[2] + center[2]}
		for _, b := range basis {
			s := b.Translate(cell)
			if !includePhenomSites && t.phenom.IndexOf(s.Frac, tol) >= 0 {
				continue
			}
			maxDist := 0.0
			for _, p := range t.phenom.Sites() {
				maxDist = math.Max(maxDist, t.lat.Dist(s.Frac, p.Frac))
			}
			if maxDist < maxRadius {
				out = append(out, s)
			}
		}
	}

	return out
}
