package orbitree

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// GenerateDecorated fills t with every symmetrically distinct occupation of
// the prototypes of in, compared with cmp under group. Unless full is set
// the decoration with every site on its first occupant is left out. The
// cutoffs, structure and phenomenal cluster are taken from in.
func (t *Tree) GenerateDecorated(in *Tree, group symmetry.Group, cmp symcompare.Comparer, full bool) error {
	t.copyParams(in)
	if err := t.bind(in.prim, cmp, in.mode, group); err != nil {
		return err
	}
	t.phenom = in.phenom

	t.reset(len(in.branches))
	if err := t.seedEmpty(); err != nil {
		return err
	}
	for b := 1; b < len(in.branches); b++ {
		for _, o := range in.branches[b].orbits {
			err := eachDecoration(o.Prototype, func(occ []int) error {
				if !full && allZero(occ) {
					return nil
				}
				dec, err := o.Prototype.Decorate(occ)
				if err != nil {
					return err
				}
				if _, found := t.FindInBranch(dec, b); found {
					return nil
				}
				_, err = t.addOrbit(b, dec)
				return err
			})
			if err != nil {
				return err
			}
		}
		t.logger.Debug("orbitree: decorated branch", zap.Int("branch", b), zap.Int("orbits", t.branches[b].Size()))
	}
	t.SortBranches()
	t.UpdateIndex()

	return nil
}

// GenerateHop fills t with vacancy hop clusters derived from the pair and
// larger prototypes of in: decorations with exactly one vacancy combined
// with every site permutation that moves all sites and places each
// occupant on a site that allows it. Branches 0 and 1 stay empty.
func (t *Tree) GenerateHop(in *Tree) error {
	t.copyParams(in)
	prim := in.prim
	if prim == nil {
		return ErrLatticeMismatch
	}
	if err := t.bind(prim, symcompare.NewPrimPeriodic(prim.Tol), cluster.Periodic, prim.FactorGroup); err != nil {
		return err
	}
	t.phenom = in.phenom

	t.reset(len(in.branches))
	for b := 2; b < len(in.branches); b++ {
		for _, o := range in.branches[b].orbits {
			err := eachDecoration(o.Prototype, func(occ []int) error {
				dec, err := o.Prototype.Decorate(occ)
				if err != nil {
					return err
				}
				if vacancies(dec) != 1 {
					return nil
				}
				return t.addHops(b, dec)
			})
			if err != nil {
				return err
			}
		}
		t.logger.Debug("orbitree: hop branch", zap.Int("branch", b), zap.Int("orbits", t.branches[b].Size()))
	}
	t.SortBranches()
	t.UpdateIndex()

	return nil
}

func (t *Tree) addHops(b int, dec *cluster.Cluster) error {
	perm := symmetry.IdentityPermutation(dec.Len())
	for symmetry.NextPermutation(perm) {
		if !perm.IsDerangement() || !hopAllowed(dec, perm) {
			continue
		}
		h := dec.Clone()
		if err := h.SetHop(perm); err != nil {
			return err
		}
		if _, found := t.FindInBranch(h, b); found {
			continue
		}
		if _, err := t.addOrbit(b, h); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tree) copyParams(in *Tree) {
	t.lat = in.lat
	t.MaxNumSites = in.MaxNumSites
	t.MinNumComponents = in.MinNumComponents
	t.MaxLength = append([]float64(nil), in.MaxLength...)
	t.MinLength = in.MinLength
}

// eachDecoration calls fn for every occupation of c's sites, site 0 varying
// fastest. Clusters with an occupant-free site have no decorations.
func eachDecoration(c *cluster.Cluster, fn func(occ []int) error) error {
	n := c.Len()
	for i := 0; i < n; i++ {
		if len(c.Site(i).Occupants) == 0 {
			return nil
		}
	}
	occ := make([]int, n)
	for {
		if err := fn(occ); err != nil {
			return err
		}
		i := 0
		for ; i < n; i++ {
			occ[i]++
			if occ[i] < len(c.Site(i).Occupants) {
				break
			}
			occ[i] = 0
		}
		if i == n {
			return nil
		}
	}
}

func allZero(occ []int) bool {
	for _, o := range occ {
		if o != 0 {
			return false
		}
	}

	return true
}

func vacancies(c *cluster.Cluster) int {
	n := 0
	for _, s := range c.Sites() {
		if s.Occupant() == cluster.Vacancy {
			n++
		}
	}

	return n
}

// hopAllowed reports whether every site's occupant may sit on the site it
// moves to.
func hopAllowed(c *cluster.Cluster, perm symmetry.Permutation) bool {
	for i, to := range perm {
		if !c.Site(to).Allows(c.Site(i).Occupant()) {
			return false
		}
	}

	return true
}
