package orbitree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Prototype is an explicit orbit representative. A positive Multiplicity is
// checked against the number of equivalents the group produces.
type Prototype struct {
	Cluster      *cluster.Cluster
	Multiplicity int
}

// CustomOrbit is a user-supplied cluster added to an existing tree.
type CustomOrbit struct {
	Cluster            *cluster.Cluster
	IncludeSubclusters bool
}

// GenerateFromPrototypes replaces the tree with one orbit per prototype,
// generated under group and compared with cmp. A multiplicity mismatch
// returns ErrEquivalentMismatch; it means the prototypes were produced with
// different symmetry or tolerance.
func (t *Tree) GenerateFromPrototypes(prim *lattice.Structure, protos []Prototype, group symmetry.Group, cmp symcompare.Comparer) error {
	mode := cluster.Periodic
	if cmp.Name() == symcompare.NameAperiodic {
		mode = cluster.Local
	}
	if err := t.bind(prim, cmp, mode, group); err != nil {
		return err
	}
	t.phenom = nil
	maxN := 0
	for _, p := range protos {
		maxN = max(maxN, p.Cluster.Len())
	}
	t.MaxNumSites = max(t.MaxNumSites, maxN)
	t.reset(t.MaxNumSites + 1)
	for i, p := range protos {
		c := p.Cluster.Clone()
		c.CalcProperties(nil)
		o, err := t.addOrbit(c.Len(), c)
		if err != nil {
			return err
		}
		if p.Multiplicity > 0 && o.Size() != p.Multiplicity {
			return fmt.Errorf("%w: prototype %d has %d equivalents, expected %d",
				ErrEquivalentMismatch, i, o.Size(), p.Multiplicity)
		}
	}
	t.SortBranches()
	t.UpdateIndex()

	return nil
}

// AddCustomOrbits adds the orbit of each custom cluster not already in the
// tree, optionally with all of its subclusters, then rebuilds the index and
// hierarchy. An empty tree is first bound to prim as a periodic tree holding
// the empty cluster.
func (t *Tree) AddCustomOrbits(prim *lattice.Structure, customs []CustomOrbit) error {
	if t.cmp == nil {
		if err := t.bind(prim, symcompare.NewPrimPeriodic(prim.Tol), cluster.Periodic, prim.FactorGroup); err != nil {
			return err
		}
		t.reset(1)
		if err := t.seedEmpty(); err != nil {
			return err
		}
	} else if !t.lat.Equal(prim.Lattice, prim.Tol) {
		return ErrLatticeMismatch
	}

	for _, co := range customs {
		c := co.Cluster.Clone()
		c.CalcProperties(t.phenom)
		if t.Contains(c) {
			t.logger.Info("orbitree: custom cluster already present", zap.Stringer("cluster", c))
			continue
		}
		if _, err := t.addOrbit(c.Len(), c); err != nil {
			return err
		}
		t.noteSize(c)
		if co.IncludeSubclusters {
			if err := t.addSubclusters(c); err != nil {
				return err
			}
		}
	}

	return t.finishCustom()
}

// AddSubclusters adds the orbit of every proper subcluster of c that is not
// in the tree yet, then rebuilds the index and hierarchy.
func (t *Tree) AddSubclusters(c *cluster.Cluster) error {
	if t.cmp == nil {
		return ErrUngenerated
	}
	if err := t.addSubclusters(c); err != nil {
		return err
	}

	return t.finishCustom()
}

func (t *Tree) addSubclusters(c *cluster.Cluster) error {
	n := c.Len()
	for mask := uint(1); mask < (1<<n)-1; mask++ {
		sub := cluster.New(t.lat)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sub.Append(c.Site(i))
			}
		}
		sub.CalcProperties(t.phenom)
		if t.Contains(sub) {
			continue
		}
		if _, err := t.addOrbit(sub.Len(), sub); err != nil {
			return err
		}
	}

	return nil
}

// noteSize widens MaxNumSites and MaxLength so the record describes c.
func (t *Tree) noteSize(c *cluster.Cluster) {
	n := c.Len()
	t.MaxNumSites = max(t.MaxNumSites, n)
	for len(t.MaxLength) <= n {
		t.MaxLength = append(t.MaxLength, 0)
	}
	t.MaxLength[n] = max(t.MaxLength[n], c.MaxLength())
}

func (t *Tree) finishCustom() error {
	t.SortBranches()
	t.UpdateIndex()

	return t.UpdateHierarchy()
}
