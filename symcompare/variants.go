package symcompare

import (
	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Names reported by the built-in comparers.
const (
	NameAperiodic    = "aperiodic"
	NamePrimPeriodic = "prim_periodic"
	NameScelPeriodic = "scel_periodic"
	NameWithinScel   = "within_scel"
)

// Aperiodic compares clusters fixed in space.
type Aperiodic struct{ tol float64 }

// NewAperiodic returns an Aperiodic comparer.
func NewAperiodic(tol float64) Aperiodic { return Aperiodic{tol: tol} }

func (a Aperiodic) Name() string                           { return NameAperiodic }
func (a Aperiodic) Tol() float64                           { return a.tol }
func (a Aperiodic) SpatialPrepare(*cluster.Cluster) [3]int { return [3]int{} }
func (a Aperiodic) RepresentationPrepare(c *cluster.Cluster) symmetry.Permutation {
	return c.Sort(a.tol)
}

// PrimPeriodic compares clusters modulo primitive lattice translations.
type PrimPeriodic struct{ tol float64 }

// NewPrimPeriodic returns a PrimPeriodic comparer.
func NewPrimPeriodic(tol float64) PrimPeriodic { return PrimPeriodic{tol: tol} }

func (p PrimPeriodic) Name() string { return NamePrimPeriodic }
func (p PrimPeriodic) Tol() float64 { return p.tol }

// SpatialPrepare translates c so that site 0 lies in the origin cell.
func (p PrimPeriodic) SpatialPrepare(c *cluster.Cluster) [3]int {
	return c.Within(cluster.Periodic, p.tol)
}

func (p PrimPeriodic) RepresentationPrepare(c *cluster.Cluster) symmetry.Permutation {
	return c.Sort(p.tol)
}

// ScelPeriodic compares clusters modulo supercell lattice translations.
type ScelPeriodic struct {
	tol  float64
	scel *lattice.Supercell
}

// NewScelPeriodic returns a ScelPeriodic comparer for scel.
func NewScelPeriodic(scel *lattice.Supercell, tol float64) ScelPeriodic {
	return ScelPeriodic{tol: tol, scel: scel}
}

func (s ScelPeriodic) Name() string                  { return NameScelPeriodic }
func (s ScelPeriodic) Tol() float64                  { return s.tol }
func (s ScelPeriodic) Supercell() *lattice.Supercell { return s.scel }

// SpatialPrepare brings site 0 inside the supercell, moving the whole cluster.
func (s ScelPeriodic) SpatialPrepare(c *cluster.Cluster) [3]int {
	if c.Len() == 0 {
		return [3]int{}
	}
	cell := c.Site(0).Cell(s.tol)
	w := s.scel.BringWithin(cell)
	t := [3]int{w[0] - cell[0], w[1] - cell[1], w[2] - cell[2]}
	c.Translate(t)

	return t
}

func (s ScelPeriodic) RepresentationPrepare(c *cluster.Cluster) symmetry.Permutation {
	return c.Sort(s.tol)
}

// WithinScel compares clusters whose every site is folded into the supercell.
type WithinScel struct {
	tol  float64
	scel *lattice.Supercell
}

// NewWithinScel returns a WithinScel comparer for scel.
func NewWithinScel(scel *lattice.Supercell, tol float64) WithinScel {
	return WithinScel{tol: tol, scel: scel}
}

func (w WithinScel) Name() string                           { return NameWithinScel }
func (w WithinScel) Tol() float64                           { return w.tol }
func (w WithinScel) Supercell() *lattice.Supercell          { return w.scel }
func (w WithinScel) SpatialPrepare(*cluster.Cluster) [3]int { return [3]int{} }

// FoldsSites is true: RepresentationPrepare moves sites independently.
func (w WithinScel) FoldsSites() bool { return true }

// RepresentationPrepare folds every site into the supercell, then sorts.
func (w WithinScel) RepresentationPrepare(c *cluster.Cluster) symmetry.Permutation {
	for i := 0; i < c.Len(); i++ {
		s := c.Site(i)
		s.Frac = w.scel.BringWithinFrac(s.Frac, w.tol)
		c.SetSite(i, s)
	}

	return c.Sort(w.tol)
}
