package orbitree

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Branch holds the orbits of one cluster size.
type Branch struct {
	orbits []*Orbit
}

// Size returns the number of orbits in the branch.
func (b *Branch) Size() int { return len(b.orbits) }

// Orbit returns orbit i.
func (b *Branch) Orbit(i int) *Orbit { return b.orbits[i] }

// Orbits exposes the branch's orbits; callers must not modify the slice.
func (b *Branch) Orbits() []*Orbit { return b.orbits }

func (b *Branch) find(forms []symcompare.Prepared, inv cluster.Invariants) int {
	for i, o := range b.orbits {
		if o.containsForms(forms, inv) {
			return i
		}
	}

	return -1
}

// Tree is the collection of branches plus generation parameters and caches.
type Tree struct {
	MaxNumSites      int
	MinNumComponents int
	// MaxLength[n] bounds the longest pair of n-site clusters.
	MaxLength []float64
	MinLength float64

	lat      *lattice.Lattice
	prim     *lattice.Structure
	cmp      symcompare.Comparer
	mode     cluster.Mode
	group    symmetry.Group
	phenom   *cluster.Cluster
	branches []*Branch

	index      [][]int
	locate     [][2]int
	norbits    int
	subcluster [][]int

	neighbourLengths []float64

	logger *zap.Logger
}

// New returns an empty tree on lat.
func New(lat *lattice.Lattice, opts ...Option) *Tree {
	t := &Tree{
		lat:              lat,
		MinLength:        DefaultMinLength,
		MinNumComponents: DefaultMinNumComponents,
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Lattice returns the tree's lattice.
func (t *Tree) Lattice() *lattice.Lattice { return t.lat }

// Structure returns the structure of the last generation, or nil.
func (t *Tree) Structure() *lattice.Structure { return t.prim }

// Comparer returns the comparison convention of the last generation.
func (t *Tree) Comparer() symcompare.Comparer { return t.cmp }

// Mode reports whether the tree holds periodic or local clusters.
func (t *Tree) Mode() cluster.Mode { return t.mode }

// Group returns the symmetry group orbits were generated with.
func (t *Tree) Group() symmetry.Group { return t.group }

// Phenomenal returns the phenomenal cluster of a local tree, or nil.
func (t *Tree) Phenomenal() *cluster.Cluster { return t.phenom }

// Size returns the number of branches.
func (t *Tree) Size() int { return len(t.branches) }

// Branch returns branch b.
func (t *Tree) Branch(b int) *Branch { return t.branches[b] }

// BranchSize returns the number of orbits in branch b.
func (t *Tree) BranchSize(b int) int { return t.branches[b].Size() }

// Orbit returns orbit p of branch b.
func (t *Tree) Orbit(b, p int) *Orbit { return t.branches[b].orbits[p] }

// Prototype returns the prototype of orbit (b, p).
func (t *Tree) Prototype(b, p int) *cluster.Cluster { return t.Orbit(b, p).Prototype }

// Equiv returns equivalent k of orbit (b, p).
func (t *Tree) Equiv(b, p, k int) *cluster.Cluster { return t.Orbit(b, p).Equivalents[k] }

// OrbitSize returns the multiplicity of orbit (b, p).
func (t *Tree) OrbitSize(b, p int) int { return t.Orbit(b, p).Size() }

// NumOrbits returns the orbit count recorded by the last UpdateIndex.
func (t *Tree) NumOrbits() int { return t.norbits }

// CountOrbits counts orbits across all branches.
func (t *Tree) CountOrbits() int {
	n := 0
	for _, b := range t.branches {
		n += b.Size()
	}

	return n
}

// Each calls fn for every orbit in branch order.
func (t *Tree) Each(fn func(b, p int, o *Orbit)) {
	for b, br := range t.branches {
		for p, o := range br.orbits {
			fn(b, p, o)
		}
	}
}

// FindInBranch returns the position of the orbit containing c in branch b.
func (t *Tree) FindInBranch(c *cluster.Cluster, b int) (int, bool) {
	if t.cmp == nil || b < 0 || b >= len(t.branches) {
		return -1, false
	}
	p := t.branches[b].find(symcompare.Forms(t.cmp, c), c.Invariants())

	return p, p >= 0
}

// Find returns the linear position of the orbit containing c, counting
// orbits branch by branch. It equals the global index once UpdateIndex ran.
func (t *Tree) Find(c *cluster.Cluster) (int, bool) {
	b := c.Len()
	p, ok := t.FindInBranch(c, b)
	if !ok {
		return -1, false
	}
	for i := 0; i < b; i++ {
		p += t.branches[i].Size()
	}

	return p, true
}

// Contains reports whether some orbit contains c.
func (t *Tree) Contains(c *cluster.Cluster) bool {
	_, ok := t.FindInBranch(c, c.Len())
	return ok
}

func (t *Tree) tol() float64 {
	if t.cmp != nil {
		return t.cmp.Tol()
	}
	if t.prim != nil {
		return t.prim.Tol
	}

	return symmetry.DefaultTol
}

// reset prepares n empty branches and drops the caches.
func (t *Tree) reset(n int) {
	if len(t.branches) > 0 {
		t.logger.Warn("orbitree: overwriting existing tree", zap.Int("branches", len(t.branches)))
	}
	t.branches = make([]*Branch, n)
	for i := range t.branches {
		t.branches[i] = &Branch{}
	}
	t.invalidate()
}

func (t *Tree) invalidate() {
	t.index, t.locate, t.subcluster = nil, nil, nil
	t.norbits = 0
}

func (t *Tree) ensureBranches(n int) {
	for len(t.branches) < n {
		t.branches = append(t.branches, &Branch{})
	}
}

func (t *Tree) bind(prim *lattice.Structure, cmp symcompare.Comparer, mode cluster.Mode, group symmetry.Group) error {
	if prim == nil {
		return fmt.Errorf("orbitree: %w", lattice.ErrNilLattice)
	}
	if t.lat == nil {
		t.lat = prim.Lattice
	}
	if !t.lat.Equal(prim.Lattice, prim.Tol) {
		return ErrLatticeMismatch
	}
	if len(group) == 0 {
		return ErrEmptyGroup
	}
	if err := group.Validate(prim.Tol); err != nil {
		return fmt.Errorf("orbitree: %w", err)
	}
	t.prim, t.cmp, t.mode, t.group = prim, cmp, mode, group

	return nil
}

// addOrbit builds the orbit of c and appends it to branch b.
func (t *Tree) addOrbit(b int, c *cluster.Cluster) (*Orbit, error) {
	o := NewOrbit(c, t.prim, t.cmp)
	if err := o.GetEquivalent(t.group); err != nil {
		return nil, err
	}
	if err := o.GetClusterSymmetry(); err != nil {
		return nil, err
	}
	t.ensureBranches(b + 1)
	t.branches[b].orbits = append(t.branches[b].orbits, o)
	t.logger.Debug("orbitree: new orbit",
		zap.Int("branch", b),
		zap.Int("mult", o.Size()),
		zap.Int("stabilizer", len(o.ClusterGroup)),
		zap.Float64("max_length", o.MaxLength()))

	return o, nil
}

// seedEmpty puts the empty cluster into branch 0.
func (t *Tree) seedEmpty() error {
	_, err := t.addOrbit(0, cluster.New(t.lat))
	return err
}
