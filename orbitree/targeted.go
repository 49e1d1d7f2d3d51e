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

// GenerateCount grows a periodic tree whose pair branch holds at least
// maxClust orbits. The candidate grid starts at a radius estimated from the
// basis size and widens by one shortest lattice vector until enough pair
// orbits are found. Pair orbits beyond the maxClust-th that are longer than
// it are dropped. Larger clusters use the longest pair found as cutoff, and
// MaxLength is rewritten to the cutoffs actually used.
func (t *Tree) GenerateCount(prim *lattice.Structure, maxClust int) error {
	if maxClust < 1 {
		return fmt.Errorf("%w: pair orbit count %d", ErrBadCutoffs, maxClust)
	}
	if err := t.prepareTargeted(prim); err != nil {
		return err
	}
	basis := t.basisSites()
	nb := float64(len(basis))
	if nb == 0 {
		return fmt.Errorf("%w: no basis site has %d components", ErrBranchExhausted, t.MinNumComponents)
	}
	est := (float64(maxClust)-nb*(nb-1)/2)/(nb*(2*nb-1)) + 1
	cellSize := math.Ceil(math.Cbrt(math.Max(est, 1)))

	w, err := t.startTargeted(basis, cellSize)
	if err != nil {
		return err
	}
	for {
		if _, err := t.growFrom(2, w.grid, w.cursor, t.minLengthOnly); err != nil {
			return err
		}
		if t.branches[2].Size() >= maxClust {
			break
		}
		w.widen(t)
	}

	maxClustLength := 0.0
	for _, o := range t.branches[2].orbits {
		maxClustLength = math.Max(maxClustLength, o.MaxLength())
	}
	t.SortBranches()
	pairs := t.branches[2].orbits
	cutoff := pairs[maxClust-1].MaxLength()
	n := maxClust
	for n < len(pairs) && pairs[n].MaxLength() <= cutoff+t.tol() {
		n++
	}
	t.branches[2].orbits = pairs[:n]
	t.MaxLength[2] = cutoff
	for np := 3; np <= t.MaxNumSites; np++ {
		t.MaxLength[np] = maxClustLength
	}
	t.logger.Info("orbitree: pair cutoff selected",
		zap.Float64("cutoff", cutoff),
		zap.Int("pair_orbits", n),
		zap.Float64("cluster_cutoff", maxClustLength))

	return t.finishTargeted(w.grid, func(np int, c *cluster.Cluster) bool {
		return c.MaxLength() < t.MaxLength[np] && c.MinLength() > t.MinLength
	})
}

// GenerateNeighbour grows a periodic tree from neighbour-shell cutoffs:
// shells[0] is the number of pair shells to keep and shells[n-2] (n ≥ 3) the
// shell whose length bounds n-site clusters. NeighbourLengths reports the
// kept shell lengths afterwards.
func (t *Tree) GenerateNeighbour(prim *lattice.Structure, shells []int) error {
	if err := t.prepareTargeted(prim); err != nil {
		return err
	}
	if len(shells) < t.MaxNumSites-1 {
		return fmt.Errorf("%w: %d shells for %d-site clusters", ErrBadCutoffs, len(shells), t.MaxNumSites)
	}
	for i, s := range shells {
		if s < 1 || (i > 0 && s > shells[0]) {
			return fmt.Errorf("%w: shells[%d] = %d", ErrBadCutoffs, i, s)
		}
	}
	basis := t.basisSites()
	if len(basis) == 0 {
		return fmt.Errorf("%w: no basis site has %d components", ErrBranchExhausted, t.MinNumComponents)
	}

	w, err := t.startTargeted(basis, 1)
	if err != nil {
		return err
	}
	for {
		if _, err := t.growFrom(2, w.grid, w.cursor, t.minLengthOnly); err != nil {
			return err
		}
		if len(t.shellLengths()) >= shells[0] {
			break
		}
		w.widen(t)
	}

	t.SortBranches()
	lengths := t.shellLengths()[:shells[0]]
	cutoff := lengths[len(lengths)-1] + t.tol()
	pairs := t.branches[2].orbits
	n := 0
	for n < len(pairs) && pairs[n].MaxLength() <= cutoff {
		n++
	}
	t.branches[2].orbits = pairs[:n]
	t.neighbourLengths = lengths
	t.MaxLength[2] = lengths[len(lengths)-1]
	for np := 3; np <= t.MaxNumSites; np++ {
		t.MaxLength[np] = lengths[shells[np-2]-1]
	}
	t.logger.Info("orbitree: neighbour shells selected",
		zap.Float64s("lengths", lengths),
		zap.Int("pair_orbits", n))

	return t.finishTargeted(w.grid, func(np int, c *cluster.Cluster) bool {
		return c.MaxLength() <= t.MaxLength[np]+t.tol() && c.MinLength() > t.MinLength
	})
}

// NeighbourLengths returns the shell lengths kept by GenerateNeighbour.
func (t *Tree) NeighbourLengths() []float64 { return t.neighbourLengths }

// shellLengths returns the distinct pair lengths of branch 2 in ascending order.
func (t *Tree) shellLengths() []float64 {
	var out []float64
	for _, o := range t.branches[2].orbits {
		l := o.MaxLength()
		dup := false
		for _, x := range out {
			if math.Abs(x-l) <= t.tol() {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	slices.Sort(out)

	return out
}

func (t *Tree) minLengthOnly(c *cluster.Cluster) bool {
	return c.MinLength() > t.MinLength
}

func (t *Tree) prepareTargeted(prim *lattice.Structure) error {
	if t.MaxNumSites < 2 {
		return fmt.Errorf("%w: targeted growth needs max_num_sites >= 2, have %d", ErrBadCutoffs, t.MaxNumSites)
	}
	for len(t.MaxLength) < t.MaxNumSites+1 {
		t.MaxLength = append(t.MaxLength, 0)
	}
	if err := t.checkCutoffs(); err != nil {
		return err
	}
	if err := t.bind(prim, symcompare.NewPrimPeriodic(prim.Tol), cluster.Periodic, prim.FactorGroup); err != nil {
		return err
	}
	t.phenom = nil
	t.neighbourLengths = nil

	return nil
}

// widening tracks the growing candidate grid of targeted generation.
type widening struct {
	basis    []cluster.Site
	grid     []cluster.Site
	cursor   map[*Orbit]int
	cellSize float64
	step     int
	minR     float64
}

func (t *Tree) startTargeted(basis []cluster.Site, cellSize float64) (*widening, error) {
	maxR := cellSize * t.lat.MinLength()
	w := &widening{
		basis:    basis,
		grid:     t.grid(basis, maxR, 0),
		cursor:   make(map[*Orbit]int),
		cellSize: cellSize,
		minR:     maxR,
	}
	t.reset(t.MaxNumSites + 1)
	if err := t.seedEmpty(); err != nil {
		return nil, err
	}
	if _, err := t.growBranch(1, w.grid, func(*cluster.Cluster) bool { return true }); err != nil {
		return nil, err
	}
	if t.branches[1].Size() == 0 {
		return nil, fmt.Errorf("%w: no point clusters", ErrBranchExhausted)
	}

	return w, nil
}

// widen appends the next shell of candidate sites.
func (w *widening) widen(t *Tree) {
	w.step++
	maxR := (w.cellSize + float64(w.step)) * t.lat.MinLength()
	shell := t.grid(w.basis, maxR, w.minR)
	w.grid = append(w.grid, shell...)
	w.minR = maxR
	t.logger.Debug("orbitree: widened candidate grid",
		zap.Float64("radius", maxR),
		zap.Int("grid_sites", len(w.grid)))
}

// finishTargeted grows branches 3..MaxNumSites and rebuilds the index.
func (t *Tree) finishTargeted(grid []cluster.Site, accept func(np int, c *cluster.Cluster) bool) error {
	for np := 3; np <= t.MaxNumSites; np++ {
		if t.branches[np-1].Size() == 0 {
			return fmt.Errorf("%w: branch %d is empty, cannot grow %d-site clusters", ErrBranchExhausted, np-1, np)
		}
		if _, err := t.growBranch(np, grid, func(c *cluster.Cluster) bool { return accept(np, c) }); err != nil {
			return err
		}
	}
	t.SortBranches()
	t.UpdateIndex()

	return nil
}
