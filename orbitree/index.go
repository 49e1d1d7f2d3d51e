package orbitree

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/symcompare"
)

// SortBranches orders every branch by max length, then min length (both
// within tolerance), then the prototype order. It invalidates the caches.
func (t *Tree) SortBranches() {
	tol := t.tol()
	for _, b := range t.branches {
		slices.SortStableFunc(b.orbits, func(x, y *Orbit) int {
			if r := cmpTol(x.MaxLength(), y.MaxLength(), tol); r != 0 {
				return r
			}
			if r := cmpTol(x.MinLength(), y.MinLength(), tol); r != 0 {
				return r
			}
			return symcompare.Compare(t.cmp, x.Prototype, y.Prototype)
		})
	}
	t.invalidate()
}

func cmpTol(a, b, tol float64) int {
	switch {
	case a < b-tol:
		return -1
	case a > b+tol:
		return 1
	}
	return 0
}

// UpdateIndex assigns consecutive global ids in branch order.
// Complexity: O(orbits).
func (t *Tree) UpdateIndex() {
	t.index = make([][]int, len(t.branches))
	t.locate = t.locate[:0]
	n := 0
	for b, br := range t.branches {
		t.index[b] = make([]int, br.Size())
		for p, o := range br.orbits {
			t.index[b][p] = n
			o.index = n
			t.locate = append(t.locate, [2]int{b, p})
			n++
		}
	}
	t.norbits = n
	t.subcluster = nil
}

// IndexValid reports whether the index matches the current branches.
func (t *Tree) IndexValid() bool {
	if t.index == nil || len(t.index) != len(t.branches) {
		return false
	}
	for b, br := range t.branches {
		if len(t.index[b]) != br.Size() {
			return false
		}
	}

	return true
}

// Index returns the global id of orbit (b, p).
func (t *Tree) Index(b, p int) (int, error) {
	if !t.IndexValid() {
		return -1, ErrStaleIndex
	}

	return t.index[b][p], nil
}

// Locate returns the (branch, position) of a global id.
func (t *Tree) Locate(global int) (b, p int, err error) {
	if !t.IndexValid() {
		return -1, -1, ErrStaleIndex
	}
	if global < 0 || global >= len(t.locate) {
		return -1, -1, fmt.Errorf("%w: global index %d", ErrNotFound, global)
	}

	return t.locate[global][0], t.locate[global][1], nil
}

// UpdateHierarchy records, for every orbit, the global ids of the orbits
// containing each proper nonempty subset of its prototype, enumerated as
// bitmasks 1..2ⁿ-2. Subsets with no orbit in the tree are recorded as -1.
// Complexity: O(orbits·2ⁿ) lookups.
func (t *Tree) UpdateHierarchy() error {
	if !t.IndexValid() {
		return ErrStaleIndex
	}
	t.subcluster = make([][]int, t.norbits)
	missing := 0
	for g, bp := range t.locate {
		proto := t.branches[bp[0]].orbits[bp[1]].Prototype
		n := proto.Len()
		subs := make([]int, 0)
		if n > 1 {
			for mask := uint(1); mask < (1<<n)-1; mask++ {
				sub := cluster.New(t.lat)
				for i := 0; i < n; i++ {
					if mask&(1<<i) != 0 {
						sub.Append(proto.Site(i))
					}
				}
				id, ok := t.Find(sub)
				if !ok {
					id = -1
					missing++
				}
				subs = append(subs, id)
			}
		}
		t.subcluster[g] = subs
	}
	if missing > 0 {
		t.logger.Warn("orbitree: subclusters missing from tree", zap.Int("count", missing))
	}

	return nil
}

// HierarchyValid reports whether UpdateHierarchy ran after the last index rebuild.
func (t *Tree) HierarchyValid() bool {
	return t.IndexValid() && len(t.subcluster) == t.norbits
}

// Subclusters returns the hierarchy row of a global id.
func (t *Tree) Subclusters(global int) ([]int, error) {
	if !t.HierarchyValid() {
		return nil, ErrStaleIndex
	}
	if global < 0 || global >= len(t.subcluster) {
		return nil, fmt.Errorf("%w: global index %d", ErrNotFound, global)
	}

	return t.subcluster[global], nil
}
