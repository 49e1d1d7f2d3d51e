package bset

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/orbitree"
)

// UnitCellCoord names a site by sublattice and unit cell.
type UnitCellCoord struct {
	Sublattice int
	Cell       [3]int
}

func (u UnitCellCoord) String() string {
	return fmt.Sprintf("%d:[%d %d %d]", u.Sublattice, u.Cell[0], u.Cell[1], u.Cell[2])
}

func compareCoords(a, b UnitCellCoord) int {
	if c := cmp.Compare(norm2(a.Cell), norm2(b.Cell)); c != 0 {
		return c
	}
	for i := range a.Cell {
		if c := cmp.Compare(a.Cell[i], b.Cell[i]); c != 0 {
			return c
		}
	}

	return cmp.Compare(a.Sublattice, b.Sublattice)
}

func norm2(u [3]int) int { return u[0]*u[0] + u[1]*u[1] + u[2]*u[2] }

// NeighborList assigns a stable index to every site a set of clusters
// touches. Coordinates are ordered by cell distance from the origin, then
// cell, then sublattice, so the origin-cell sites come first.
type NeighborList struct {
	coords []UnitCellCoord
	index  map[UnitCellCoord]int
	tol    float64
}

// NewNeighborList indexes coords, dropping duplicates.
func NewNeighborList(coords []UnitCellCoord, tol float64) *NeighborList {
	cs := slices.Clone(coords)
	slices.SortFunc(cs, compareCoords)
	cs = slices.Compact(cs)
	nl := &NeighborList{coords: cs, index: make(map[UnitCellCoord]int, len(cs)), tol: tol}
	for i, u := range cs {
		nl.index[u] = i
	}

	return nl
}

// BuildNeighborList collects the sites of every equivalent in tree, plus
// the phenomenal cluster of a local tree.
func BuildNeighborList(tree *orbitree.Tree) (*NeighborList, error) {
	if tree.Comparer() == nil {
		return nil, fmt.Errorf("bset: %w", orbitree.ErrUngenerated)
	}
	tol := tree.Comparer().Tol()
	var coords []UnitCellCoord
	add := func(c *cluster.Cluster) {
		for _, s := range c.Sites() {
			coords = append(coords, UnitCellCoord{Sublattice: s.Sublattice, Cell: s.Cell(tol)})
		}
	}
	tree.Each(func(_, _ int, o *orbitree.Orbit) {
		for _, e := range o.Equivalents {
			add(e)
		}
	})
	if p := tree.Phenomenal(); p != nil {
		add(p)
	}

	return NewNeighborList(coords, tol), nil
}

// Len returns the number of indexed sites.
func (nl *NeighborList) Len() int { return len(nl.coords) }

// Coord returns the site with index i.
func (nl *NeighborList) Coord(i int) UnitCellCoord { return nl.coords[i] }

// Index returns the index of u.
func (nl *NeighborList) Index(u UnitCellCoord) (int, bool) {
	i, ok := nl.index[u]
	return i, ok
}

// DoFIDs returns the neighbor-list index of every site of c.
func (nl *NeighborList) DoFIDs(c *cluster.Cluster) ([]int, error) {
	ids := make([]int, c.Len())
	for i, s := range c.Sites() {
		u := UnitCellCoord{Sublattice: s.Sublattice, Cell: s.Cell(nl.tol)}
		id, ok := nl.index[u]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotInNeighborList, u)
		}
		ids[i] = id
	}

	return ids, nil
}
