// Package: clusterography/orbitree
//
// orbit.go - one orbit: prototype, equivalents and the elements mapping
// the first onto the others.
//
// Contract:
//   • Equivalents[k] = Prepare(EquivalenceMap[k].Op applied to Prototype).
//   • Equivalents are pairwise distinct under the orbit's comparer.
//   • ClusterGroup lists each stabilizing op once, with its site permutation.

package orbitree

import (
	"fmt"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// SymElement is a group element together with the site permutation it
// induces: the target cluster's site i is Op applied to source site Perm[i].
type SymElement struct {
	OpIndex int
	Op      symmetry.Op
	Perm    symmetry.Permutation
}

// ClusterBasis is an attached set of basis functions; see package bset.
type ClusterBasis interface {
	Size() int
}

// Orbit is the set of clusters equivalent to Prototype under a group.
type Orbit struct {
	Prototype   *cluster.Cluster
	Equivalents []*cluster.Cluster
	// EquivalenceMap[k] maps Prototype onto Equivalents[k].
	EquivalenceMap []SymElement
	// ClusterGroup is the stabilizer of Prototype.
	ClusterGroup []SymElement

	Basis      ClusterBasis
	EquivBases []ClusterBasis

	index int
	inv   cluster.Invariants
	group symmetry.Group
	prim  *lattice.Structure
	cmp   symcompare.Comparer
}

// NewOrbit returns an orbit whose prototype is the canonical form of proto.
// Cached lengths of proto are kept. Equivalents are empty until GetEquivalent.
func NewOrbit(proto *cluster.Cluster, prim *lattice.Structure, cmp symcompare.Comparer) *Orbit {
	p := symcompare.Canonical(cmp, proto).Cluster
	p.SetLengths(proto.MinLength(), proto.MaxLength())

	return &Orbit{
		Prototype: p,
		index:     -1,
		inv:       p.Invariants(),
		prim:      prim,
		cmp:       cmp,
	}
}

// Index returns the global orbit id, or -1 before the tree assigned one.
func (o *Orbit) Index() int { return o.index }

// Size returns the number of equivalents (the multiplicity).
func (o *Orbit) Size() int { return len(o.Equivalents) }

// Comparer returns the convention used to compare clusters of the orbit.
func (o *Orbit) Comparer() symcompare.Comparer { return o.cmp }

// MinLength returns the prototype's shortest pair length.
func (o *Orbit) MinLength() float64 { return o.Prototype.MinLength() }

// MaxLength returns the prototype's longest pair length.
func (o *Orbit) MaxLength() float64 { return o.Prototype.MaxLength() }

// GetEquivalent applies every element of group to the prototype and keeps
// the distinct prepared images. The identity is applied first, so
// Equivalents[0] is the prototype.
// Complexity: O(|G|·m) comparisons for multiplicity m.
func (o *Orbit) GetEquivalent(group symmetry.Group) error {
	tol := o.cmp.Tol()
	if len(group) == 0 {
		return ErrEmptyGroup
	}
	id := group.IdentityIndex(tol)
	if id < 0 {
		return fmt.Errorf("orbitree: %w", symmetry.ErrNoIdentity)
	}
	order := make([]int, 0, len(group))
	order = append(order, id)
	for i := range group {
		if i != id {
			order = append(order, i)
		}
	}

	o.group = group
	o.Equivalents = o.Equivalents[:0]
	o.EquivalenceMap = o.EquivalenceMap[:0]
	for _, gi := range order {
		img, err := o.Prototype.Apply(group[gi], o.prim)
		if err != nil {
			return fmt.Errorf("orbitree: equivalent under op %d: %w", gi, err)
		}
		// anchored on the image of prototype site 0
		pr := symcompare.Prepare(o.cmp, img)
		if o.indexOfEquivalent(pr.Cluster) >= 0 {
			continue
		}
		o.Equivalents = append(o.Equivalents, pr.Cluster)
		// the anchor shift is part of the element that produced it
		o.EquivalenceMap = append(o.EquivalenceMap, SymElement{
			OpIndex: gi,
			Op:      group[gi].Translate(pr.Translation),
			Perm:    pr.Perm,
		})
	}

	return nil
}

// GetClusterSymmetry collects the group elements that map the prototype
// onto itself, using the group of the last GetEquivalent call.
func (o *Orbit) GetClusterSymmetry() error {
	o.ClusterGroup = o.ClusterGroup[:0]
	for gi, g := range o.group {
		img, err := o.Prototype.Apply(g, o.prim)
		if err != nil {
			return fmt.Errorf("orbitree: cluster symmetry under op %d: %w", gi, err)
		}
		for _, f := range symcompare.Forms(o.cmp, img) {
			if symcompare.Equal(o.cmp, f.Cluster, o.Prototype) {
				o.ClusterGroup = append(o.ClusterGroup, SymElement{
					OpIndex: gi,
					Op:      g.Translate(f.Translation),
					Perm:    f.Perm,
				})
				break
			}
		}
	}

	return nil
}

// Contains reports whether test is one of the orbit's clusters, regardless
// of its site order or translation.
func (o *Orbit) Contains(test *cluster.Cluster) bool {
	return o.containsForms(symcompare.Forms(o.cmp, test), test.Invariants())
}

func (o *Orbit) containsForms(forms []symcompare.Prepared, inv cluster.Invariants) bool {
	// invariants are only a shortcut when preparing keeps distances
	if !symcompare.FoldsSites(o.cmp) && cluster.CompareInvariants(inv, o.inv, o.cmp.Tol()) != 0 {
		return false
	}
	for _, f := range forms {
		if o.indexOfEquivalent(f.Cluster) >= 0 {
			return true
		}
	}

	return false
}

func (o *Orbit) indexOfEquivalent(c *cluster.Cluster) int {
	for k, e := range o.Equivalents {
		if symcompare.Equal(o.cmp, e, c) {
			return k
		}
	}

	return -1
}
