// Package: clusterography/cluster
//
// cluster.go - ordered site lists and the in-place edits growth relies on.
//
// Contract:
//   - Append, Pop and Translate mutate in place and leave the cached
//     lengths alone; CalcProperties or SetLengths refresh them.
//   - Reorder keeps a hop permutation describing the same physical hop.

package cluster

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symmetry"
)

// Mode selects how a cluster is re-anchored after growth.
type Mode int

const (
	// Periodic clusters are translated so that site 0 lies in the origin cell.
	Periodic Mode = iota
	// Local clusters are fixed in space around a phenomenal cluster.
	Local
)

func (m Mode) String() string {
	if m == Local {
		return "local"
	}
	return "periodic"
}

// Cluster is an ordered list of sites of one lattice, with cached
// min/max pair lengths and an optional hop permutation.
type Cluster struct {
	lat   *lattice.Lattice
	sites []Site
	hop   symmetry.Permutation

	minLength float64
	maxLength float64
}

// New returns an empty cluster on lat.
func New(lat *lattice.Lattice) *Cluster {
	return &Cluster{lat: lat}
}

// FromSites builds a cluster holding copies of sites.
func FromSites(lat *lattice.Lattice, sites ...Site) *Cluster {
	c := &Cluster{lat: lat, sites: make([]Site, 0, len(sites))}
	for _, s := range sites {
		c.Append(s)
	}

	return c
}

// Lattice returns the lattice the cluster lives on.
func (c *Cluster) Lattice() *lattice.Lattice { return c.lat }

// Len returns the number of sites.
func (c *Cluster) Len() int { return len(c.sites) }

// Site returns site i.
func (c *Cluster) Site(i int) Site { return c.sites[i] }

// Sites exposes the site slice; callers must not modify it.
func (c *Cluster) Sites() []Site { return c.sites }

// SetSite replaces site i.
func (c *Cluster) SetSite(i int, s Site) { c.sites[i] = s }

// Hop returns the hop permutation or nil for ordinary clusters.
func (c *Cluster) Hop() symmetry.Permutation { return c.hop }

// SetHop attaches a hop permutation: the occupant of site i moves to site p[i].
func (c *Cluster) SetHop(p symmetry.Permutation) error {
	if p == nil {
		c.hop = nil
		return nil
	}
	if len(p) != len(c.sites) {
		return fmt.Errorf("%w: %d entries for %d sites", ErrBadHop, len(p), len(c.sites))
	}
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return fmt.Errorf("%w: %v", ErrBadHop, p)
		}
		seen[v] = true
	}
	c.hop = p.Clone()

	return nil
}

// Append adds a site at the end. Amortized O(1).
func (c *Cluster) Append(s Site) {
	c.sites = append(c.sites, s)
}

// Pop removes and returns the last site.
func (c *Cluster) Pop() Site {
	s := c.sites[len(c.sites)-1]
	c.sites = c.sites[:len(c.sites)-1]

	return s
}

// Clone returns a deep copy that shares only the lattice.
func (c *Cluster) Clone() *Cluster {
	out := &Cluster{
		lat:       c.lat,
		sites:     make([]Site, len(c.sites)),
		hop:       c.hop.Clone(),
		minLength: c.minLength,
		maxLength: c.maxLength,
	}
	copy(out.sites, c.sites)

	return out
}

// Translate shifts every site by a lattice vector.
func (c *Cluster) Translate(t [3]int) {
	if t == ([3]int{}) {
		return
	}
	for i := range c.sites {
		c.sites[i] = c.sites[i].Translate(t)
	}
}

// Within re-anchors the cluster for the given mode and returns the applied
// translation. Periodic mode moves site 0 into the origin cell; Local mode
// and empty clusters are left untouched.
func (c *Cluster) Within(mode Mode, tol float64) [3]int {
	if mode == Local || len(c.sites) == 0 {
		return [3]int{}
	}
	cell := c.sites[0].Cell(tol)
	t := [3]int{-cell[0], -cell[1], -cell[2]}
	c.Translate(t)

	return t
}

// CalcProperties recomputes MinLength (shortest pair among the cluster's own
// sites) and MaxLength (longest pair, also counting distances to the sites
// of phenom when it is non-nil).
// Complexity: O(n² + n·m).
func (c *Cluster) CalcProperties(phenom *Cluster) {
	c.minLength, c.maxLength = 0, 0
	n := len(c.sites)
	if n >= 2 {
		c.minLength = math.Inf(1)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := c.lat.Dist(c.sites[i].Frac, c.sites[j].Frac)
			c.minLength = math.Min(c.minLength, d)
			c.maxLength = math.Max(c.maxLength, d)
		}
		if phenom == nil {
			continue
		}
		for _, p := range phenom.sites {
			c.maxLength = math.Max(c.maxLength, c.lat.Dist(c.sites[i].Frac, p.Frac))
		}
	}
}

// MinLength returns the cached shortest pair distance.
func (c *Cluster) MinLength() float64 { return c.minLength }

// MaxLength returns the cached longest pair distance.
func (c *Cluster) MaxLength() float64 { return c.maxLength }

// SetLengths overrides the cached lengths, e.g. when restoring a record.
func (c *Cluster) SetLengths(minLength, maxLength float64) {
	c.minLength, c.maxLength = minLength, maxLength
}

// Distances returns all pair distances, longest first.
func (c *Cluster) Distances() []float64 {
	n := len(c.sites)
	out := make([]float64, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, c.lat.Dist(c.sites[i].Frac, c.sites[j].Frac))
		}
	}
	slices.Sort(out)
	slices.Reverse(out)

	return out
}

// Invariants returns the symmetry-invariant signature of the cluster.
func (c *Cluster) Invariants() Invariants {
	return Invariants{Size: len(c.sites), Distances: c.Distances()}
}

// SortPermutation returns p such that sites[p[0]], sites[p[1]], ... is sorted
// by CompareSites. Ties keep their relative order.
func (c *Cluster) SortPermutation(tol float64) symmetry.Permutation {
	p := symmetry.IdentityPermutation(len(c.sites))
	slices.SortStableFunc(p, func(a, b int) int {
		return CompareSites(c.sites[a], c.sites[b], tol)
	})

	return p
}

// Sort orders the sites canonically and returns the permutation applied.
func (c *Cluster) Sort(tol float64) symmetry.Permutation {
	p := c.SortPermutation(tol)
	c.Reorder(p)

	return p
}

// Reorder rearranges sites so that new[i] = old[p[i]]. A hop permutation is
// conjugated so that it still describes the same physical hop.
func (c *Cluster) Reorder(p symmetry.Permutation) {
	sites := make([]Site, len(c.sites))
	for i, from := range p {
		sites[i] = c.sites[from]
	}
	c.sites = sites
	if c.hop == nil {
		return
	}
	inv := p.Inverse()
	hop := make(symmetry.Permutation, len(c.hop))
	for i, from := range p {
		hop[i] = inv[c.hop[from]]
	}
	c.hop = hop
}

// Apply returns the image of c under op. Each image site is resolved to its
// sublattice in prim; decorations follow the occupant name.
// Complexity: O(n·len(prim.Basis)).
func (c *Cluster) Apply(op symmetry.Op, prim *lattice.Structure) (*Cluster, error) {
	out := &Cluster{
		lat:       c.lat,
		sites:     make([]Site, len(c.sites)),
		hop:       c.hop.Clone(),
		minLength: c.minLength,
		maxLength: c.maxLength,
	}
	for i, s := range c.sites {
		b, cell, ok := prim.FindSite(op.Apply(s.Frac))
		if !ok {
			return nil, fmt.Errorf("%w: %v under %s", ErrSiteNotFound, s.Frac, op.Label)
		}
		img := StructureSite(prim, b, cell)
		if s.IsDecorated() {
			img.Occupation = slices.Index(img.Occupants, s.Occupant())
			if img.Occupation < 0 {
				return nil, fmt.Errorf("%w: %s on sublattice %d", ErrOccupantNotFound, s.Occupant(), b)
			}
		}
		out.sites[i] = img
	}

	return out, nil
}

// Decorate returns a copy with site i occupied by Occupants[occ[i]].
func (c *Cluster) Decorate(occ []int) (*Cluster, error) {
	if len(occ) != len(c.sites) {
		return nil, fmt.Errorf("%w: %d values for %d sites", ErrBadDecoration, len(occ), len(c.sites))
	}
	out := c.Clone()
	for i, o := range occ {
		if o < 0 || o >= len(out.sites[i].Occupants) {
			return nil, fmt.Errorf("%w: occupant %d on site %d", ErrBadDecoration, o, i)
		}
		out.sites[i].Occupation = o
	}

	return out, nil
}

// Occupations returns the decoration of every site (-1 where undecorated).
func (c *Cluster) Occupations() []int {
	out := make([]int, len(c.sites))
	for i, s := range c.sites {
		out[i] = s.Occupation
	}

	return out
}

// IndexOf returns the index of the site at fractional coordinate f or -1.
func (c *Cluster) IndexOf(f [3]float64, tol float64) int {
	for i, s := range c.sites {
		if math.Abs(s.Frac[0]-f[0]) <= tol && math.Abs(s.Frac[1]-f[1]) <= tol && math.Abs(s.Frac[2]-f[2]) <= tol {
			return i
		}
	}

	return -1
}

func (c *Cluster) String() string {
	var b strings.Builder
	for i, s := range c.sites {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(strings.TrimSpace(s.String()))
	}
	if c.hop != nil {
		fmt.Fprintf(&b, " hop %v", []int(c.hop))
	}

	return b.String()
}
