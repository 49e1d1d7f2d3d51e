package orbitree

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/symcompare"
	"github.com/katalvlaran/clusterography/symmetry"
)

// ErrBadRecord is returned when a record cannot be turned back into a tree.
var ErrBadRecord = errors.New("orbitree: malformed record")

// Record is the serialized form of a Tree. Caches are stored verbatim; a
// stale index is stored as null.
type Record struct {
	Lattice          [3][3]float64   `json:"lattice"`
	Comparer         string          `json:"comparer"`
	Supercell        *[3][3]int      `json:"supercell,omitempty"`
	Mode             string          `json:"mode"`
	Group            []OpRecord      `json:"group"`
	Phenomenal       *ClusterRecord  `json:"phenomenal,omitempty"`
	Branches         [][]OrbitRecord `json:"branches"`
	MaxNumSites      int             `json:"max_num_sites"`
	MinNumComponents int             `json:"min_num_components"`
	MaxLength        []float64       `json:"max_length"`
	MinLength        float64         `json:"min_length"`
	NeighbourLengths []float64       `json:"neighbour_lengths,omitempty"`
	Index            [][]int         `json:"index"`
	NOrbits          int             `json:"Norbits"`
	Subcluster       [][]int         `json:"subcluster"`
}

// OrbitRecord is one serialized orbit.
type OrbitRecord struct {
	Prototype      ClusterRecord   `json:"prototype"`
	Equivalents    []ClusterRecord `json:"equivalents"`
	EquivalenceMap []ElementRecord `json:"equivalence_map"`
	ClusterGroup   []ElementRecord `json:"cluster_group"`
	MinLength      float64         `json:"min_length"`
	MaxLength      float64         `json:"max_length"`
}

// ClusterRecord lists sites; occupants are restored from the structure.
type ClusterRecord struct {
	Sites []SiteRecord `json:"sites"`
	Hop   []int        `json:"hop,omitempty"`
}

// SiteRecord is one site. Occupation -1 means undecorated.
type SiteRecord struct {
	Coordinate [3]float64 `json:"coordinate"`
	Sublattice int        `json:"sublattice"`
	Occupation int        `json:"occupation"`
}

// OpRecord is a serialized symmetry operation.
type OpRecord struct {
	Rotation    [3][3]float64 `json:"rotation"`
	Translation [3]float64    `json:"translation"`
	Label       string        `json:"label,omitempty"`
}

// ElementRecord is a serialized SymElement.
type ElementRecord struct {
	OpIndex int      `json:"op_index"`
	Op      OpRecord `json:"op"`
	Perm    []int    `json:"perm"`
}

type supercellComparer interface {
	Supercell() *lattice.Supercell
}

// Record returns the serializable form of t.
func (t *Tree) Record() Record {
	rec := Record{
		Lattice:          t.lat.Vectors(),
		MaxNumSites:      t.MaxNumSites,
		MinNumComponents: t.MinNumComponents,
		MaxLength:        append([]float64{}, t.MaxLength...),
		MinLength:        t.MinLength,
		NeighbourLengths: slices.Clone(t.neighbourLengths),
		Mode:             t.mode.String(),
		NOrbits:          t.norbits,
	}
	if t.cmp != nil {
		rec.Comparer = t.cmp.Name()
		if sc, ok := t.cmp.(supercellComparer); ok {
			m := sc.Supercell().T
			rec.Supercell = &m
		}
	}
	for _, op := range t.group {
		rec.Group = append(rec.Group, opRecord(op))
	}
	if t.phenom != nil {
		pr := clusterRecord(t.phenom)
		rec.Phenomenal = &pr
	}
	rec.Branches = make([][]OrbitRecord, len(t.branches))
	for b, br := range t.branches {
		rec.Branches[b] = make([]OrbitRecord, 0, br.Size())
		for _, o := range br.orbits {
			rec.Branches[b] = append(rec.Branches[b], orbitRecord(o))
		}
	}
	if t.IndexValid() {
		rec.Index = cloneRows(t.index)
		if t.HierarchyValid() {
			rec.Subcluster = cloneRows(t.subcluster)
		}
	}

	return rec
}

// Save writes t as indented JSON.
func (t *Tree) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(t.Record())
}

// Load reads a tree saved by Save. Occupants are resolved from prim, whose
// lattice must match the recorded one.
func Load(r io.Reader, prim *lattice.Structure, opts ...Option) (*Tree, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}

	return FromRecord(rec, prim, opts...)
}

// FromRecord rebuilds a tree from rec; see Load.
func FromRecord(rec Record, prim *lattice.Structure, opts ...Option) (*Tree, error) {
	lat, err := lattice.FromRows(rec.Lattice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	if !lat.Equal(prim.Lattice, prim.Tol) {
		return nil, ErrLatticeMismatch
	}
	t := New(prim.Lattice, opts...)
	t.prim = prim
	t.MaxNumSites = rec.MaxNumSites
	t.MinNumComponents = rec.MinNumComponents
	t.MaxLength = slices.Clone(rec.MaxLength)
	t.MinLength = rec.MinLength
	t.neighbourLengths = slices.Clone(rec.NeighbourLengths)
	if rec.Mode == cluster.Local.String() {
		t.mode = cluster.Local
	}
	if t.cmp, err = comparerFromRecord(rec, prim); err != nil {
		return nil, err
	}
	for _, op := range rec.Group {
		t.group = append(t.group, op.op())
	}
	if rec.Phenomenal != nil {
		if t.phenom, err = t.clusterFromRecord(*rec.Phenomenal); err != nil {
			return nil, err
		}
		t.phenom.CalcProperties(nil)
	}

	t.branches = make([]*Branch, len(rec.Branches))
	for b, orbits := range rec.Branches {
		t.branches[b] = &Branch{}
		for _, or := range orbits {
			o, err := t.orbitFromRecord(or)
			if err != nil {
				return nil, err
			}
			t.branches[b].orbits = append(t.branches[b].orbits, o)
		}
	}

	if rec.Index != nil {
		t.index = cloneRows(rec.Index)
		t.norbits = rec.NOrbits
		if !t.IndexValid() {
			return nil, fmt.Errorf("%w: index does not match branches", ErrBadRecord)
		}
		t.locate = make([][2]int, t.norbits)
		for b, row := range t.index {
			for p, g := range row {
				if g < 0 || g >= t.norbits {
					return nil, fmt.Errorf("%w: global index %d out of range", ErrBadRecord, g)
				}
				t.locate[g] = [2]int{b, p}
				t.branches[b].orbits[p].index = g
			}
		}
		t.subcluster = cloneRows(rec.Subcluster)
	}

	return t, nil
}

// cloneRows deep-copies a table; nil stays nil.
func cloneRows(rows [][]int) [][]int {
	if rows == nil {
		return nil
	}
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}

	return out
}

func comparerFromRecord(rec Record, prim *lattice.Structure) (symcompare.Comparer, error) {
	tol := prim.Tol
	var scel *lattice.Supercell
	if rec.Supercell != nil {
		var err error
		if scel, err = lattice.NewSupercell(prim.Lattice, *rec.Supercell); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
	}
	switch rec.Comparer {
	case symcompare.NameAperiodic:
		return symcompare.NewAperiodic(tol), nil
	case symcompare.NamePrimPeriodic, "":
		return symcompare.NewPrimPeriodic(tol), nil
	case symcompare.NameScelPeriodic:
		if scel != nil {
			return symcompare.NewScelPeriodic(scel, tol), nil
		}
	case symcompare.NameWithinScel:
		if scel != nil {
			return symcompare.NewWithinScel(scel, tol), nil
		}
	}

	return nil, fmt.Errorf("%w: comparer %q", ErrBadRecord, rec.Comparer)
}

func (t *Tree) orbitFromRecord(or OrbitRecord) (*Orbit, error) {
	proto, err := t.clusterFromRecord(or.Prototype)
	if err != nil {
		return nil, err
	}
	proto.SetLengths(or.MinLength, or.MaxLength)
	o := &Orbit{
		Prototype: proto,
		index:     -1,
		inv:       proto.Invariants(),
		group:     t.group,
		prim:      t.prim,
		cmp:       t.cmp,
	}
	for _, cr := range or.Equivalents {
		c, err := t.clusterFromRecord(cr)
		if err != nil {
			return nil, err
		}
		c.SetLengths(or.MinLength, or.MaxLength)
		o.Equivalents = append(o.Equivalents, c)
	}
	for _, er := range or.EquivalenceMap {
		o.EquivalenceMap = append(o.EquivalenceMap, er.element())
	}
	for _, er := range or.ClusterGroup {
		o.ClusterGroup = append(o.ClusterGroup, er.element())
	}

	return o, nil
}

func (t *Tree) clusterFromRecord(cr ClusterRecord) (*cluster.Cluster, error) {
	c := cluster.New(t.lat)
	for _, sr := range cr.Sites {
		if sr.Sublattice < 0 || sr.Sublattice >= len(t.prim.Basis) {
			return nil, fmt.Errorf("%w: sublattice %d", ErrBadRecord, sr.Sublattice)
		}
		occ := t.prim.Basis[sr.Sublattice].Occupants
		if sr.Occupation >= len(occ) {
			return nil, fmt.Errorf("%w: occupation %d on sublattice %d", ErrBadRecord, sr.Occupation, sr.Sublattice)
		}
		s := cluster.NewSite(sr.Coordinate, sr.Sublattice, occ)
		s.Occupation = sr.Occupation
		c.Append(s)
	}
	if cr.Hop != nil {
		if err := c.SetHop(cr.Hop); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadRecord, err)
		}
	}

	return c, nil
}

func orbitRecord(o *Orbit) OrbitRecord {
	or := OrbitRecord{
		Prototype: clusterRecord(o.Prototype),
		MinLength: o.MinLength(),
		MaxLength: o.MaxLength(),
	}
	for _, e := range o.Equivalents {
		or.Equivalents = append(or.Equivalents, clusterRecord(e))
	}
	for _, el := range o.EquivalenceMap {
		or.EquivalenceMap = append(or.EquivalenceMap, elementRecord(el))
	}
	for _, el := range o.ClusterGroup {
		or.ClusterGroup = append(or.ClusterGroup, elementRecord(el))
	}

	return or
}

func clusterRecord(c *cluster.Cluster) ClusterRecord {
	cr := ClusterRecord{Sites: make([]SiteRecord, 0, c.Len())}
	for _, s := range c.Sites() {
		cr.Sites = append(cr.Sites, SiteRecord{Coordinate: s.Frac, Sublattice: s.Sublattice, Occupation: s.Occupation})
	}
	if h := c.Hop(); h != nil {
		cr.Hop = []int(h.Clone())
	}

	return cr
}

func opRecord(op symmetry.Op) OpRecord {
	return OpRecord{Rotation: op.Rot, Translation: op.Trans, Label: op.Label}
}

func (r OpRecord) op() symmetry.Op {
	return symmetry.Op{Rot: r.Rotation, Trans: r.Translation, Label: r.Label}
}

func elementRecord(el SymElement) ElementRecord {
	return ElementRecord{OpIndex: el.OpIndex, Op: opRecord(el.Op), Perm: []int(el.Perm.Clone())}
}

func (r ElementRecord) element() SymElement {
	return SymElement{OpIndex: r.OpIndex, Op: r.Op.op(), Perm: symmetry.Permutation(r.Perm)}
}
