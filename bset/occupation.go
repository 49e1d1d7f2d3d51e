package bset

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/orbitree"
)

// OccupationEngine builds products of non-constant site functions. A site
// with m allowed occupants has functions of order 1..m-1; decorated sites
// and sites with a single occupant are constant. Each symmetrically
// distinct order tuple gives one function, the average of its images under
// the prototype's cluster group. Args.SiteBasis picks the site functions
// (see SiteFunctions) that Evaluate multiplies.
type OccupationEngine struct{}

// Monomial is one product term: Orders[i] is the site-function order on
// site i, 0 for the constant function.
type Monomial struct {
	Coeff  float64
	Orders []int
}

// Function is a symmetrized sum of monomials.
type Function []Monomial

// ClusterFunctions is the Functions implementation of OccupationEngine.
type ClusterFunctions struct {
	siteBasis string
	dofs      []int
	funcs     []Function
	// tables[i] is the SiteFunctions table of site i.
	tables [][][]float64
}

var _ Functions = (*ClusterFunctions)(nil)

// Generate implements Engine.
// Complexity: O(T·|G|·n) for T order tuples and cluster group G.
func (OccupationEngine) Generate(o *orbitree.Orbit, args Args) (Functions, error) {
	proto := o.Prototype
	n := proto.Len()
	hi := make([]int, n)
	for i, s := range proto.Sites() {
		hi[i] = maxOrder(s)
	}
	group := o.ClusterGroup
	for _, el := range group {
		if len(el.Perm) != n {
			return nil, fmt.Errorf("%w: cluster group permutation of size %d on %d sites", ErrDoFMismatch, len(el.Perm), n)
		}
	}

	if args.SiteBasis == "" {
		args.SiteBasis = SiteBasisOccupation
	}
	cf := &ClusterFunctions{siteBasis: args.SiteBasis, dofs: make([]int, n), tables: make([][][]float64, n)}
	for i, s := range proto.Sites() {
		cf.dofs[i] = i
		tab, err := SiteFunctions(max(1, len(s.Occupants)), args.SiteBasis)
		if err != nil {
			return nil, err
		}
		cf.tables[i] = tab
	}
	seen := make(map[string]bool)
	t := make([]int, n)
	for i := range t {
		t[i] = min(1, hi[i])
	}
	for ok := true; ok; ok = nextTuple(t, hi) {
		if args.MaxPolyOrder > 0 && order(t) > args.MaxPolyOrder {
			continue
		}
		if seen[tupleKey(t)] {
			continue
		}
		cf.funcs = append(cf.funcs, symmetrize(t, group, seen))
	}

	return cf, nil
}

// maxOrder is the highest site-function order on s.
func maxOrder(s cluster.Site) int {
	if s.IsDecorated() || len(s.Occupants) < 2 {
		return 0
	}

	return len(s.Occupants) - 1
}

// nextTuple advances t lexicographically with t[i] in [1, hi[i]] (or 0 on
// constant sites), last site fastest.
func nextTuple(t, hi []int) bool {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i] < hi[i] {
			t[i]++
			return true
		}
		t[i] = min(1, hi[i])
	}

	return false
}

func order(t []int) int {
	s := 0
	for _, k := range t {
		s += k
	}

	return s
}

func tupleKey(t []int) string {
	var sb strings.Builder
	for i, k := range t {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(k))
	}

	return sb.String()
}

// symmetrize averages t over group, marking every image as seen.
func symmetrize(t []int, group []orbitree.SymElement, seen map[string]bool) Function {
	if len(group) == 0 {
		seen[tupleKey(t)] = true
		return Function{{Coeff: 1, Orders: slices.Clone(t)}}
	}
	counts := make(map[string]int)
	images := make(map[string][]int)
	for _, el := range group {
		img := make([]int, len(t))
		for j := range img {
			img[j] = t[el.Perm[j]]
		}
		k := tupleKey(img)
		counts[k]++
		images[k] = img
	}
	keys := make([]string, 0, len(images))
	for k := range images {
		keys = append(keys, k)
		seen[k] = true
	}
	slices.Sort(keys)

	f := make(Function, 0, len(keys))
	for _, k := range keys {
		f = append(f, Monomial{
			Coeff:  float64(counts[k]) / float64(len(group)),
			Orders: images[k],
		})
	}

	return f
}

// Size implements Functions.
func (c *ClusterFunctions) Size() int { return len(c.funcs) }

// DoFIDs implements Functions.
func (c *ClusterFunctions) DoFIDs() []int { return slices.Clone(c.dofs) }

// Function returns function i.
func (c *ClusterFunctions) Function(i int) Function { return c.funcs[i] }

// ApplySym implements Functions.
func (c *ClusterFunctions) ApplySym(el orbitree.SymElement) (Functions, error) {
	n := len(c.dofs)
	if len(el.Perm) != n {
		return nil, fmt.Errorf("%w: permutation of size %d on %d sites", ErrDoFMismatch, len(el.Perm), n)
	}
	out := &ClusterFunctions{
		siteBasis: c.siteBasis,
		dofs:      make([]int, n),
		funcs:     make([]Function, len(c.funcs)),
		tables:    make([][][]float64, n),
	}
	for i, from := range el.Perm {
		out.dofs[i] = c.dofs[from]
		out.tables[i] = c.tables[from]
	}
	for fi, f := range c.funcs {
		g := make(Function, len(f))
		for mi, m := range f {
			orders := make([]int, n)
			for i, from := range el.Perm {
				orders[i] = m.Orders[from]
			}
			g[mi] = Monomial{Coeff: m.Coeff, Orders: orders}
		}
		out.funcs[fi] = g
	}

	return out, nil
}

// Evaluate returns the value of every function when site i holds occupant
// occ[i]. Constant factors are 1 whatever the occupant.
// Complexity: O(terms·n).
func (c *ClusterFunctions) Evaluate(occ []int) ([]float64, error) {
	n := len(c.dofs)
	if len(occ) != n {
		return nil, fmt.Errorf("%w: %d occupations on %d sites", ErrDoFMismatch, len(occ), n)
	}
	for i, s := range occ {
		if s < 0 || s >= len(c.tables[i][0]) {
			return nil, fmt.Errorf("%w: occupant %d on site %d", ErrDoFMismatch, s, i)
		}
	}
	out := make([]float64, len(c.funcs))
	for fi, f := range c.funcs {
		for _, m := range f {
			v := m.Coeff
			for i, k := range m.Orders {
				v *= c.tables[i][k][occ[i]]
			}
			out[fi] += v
		}
	}

	return out, nil
}

// UpdateDoFIDs implements Functions. Every current id must appear in from.
func (c *ClusterFunctions) UpdateDoFIDs(from, to []int) error {
	if len(from) != len(to) {
		return fmt.Errorf("%w: %d old ids, %d new ids", ErrDoFMismatch, len(from), len(to))
	}
	rename := make(map[int]int, len(from))
	for j, id := range from {
		if prev, ok := rename[id]; ok && prev != to[j] {
			return fmt.Errorf("%w: id %d renamed to both %d and %d", ErrDoFMismatch, id, prev, to[j])
		}
		rename[id] = to[j]
	}
	dofs := make([]int, len(c.dofs))
	for i, id := range c.dofs {
		r, ok := rename[id]
		if !ok {
			return fmt.Errorf("%w: id %d has no replacement", ErrDoFMismatch, id)
		}
		dofs[i] = r
	}
	c.dofs = dofs

	return nil
}

// String lists one function per line, e.g. "F1 = 0.5*occ1[0]*occ2[3] + ...".
func (c *ClusterFunctions) String() string {
	prefix := "occ"
	if c.siteBasis == SiteBasisChebychev {
		prefix = "phi"
	}
	var sb strings.Builder
	for fi, f := range c.funcs {
		fmt.Fprintf(&sb, "F%d =", fi)
		for mi, m := range f {
			if mi > 0 {
				sb.WriteString(" +")
			}
			fmt.Fprintf(&sb, " %.6g", m.Coeff)
			for i, k := range m.Orders {
				if k > 0 {
					fmt.Fprintf(&sb, "*%s%d[%d]", prefix, k, c.dofs[i])
				}
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
