package orbitree

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/clusterography/cluster"
)

// PrintProto writes every orbit's prototype (the CLUST listing).
func (t *Tree) PrintProto(w io.Writer) error {
	return t.print(w, false)
}

// PrintFull writes every equivalent of every orbit (the FCLUST listing).
func (t *Tree) PrintFull(w io.Writer) error {
	return t.print(w, true)
}

func (t *Tree) print(w io.Writer, full bool) error {
	if !t.IndexValid() {
		return ErrStaleIndex
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "COORD_MODE = Direct\n\n")
	for b, br := range t.branches {
		if br.Size() == 0 {
			continue
		}
		fmt.Fprintf(bw, "** Branch %d ** \n", b)
		for p, o := range br.orbits {
			g := t.index[b][p]
			fmt.Fprintf(bw, "      ** %d of %d Orbits **  Orbit: %d %d  Points: %d  Mult: %d  MinLength: %.5f  MaxLength: %.5f\n",
				g, t.norbits, b, p, o.Prototype.Len(), o.Size(), o.MinLength(), o.MaxLength())
			if full {
				for k, e := range o.Equivalents {
					fmt.Fprintf(bw, "            %d of %d Equivalent Clusters in Orbit %d\n", k, o.Size(), g)
					writeSites(bw, e)
				}
			} else if o.Size() > 0 {
				fmt.Fprintf(bw, "            Prototype of %d Equivalent Clusters in Orbit %d\n", o.Size(), g)
				writeSites(bw, o.Prototype)
			}
			fmt.Fprintln(bw)
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func writeSites(w io.Writer, c *cluster.Cluster) {
	for _, s := range c.Sites() {
		fmt.Fprintf(w, "                  %s\n", s)
	}
	if h := c.Hop(); h != nil {
		fmt.Fprintf(w, "                  hop:")
		for _, to := range h {
			fmt.Fprintf(w, " %d", to)
		}
		fmt.Fprintln(w)
	}
}

// PrintECIIn writes the flat eci.in table: label, weight, multiplicity,
// size, max length and hierarchy (0 for the empty cluster, then the
// subcluster ids). Requires UpdateIndex and UpdateHierarchy.
func (t *Tree) PrintECIIn(w io.Writer) error {
	if !t.HierarchyValid() {
		return ErrStaleIndex
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-8s%-8s%-8s%-8s%-12s%-8s\n", "label", "weight", "mult", "size", "length", "hierarchy")
	for b, br := range t.branches {
		for p, o := range br.orbits {
			g := t.index[b][p]
			fmt.Fprintf(bw, "%-8d%-8d%-8d%-8d%-12.7f%-8d", g, 0, o.Size(), o.Prototype.Len(), o.MaxLength(), 0)
			for _, s := range t.subcluster[g] {
				fmt.Fprintf(bw, "%-8d", s)
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}
