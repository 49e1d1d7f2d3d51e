package bset

import (
	"bufio"
	"fmt"
	"io"

	"github.com/katalvlaran/clusterography/orbitree"
)

// WriteFunctions writes the prototype functions of every orbit of tree,
// in global id order. Orbits without a basis are listed with no functions.
func WriteFunctions(w io.Writer, tree *orbitree.Tree) error {
	if !tree.IndexValid() {
		return ErrStaleIndex
	}
	bw := bufio.NewWriter(w)
	for g := 0; g < tree.NumOrbits(); g++ {
		b, p, err := tree.Locate(g)
		if err != nil {
			return err
		}
		o := tree.Orbit(b, p)
		n := 0
		if o.Basis != nil {
			n = o.Basis.Size()
		}
		fmt.Fprintf(bw, "Orbit %d  Branch %d  Mult %d  Functions %d\n", g, b, o.Size(), n)
		if s, ok := o.Basis.(fmt.Stringer); ok {
			fmt.Fprint(bw, s.String())
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}
