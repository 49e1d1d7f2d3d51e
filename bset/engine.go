package bset

import (
	"fmt"

	"github.com/katalvlaran/clusterography/orbitree"
)

// Engine generates the basis functions of an orbit prototype. The returned
// functions use the prototype's site positions 0..n-1 as degree-of-freedom
// ids.
type Engine interface {
	Generate(o *orbitree.Orbit, args Args) (Functions, error)
}

// Functions is a set of cluster functions bound to one cluster.
type Functions interface {
	fmt.Stringer
	// Size returns the number of functions.
	Size() int
	// DoFIDs returns the degree-of-freedom id of each site.
	DoFIDs() []int
	// ApplySym returns the functions carried by el: the factor on source
	// site el.Perm[i] moves to target site i.
	ApplySym(el orbitree.SymElement) (Functions, error)
	// UpdateDoFIDs renames every id from[j] to to[j].
	UpdateDoFIDs(from, to []int) error
}
