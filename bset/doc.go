// Package bset attaches basis functions to the orbits of an orbitree.Tree.
//
// A basis Engine generates the functions of each orbit prototype. Propagate
// then carries them to every equivalent: the equivalence-map element moves
// each factor to the equivalent's matching site, and the degree-of-freedom
// ids are rewritten from the prototype's neighbor-list slots to the
// equivalent's own.
//
// OccupationEngine is the reference engine: products of non-constant site
// occupation functions, symmetrized over the prototype's cluster group.
//
// Example:
//
//	nl, _ := bset.BuildNeighborList(tree)
//	args, _ := bset.DecodeArgs(map[string]any{"max_poly_order": 3})
//	err := bset.Propagate(ctx, tree, nl, bset.OccupationEngine{}, args, bset.Options{})
package bset
