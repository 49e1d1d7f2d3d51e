// SPDX-License-Identifier: MIT

// Package symmetry holds the space-group primitives shared by the rest of
// clusterography: a symmetry operation expressed in fractional coordinates,
// a finite group of such operations, and site permutations.
//
// An Op maps a fractional coordinate f to Rot·f + Trans. Rotations of
// lattice symmetries are integer-valued in fractional coordinates, so
// applying an Op never leaves the lattice of sites modulo the translation
// part.
//
//	g := symmetry.Group{symmetry.Identity()}
//	img := g[0].Apply([3]float64{0.5, 0, 0})
//
// Permutations follow one convention everywhere: for a reordered sequence
// out and the original in, out[i] = in[p[i]].
package symmetry
