// Package clusterography enumerates the symmetry-distinct clusters of a
// crystal (points, pairs, triplets, …), groups them into orbits under the
// crystal's symmetry and builds cluster basis functions on top of them.
//
// 🚀 What is clusterography?
//
//	A small library and CLI that brings together:
//		• Geometry: lattices, fractional coordinates, supercells, point groups
//		• Clusters: ordered site lists with decorations and vacancy hops
//		• Comparison: tolerance-aware canonical forms, periodic or local
//		• Orbit trees: radius, count, neighbour-shell, local and in-cell growth
//		• Decorations: occupation-variant and hop orbits
//		• Basis functions: symmetrized occupation functions per orbit,
//		  transported to every equivalent
//		• Records: JSON trees plus CLUST/FCLUST/eci.in style listings
//
// Under the hood, everything is organized under these packages:
//
//	symmetry/   : symmetry operations, groups and site permutations
//	lattice/    : Lattice, Structure (basis + factor group), Supercell
//	cluster/    : Site, Cluster, invariants
//	symcompare/ : Aperiodic, PrimPeriodic, ScelPeriodic, WithinScel comparers
//	orbitree/   : Orbit, Branch, Tree and every generator
//	bset/       : basis engines, neighbor list, Propagate
//	config/     : YAML project files
//	cmd/clustgen : command-line driver
//
// Quick ASCII example:
//
//	    o───o       simple cubic, pair cutoff 1.1:
//	    │           one point orbit, one pair orbit of 6
//	    o
//
//	go get github.com/katalvlaran/clusterography
package clusterography
