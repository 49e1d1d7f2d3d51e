// Package config reads a YAML project file describing a crystal, its
// cluster cutoffs and basis arguments, validates it, and turns it into the
// lattice.Structure, orbitree options and bset.Args the library consumes.
//
// A minimal file:
//
//	title: simple cubic binary
//	lattice: [[1, 0, 0], [0, 1, 0], [0, 0, 1]]
//	basis:
//	  - coordinate: [0, 0, 0]
//	    occupants: [A, B]
//	orbits:
//	  max_length: [0, 0, 1.1]
//
// Generation methods are radius (default), count, neighbour, local and
// in_cell; see Orbits.
package config
