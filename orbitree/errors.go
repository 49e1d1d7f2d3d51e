package orbitree

import "errors"

// Sentinel errors for tree construction and queries.
var (
	// ErrEmptyGroup is returned when a generator is handed an empty symmetry group.
	ErrEmptyGroup = errors.New("orbitree: empty symmetry group")

	// ErrBadCutoffs is returned for malformed length or count cutoffs.
	ErrBadCutoffs = errors.New("orbitree: malformed cutoff specification")

	// ErrBranchExhausted is returned when global growth finds a branch with no
	// orbits while larger clusters are still requested.
	ErrBranchExhausted = errors.New("orbitree: no orbits to grow from")

	// ErrEquivalentMismatch is returned when a prototype generates a different
	// number of equivalents than expected.
	ErrEquivalentMismatch = errors.New("orbitree: equivalent count mismatch")

	// ErrLatticeMismatch is returned when the structure does not share the tree lattice.
	ErrLatticeMismatch = errors.New("orbitree: lattice mismatch")

	// ErrStaleIndex is returned when a report or query needs an index that
	// was not rebuilt after the last structural change.
	ErrStaleIndex = errors.New("orbitree: index is stale, call UpdateIndex")

	// ErrUngenerated is returned when an operation needs a tree that was
	// generated or loaded first.
	ErrUngenerated = errors.New("orbitree: tree has not been generated")

	// ErrNotFound is returned by lookups that miss.
	ErrNotFound = errors.New("orbitree: orbit not found")
)
