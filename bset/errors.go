package bset

import "errors"

var (
	// ErrBadArgs is returned when basis arguments cannot be decoded.
	ErrBadArgs = errors.New("bset: invalid basis arguments")

	// ErrDoFMismatch is returned when degree-of-freedom ids do not line up.
	ErrDoFMismatch = errors.New("bset: degree-of-freedom ids do not match")

	// ErrNotInNeighborList is returned for a site outside the neighbor list.
	ErrNotInNeighborList = errors.New("bset: site not in neighbor list")

	// ErrStaleIndex is returned when the tree index was not rebuilt.
	ErrStaleIndex = errors.New("bset: tree index is stale")
)
