package cluster

import "errors"

var (
	// ErrSiteNotFound is returned when a transformed site does not land on
	// any basis site of the structure.
	ErrSiteNotFound = errors.New("cluster: image is not a structure site")

	// ErrOccupantNotFound is returned when a decorated site's occupant is not
	// allowed on the site it is mapped to.
	ErrOccupantNotFound = errors.New("cluster: occupant not allowed on site")

	// ErrBadDecoration is returned for decorations of the wrong length or
	// with out-of-range occupant indices.
	ErrBadDecoration = errors.New("cluster: invalid decoration")

	// ErrBadHop is returned when a hop permutation does not match the site count.
	ErrBadHop = errors.New("cluster: invalid hop permutation")
)
