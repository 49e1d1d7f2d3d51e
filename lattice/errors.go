// SPDX-License-Identifier: MIT

package lattice

import "errors"

var (
	// ErrSingular is returned when lattice vectors or a supercell matrix are
	// linearly dependent.
	ErrSingular = errors.New("lattice: singular matrix")

	// ErrNilLattice is returned when a structure is built without a lattice.
	ErrNilLattice = errors.New("lattice: nil lattice")

	// ErrEmptyBasis is returned when a structure has no basis sites.
	ErrEmptyBasis = errors.New("lattice: empty basis")

	// ErrNoOccupants is returned when a basis site lists no allowed occupants.
	ErrNoOccupants = errors.New("lattice: basis site without occupants")
)
