package cluster

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/clusterography/lattice"
)

// Vacancy is the occupant name that marks an empty site.
const Vacancy = "Va"

// Site is a crystal site: fractional coordinate, sublattice index, allowed
// occupants and an optional decoration (index into Occupants, -1 if none).
type Site struct {
	Frac       [3]float64
	Sublattice int
	Occupants  []string
	Occupation int
}

// NewSite returns an undecorated site.
func NewSite(frac [3]float64, sublattice int, occupants []string) Site {
	return Site{Frac: frac, Sublattice: sublattice, Occupants: occupants, Occupation: -1}
}

// StructureSite returns the undecorated site of sublattice b in cell.
func StructureSite(prim *lattice.Structure, b int, cell [3]int) Site {
	f := prim.Basis[b].Frac
	for i := 0; i < 3; i++ {
		f[i] += float64(cell[i])
	}

	return NewSite(f, b, prim.Basis[b].Occupants)
}

// IsDecorated reports whether the site carries an occupant.
func (s Site) IsDecorated() bool { return s.Occupation >= 0 }

// Occupant returns the decorating occupant or "".
func (s Site) Occupant() string {
	if s.Occupation < 0 || s.Occupation >= len(s.Occupants) {
		return ""
	}

	return s.Occupants[s.Occupation]
}

// Allows reports whether name is an allowed occupant of the site.
func (s Site) Allows(name string) bool { return slices.Contains(s.Occupants, name) }

// Translate shifts the site by a lattice vector.
func (s Site) Translate(t [3]int) Site {
	for i := 0; i < 3; i++ {
		s.Frac[i] += float64(t[i])
	}

	return s
}

// Cell returns the unit cell the site lies in.
func (s Site) Cell(tol float64) [3]int { return lattice.Cell(s.Frac, tol) }

// CompareSites orders sites by fractional coordinates (within tol),
// then sublattice, then occupation.
func CompareSites(a, b Site, tol float64) int {
	for i := 0; i < 3; i++ {
		if a.Frac[i] < b.Frac[i]-tol {
			return -1
		}
		if a.Frac[i] > b.Frac[i]+tol {
			return 1
		}
	}
	switch {
	case a.Sublattice != b.Sublattice:
		if a.Sublattice < b.Sublattice {
			return -1
		}
		return 1
	case a.Occupation != b.Occupation:
		if a.Occupation < b.Occupation {
			return -1
		}
		return 1
	}

	return 0
}

func (s Site) String() string {
	out := fmt.Sprintf("%9.5f %9.5f %9.5f", s.Frac[0], s.Frac[1], s.Frac[2])
	if s.IsDecorated() {
		return out + " " + s.Occupant()
	}
	for _, o := range s.Occupants {
		out += " " + o
	}

	return out
}
