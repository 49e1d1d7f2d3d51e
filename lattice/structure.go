// SPDX-License-Identifier: MIT

package lattice

import (
	"math"
	"slices"

	"github.com/katalvlaran/clusterography/symmetry"
)

// BasisSite is one site of the primitive cell with its allowed occupants.
type BasisSite struct {
	Frac      [3]float64
	Occupants []string
}

// Structure is the primitive crystal: lattice, basis and factor group.
type Structure struct {
	Title       string
	Lattice     *Lattice
	Basis       []BasisSite
	FactorGroup symmetry.Group
	Tol         float64
}

// NewStructure validates and copies its inputs. Basis coordinates are wrapped
// into the origin cell. A non-positive tol selects symmetry.DefaultTol.
// The factor group may be empty here; generators reject that later.
func NewStructure(lat *Lattice, basis []BasisSite, fg symmetry.Group, tol float64) (*Structure, error) {
	if lat == nil {
		return nil, ErrNilLattice
	}
	if len(basis) == 0 {
		return nil, ErrEmptyBasis
	}
	if tol <= 0 {
		tol = symmetry.DefaultTol
	}
	s := &Structure{Lattice: lat, Tol: tol}
	for _, b := range basis {
		if len(b.Occupants) == 0 {
			return nil, ErrNoOccupants
		}
		s.Basis = append(s.Basis, BasisSite{
			Frac:      Wrap(b.Frac, tol),
			Occupants: slices.Clone(b.Occupants),
		})
	}
	s.FactorGroup = slices.Clone(fg)

	return s, nil
}

// FindSite locates the basis site b and cell such that f = Basis[b].Frac + cell.
// Complexity: O(len(Basis)).
func (s *Structure) FindSite(f [3]float64) (int, [3]int, bool) {
	for b, site := range s.Basis {
		var cell [3]int
		ok := true
		for i := 0; i < 3; i++ {
			d := f[i] - site.Frac[i]
			r := math.Round(d)
			if math.Abs(d-r) > s.Tol {
				ok = false
				break
			}
			cell[i] = int(r)
		}
		if ok {
			return b, cell, true
		}
	}

	return -1, [3]int{}, false
}

// MapsBasis reports whether op maps every basis site onto a basis site
// with the same set of allowed occupants.
func (s *Structure) MapsBasis(op symmetry.Op) bool {
	for _, site := range s.Basis {
		b, _, ok := s.FindSite(op.Apply(site.Frac))
		if !ok || !sameOccupants(site.Occupants, s.Basis[b].Occupants) {
			return false
		}
	}

	return true
}

// DeriveFactorGroup derives the factor group from a point group: for each
// rotation it tries the translations that carry some basis site onto the
// first one and keeps the first that maps the whole basis onto itself.
// Complexity: O(|pg|·n²·n).
func (s *Structure) DeriveFactorGroup(pg symmetry.Group) symmetry.Group {
	var fg symmetry.Group
	for _, r := range pg {
		for _, site := range s.Basis {
			img := r.Apply(site.Frac)
			op := r
			for i := 0; i < 3; i++ {
				op.Trans[i] = s.Basis[0].Frac[i] - img[i]
			}
			op.Trans = Wrap(op.Trans, s.Tol)
			for i := range op.Trans {
				if op.Trans[i] < 0 {
					op.Trans[i] = 0
				}
			}
			if s.MapsBasis(op) {
				fg = append(fg, op)
				break
			}
		}
	}

	return fg
}

// NumOccupants returns the number of allowed occupants on sublattice b.
func (s *Structure) NumOccupants(b int) int { return len(s.Basis[b].Occupants) }

func sameOccupants(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x, y := slices.Clone(a), slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)

	return slices.Equal(x, y)
}
