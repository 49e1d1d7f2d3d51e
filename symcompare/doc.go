// Package symcompare decides when two clusters are "the same" under a
// chosen periodicity convention and gives clusters a canonical total order.
//
// Every Comparer supplies two hooks: a spatial preparation (the
// translation convention) and a representation preparation (the canonical
// site order). Prepare chains them; Compare, Less and Equal work on prepared
// clusters and share one body across all variants:
//
//	Aperiodic     identity              sort sites
//	PrimPeriodic  site 0 -> origin cell sort sites
//	ScelPeriodic  site 0 -> supercell   sort sites
//	WithinScel    identity              every site -> supercell, sort
//
// Ordering compares invariants first (site count, then pair distances from
// the longest down, equal within Tol), then fractional coordinates site by
// site, sublattice, occupation and finally the hop permutation.
package symcompare
