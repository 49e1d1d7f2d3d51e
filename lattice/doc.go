// SPDX-License-Identifier: MIT

// Package lattice provides the crystallographic substrate clusters live on:
// a 3D lattice backed by gonum matrices, the primitive structure (basis
// sites, allowed occupants and factor group) and supercells.
//
// Coordinates are fractional unless a function says otherwise. Basis sites
// are stored wrapped into the origin cell, so the cell of any site with
// fractional coordinate f is floor(f + tol) componentwise (see Cell).
package lattice
