package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/clusterography/bset"
	"github.com/katalvlaran/clusterography/cluster"
	"github.com/katalvlaran/clusterography/lattice"
	"github.com/katalvlaran/clusterography/orbitree"
)

// Structure builds the primitive structure. The factor group is derived
// from the lattice point group.
func (f *File) Structure() (*lattice.Structure, error) {
	lat, err := lattice.FromRows(f.Lattice)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	basis := make([]lattice.BasisSite, len(f.Basis))
	for i, s := range f.Basis {
		basis[i] = lattice.BasisSite{Frac: s.Coordinate, Occupants: s.Occupants}
	}
	prim, err := lattice.NewStructure(lat, basis, nil, f.Tol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	prim.Title = f.Title
	prim.FactorGroup = prim.DeriveFactorGroup(lat.PointGroup(prim.Tol))

	return prim, nil
}

// TreeOptions returns the orbitree options set by the file.
func (f *File) TreeOptions(logger *zap.Logger) []orbitree.Option {
	o := f.Orbits
	opts := []orbitree.Option{orbitree.WithMinNumComponents(o.MinNumComponents)}
	if logger != nil {
		opts = append(opts, orbitree.WithLogger(logger))
	}
	if len(o.MaxLength) > 0 {
		opts = append(opts, orbitree.WithMaxLength(o.MaxLength...))
	}
	if o.MaxNumSites > 0 {
		opts = append(opts, orbitree.WithMaxNumSites(o.MaxNumSites))
	}
	if o.MinLength > 0 {
		opts = append(opts, orbitree.WithMinLength(o.MinLength))
	}

	return opts
}

// BasisArgs decodes the basis_functions block.
func (f *File) BasisArgs() (bset.Args, error) {
	return bset.DecodeArgs(f.BasisFunctions)
}

// Phenomenal resolves the phenomenal coordinates against prim.
func (f *File) Phenomenal(prim *lattice.Structure) (*cluster.Cluster, error) {
	return clusterAt(prim, f.Orbits.Phenomenal)
}

func clusterAt(prim *lattice.Structure, coords [][3]float64) (*cluster.Cluster, error) {
	c := cluster.New(prim.Lattice)
	for _, x := range coords {
		b, cell, ok := prim.FindSite(x)
		if !ok {
			return nil, fmt.Errorf("%w: %v", cluster.ErrSiteNotFound, x)
		}
		c.Append(cluster.StructureSite(prim, b, cell))
	}

	return c, nil
}

// Generate builds the tree the file asks for: the chosen method, then
// custom clusters, then decoration or hops. The returned tree has a valid
// index and hierarchy.
func (f *File) Generate(prim *lattice.Structure, logger *zap.Logger) (*orbitree.Tree, error) {
	o := f.Orbits
	tree := orbitree.New(prim.Lattice, f.TreeOptions(logger)...)

	var err error
	switch o.Method {
	case MethodRadius:
		err = tree.Generate(prim)
	case MethodCount:
		err = tree.GenerateCount(prim, o.MaxClusters)
	case MethodNeighbour:
		err = tree.GenerateNeighbour(prim, o.Shells)
	case MethodLocal:
		var phenom *cluster.Cluster
		if phenom, err = f.Phenomenal(prim); err == nil {
			err = tree.GenerateLocal(prim, phenom, o.IncludePhenomenalSites)
		}
	case MethodInCell:
		var scel *lattice.Supercell
		if scel, err = lattice.NewSupercell(prim.Lattice, *o.Supercell); err == nil {
			err = tree.GenerateInCell(prim, scel)
		}
	default:
		err = fmt.Errorf("%w: method %q", ErrInvalid, o.Method)
	}
	if err != nil {
		return nil, err
	}

	if len(o.Custom) > 0 {
		customs := make([]orbitree.CustomOrbit, len(o.Custom))
		for i, cc := range o.Custom {
			c, err := clusterAt(prim, cc.Sites)
			if err != nil {
				return nil, fmt.Errorf("custom cluster %d: %w", i, err)
			}
			customs[i] = orbitree.CustomOrbit{Cluster: c, IncludeSubclusters: cc.IncludeSubclusters}
		}
		if err := tree.AddCustomOrbits(prim, customs); err != nil {
			return nil, err
		}
	}

	switch {
	case o.Decorate != DecorateNone:
		dec := orbitree.New(prim.Lattice, f.TreeOptions(logger)...)
		if err := dec.GenerateDecorated(tree, tree.Group(), tree.Comparer(), o.Decorate == DecorateFull); err != nil {
			return nil, err
		}
		tree = dec
	case o.Hop:
		hop := orbitree.New(prim.Lattice, f.TreeOptions(logger)...)
		if err := hop.GenerateHop(tree); err != nil {
			return nil, err
		}
		tree = hop
	}

	if !tree.HierarchyValid() {
		if err := tree.UpdateHierarchy(); err != nil {
			return nil, err
		}
	}

	return tree, nil
}
