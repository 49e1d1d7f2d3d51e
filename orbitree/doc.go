// Package orbitree builds and queries the hierarchy of symmetrically
// distinct clusters of a crystal: orbits of equivalent clusters grouped
// into branches by site count.
//
// A Tree is grown outward from the empty cluster. Every orbit stores its
// prototype, all equivalents, the symmetry element producing each
// equivalent and the prototype's stabilizer. Branch 0 holds the empty
// cluster, branch 1 the points, branch 2 the pairs, and so on.
//
// Growth variants:
//
//   - Generate: radius cutoffs per branch (MaxLength[n] for n-site clusters)
//   - GenerateCount: pair cutoff chosen to reach a target number of pair orbits
//   - GenerateNeighbour: cutoffs expressed as neighbour shells
//   - GenerateLocal: clusters around a fixed phenomenal cluster
//   - GenerateDecorated / GenerateHop: occupation decorations and vacancy hops
//   - GenerateInCell: clusters folded into one supercell
//   - GenerateFromPrototypes / AddCustomOrbits: explicit prototypes
//
// The global index and the subcluster hierarchy are caches. Generators
// rebuild the index before they return; after any other structural change
// call UpdateIndex and UpdateHierarchy explicitly.
//
//	tree := orbitree.New(prim.Lattice, orbitree.WithMaxLength(0, 0, 4.1, 3.2))
//	if err := tree.Generate(prim); err != nil {
//		return err
//	}
//	tree.UpdateHierarchy()
//	err := tree.PrintECIIn(os.Stdout)
//
// Growth is sequential and deterministic. A Tree is not safe for
// concurrent mutation; concurrent readers are fine once generation returned.
package orbitree
