// Package cluster defines a finite, ordered set of crystal sites and the
// geometric operations clusters support: periodic re-anchoring, pair-distance
// properties, canonical site ordering, occupation decoration, hop
// permutations and symmetry application.
//
// A Cluster doubles as the reusable scratch buffer of orbit growth: Append
// and Pop are amortized O(1) and never reallocate sites already present.
package cluster
