package cluster

// Invariants is the part of a cluster that no symmetry operation changes:
// the site count and the pair distances, longest first.
type Invariants struct {
	Size      int
	Distances []float64
}

// CompareInvariants orders by size, then distances from the longest down,
// treating values within tol as equal.
func CompareInvariants(a, b Invariants, tol float64) int {
	if a.Size != b.Size {
		if a.Size < b.Size {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a.Distances) && i < len(b.Distances); i++ {
		if a.Distances[i] < b.Distances[i]-tol {
			return -1
		}
		if a.Distances[i] > b.Distances[i]+tol {
			return 1
		}
	}

	return 0
}
