package orbitree

import (
	"math"

	"go.uber.org/zap"
)

// Defaults applied by New.
const (
	// DefaultMinLength rejects clusters with coincident sites.
	DefaultMinLength = 1e-4

	// DefaultMinNumComponents admits every basis site.
	DefaultMinNumComponents = 0
)

// Option configures a Tree at construction.
type Option func(*Tree)

// WithLogger sets the logger for progress reports. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("orbitree: WithLogger(nil)")
	}
	return func(t *Tree) { t.logger = l }
}

// WithMaxLength sets the per-branch cutoffs and MaxNumSites = len(lengths)-1.
// Entries 0 and 1 are placeholders for the empty and point branches.
// Panics on an empty list or a negative or NaN entry.
func WithMaxLength(lengths ...float64) Option {
	if len(lengths) == 0 {
		panic("orbitree: WithMaxLength needs at least one value")
	}
	for _, l := range lengths {
		if l < 0 || math.IsNaN(l) {
			panic("orbitree: WithMaxLength with negative or NaN length")
		}
	}
	return func(t *Tree) {
		t.MaxLength = append([]float64(nil), lengths...)
		t.MaxNumSites = len(lengths) - 1
	}
}

// WithMaxNumSites sets the largest cluster size. Panics if n < 0.
func WithMaxNumSites(n int) Option {
	if n < 0 {
		panic("orbitree: WithMaxNumSites(n<0)")
	}
	return func(t *Tree) { t.MaxNumSites = n }
}

// WithMinLength sets the minimum allowed pair length. Panics if v < 0.
func WithMinLength(v float64) Option {
	if v < 0 {
		panic("orbitree: WithMinLength(v<0)")
	}
	return func(t *Tree) { t.MinLength = v }
}

// WithMinNumComponents restricts growth to sites with at least n allowed
// occupants. Panics if n < 0.
func WithMinNumComponents(n int) Option {
	if n < 0 {
		panic("orbitree: WithMinNumComponents(n<0)")
	}
	return func(t *Tree) { t.MinNumComponents = n }
}
