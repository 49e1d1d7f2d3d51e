// SPDX-License-Identifier: MIT

package symmetry

import "errors"

var (
	// ErrEmptyGroup is returned when an operation requires at least one element.
	ErrEmptyGroup = errors.New("symmetry: empty group")

	// ErrNoIdentity is returned when a group lacks the identity operation.
	ErrNoIdentity = errors.New("symmetry: group has no identity element")

	// ErrPermutationSize is returned when two permutations cannot be combined.
	ErrPermutationSize = errors.New("symmetry: permutation length mismatch")
)
