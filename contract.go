// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

// FenwickTree is the contract shared by every node-layout variant
// (FixedF, FixedL, ByteF, ByteL, BitF, BitL, TypeF, TypeL) and by
// Hybrid. All indices are 1-based over [1, Size()], matching the
// reference pacman616/fenwick_tree layout so that Prefix(0) is always
// the empty sum.
//
// Implementations mirror the interface-over-struct-variant style of
// github.com/gaissmai/bart's noder interface, which lets callers swap
// node layouts behind one type without reflection.
type FenwickTree interface {
	// Prefix returns the sum of the first i elements of the sequence,
	// for i in [0, Size()]. Prefix(0) is 0.
	Prefix(i int) uint64

	// Add adds delta to element i, for i in [1, Size()]. The element
	// must stay within [0, BOUND] afterwards; Add checks only the
	// index, not the resulting element value.
	Add(i int, delta int64)

	// Find consumes *v against the prefix sums and returns the
	// largest index p such that Prefix(p) <= the original *v, leaving
	// *v - Prefix(p) in *v. It returns 0 if even Prefix(1) exceeds v.
	Find(v *uint64) int

	// CompFind is Find performed against the complement sequence,
	// where each element a[i] is replaced by BOUND - a[i].
	CompFind(v *uint64) int

	// Size returns the number of elements in the sequence.
	Size() int

	// BitCount returns the tree's heap footprint in bits, for the
	// space/time tradeoff comparisons the eight layouts exist to make.
	BitCount() int
}
