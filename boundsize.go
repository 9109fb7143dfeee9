// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import stdbits "math/bits"

// boundSize computes BOUNDSIZE = ceil(log2(bound+1)) + 1: the number
// of bits needed to encode any value in [0, bound], plus one guard
// bit so a node at height 0 can record the worst-case running sum
// after an arbitrary sequence of Add calls.
//
// ceil(log2(n)) == bits.Len64(n-1) for n >= 1, so with n = bound+1
// this is bits.Len64(bound) + 1.
func boundSize(bound uint64) int {
	return stdbits.Len64(bound) + 1
}
