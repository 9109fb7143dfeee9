// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import bitops "github.com/gaissmai/fenwick/internal/bits"

// rho, clearRho, maskRho and maskLambda are the index-arithmetic
// primitives every variant uses to find a node's height and to walk
// the implicit tree. They are thin int wrappers over the uint64
// broadword primitives in internal/bits, since tree indices fit
// comfortably in a machine word.
func rho(i int) int {
	return bitops.Rho(uint64(i))
}

func clearRho(i int) int {
	return int(bitops.ClearRho(uint64(i)))
}

func maskRho(i int) int {
	return int(bitops.MaskRho(uint64(i)))
}

// maskLambda returns 1 << floor(log2(n)), the highest power of two
// not exceeding n, or 0 when n == 0. find/compFind descents start
// here and halve the step each iteration.
func maskLambda(n int) int {
	if n == 0 {
		return 0
	}
	return int(bitops.MaskLambda(uint64(n)))
}
