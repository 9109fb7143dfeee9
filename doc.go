// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

// Package fenwick provides compact, array-based Fenwick trees (binary
// indexed trees) for dynamic prefix-sum and predecessor queries over
// bounded-value sequences.
//
// Eight layouts are offered, covering two independent axes:
//
//   - Classical (F) vs. level-ordered (L): classical stores each node
//     at its natural tree index; level-ordered groups nodes by height
//     into contiguous regions, trading a small table of level offsets
//     for sequential access during find/compFind.
//   - Node width: Fixed always uses a 64-bit word; Byte packs each
//     node into the minimum whole bytes its height needs; Bit packs
//     the minimum bits, the tightest of the three; Type routes nodes
//     to one of three natively-aligned u8/u16/u64 arrays by height,
//     trading a few wasted bits for alignment.
//
//	FixedF  FixedL  ByteF  ByteL  BitF  BitL  TypeF  TypeL
//
// All eight implement the same FenwickTree interface and are
// interchangeable for identical input; only BitCount (their memory
// footprint) and, for ByteL alone, growability (Push/Pop/Reserve/
// Shrink) differ.
//
// Hybrid composes two variants -- a TOP tree over block sums and one
// BOTTOM tree per fixed-size block -- for workloads that want a
// different width/ordering tradeoff at the top of the index than at
// the leaves.
//
// Package rankselect builds a rank/select bitvector on top of any
// FenwickTree variant, summarizing popcounts over fixed-width word
// strides.
package fenwick
