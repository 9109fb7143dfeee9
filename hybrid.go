// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

// TreeFactory builds a FenwickTree variant from a sequence and bound.
// Hybrid is parametric over two of these instead of over generic type
// parameters, since Go generics cannot carry BOUND as a compile-time
// constant the way the reference implementation's template<size_t>
// does.
//
// NewFixedF, NewByteL, etc. each return their own concrete pointer
// type (*FixedF, *ByteL, ...), not FenwickTree, so none of them has
// this exact type and none is directly assignable to a TreeFactory
// variable despite satisfying the interface -- Go requires identical
// result types for func values, not just assignable ones. FactoryFixedF,
// FactoryByteL, etc. below are the adapters that close over each
// constructor and give it TreeFactory's signature; use those wherever
// a TreeFactory value is needed.
type TreeFactory func(sequence []uint64, bound uint64) FenwickTree

// FactoryFixedF adapts NewFixedF to TreeFactory.
func FactoryFixedF(sequence []uint64, bound uint64) FenwickTree {
	return NewFixedF(sequence, bound)
}

// FactoryFixedL adapts NewFixedL to TreeFactory.
func FactoryFixedL(sequence []uint64, bound uint64) FenwickTree {
	return NewFixedL(sequence, bound)
}

// FactoryByteF adapts NewByteF to TreeFactory.
func FactoryByteF(sequence []uint64, bound uint64) FenwickTree {
	return NewByteF(sequence, bound)
}

// FactoryByteL adapts NewByteL to TreeFactory.
func FactoryByteL(sequence []uint64, bound uint64) FenwickTree {
	return NewByteL(sequence, bound)
}

// FactoryBitF adapts NewBitF to TreeFactory.
func FactoryBitF(sequence []uint64, bound uint64) FenwickTree {
	return NewBitF(sequence, bound)
}

// FactoryBitL adapts NewBitL to TreeFactory.
func FactoryBitL(sequence []uint64, bound uint64) FenwickTree {
	return NewBitL(sequence, bound)
}

// FactoryTypeF adapts NewTypeF to TreeFactory.
func FactoryTypeF(sequence []uint64, bound uint64) FenwickTree {
	return NewTypeF(sequence, bound)
}

// FactoryTypeL adapts NewTypeL to TreeFactory.
func FactoryTypeL(sequence []uint64, bound uint64) FenwickTree {
	return NewTypeL(sequence, bound)
}

// Hybrid splits a sequence into fixed-size blocks, builds one BOTTOM
// variant per block, and a TOP variant over the block sums. Queries
// split the index between the two: this is the only place variants
// are composed rather than chosen outright.
//
// Note on index splitting: spec describes top/bottom as a bit-shift
// and mask against a block size of 2^H, but also fixes each block to
// 2^H-1 leaves -- consistent only when the block size is itself a
// power of two. Since H is a runtime parameter here, not a compile
// time one, Hybrid uses plain integer division/modulo against the
// literal block size instead, which gives the same block structure
// for every H without that off-by-one inconsistency.
type Hybrid struct {
	bound     uint64
	blockSize int
	top       FenwickTree
	bottoms   []FenwickTree
	size      int
}

var _ FenwickTree = (*Hybrid)(nil)

// NewHybrid builds a Hybrid with bottom-tree height h: each block
// holds 2^h-1 leaves. topFactory builds the tree over block sums
// (bound times the block size, a full block's worst-case sum);
// bottomFactory builds each block's own tree.
func NewHybrid(sequence []uint64, bound uint64, h uint, topFactory, bottomFactory TreeFactory) *Hybrid {
	n := len(sequence)
	blockSize := (1 << h) - 1
	if blockSize <= 0 {
		violate("NewHybrid", "h must be >= 1")
	}

	numBlocks := (n + blockSize - 1) / blockSize
	blockSums := make([]uint64, numBlocks)
	bottoms := make([]FenwickTree, numBlocks)

	for b := 0; b < numBlocks; b++ {
		start := b * blockSize
		end := start + blockSize
		if end > n {
			end = n
		}
		blockSeq := sequence[start:end]
		bottoms[b] = bottomFactory(blockSeq, bound)

		var sum uint64
		for _, v := range blockSeq {
			sum += v
		}
		blockSums[b] = sum
	}

	topBound := bound * uint64(blockSize)
	top := topFactory(blockSums, topBound)

	return &Hybrid{bound: bound, blockSize: blockSize, top: top, bottoms: bottoms, size: n}
}

func (h *Hybrid) split(i int) (blockIdx, local int) {
	zeroIdx := i - 1
	blockIdx = zeroIdx / h.blockSize
	local = zeroIdx%h.blockSize + 1
	return
}

func (h *Hybrid) Prefix(i int) uint64 {
	if i < 0 || i > h.size {
		violate("Hybrid.Prefix", "index out of range")
	}
	if i == 0 {
		return 0
	}
	blockIdx, local := h.split(i)
	return h.top.Prefix(blockIdx) + h.bottoms[blockIdx].Prefix(local)
}

func (h *Hybrid) Add(i int, delta int64) {
	checkIndex("Hybrid.Add", i, h.size)
	blockIdx, local := h.split(i)
	h.bottoms[blockIdx].Add(local, delta)
	h.top.Add(blockIdx+1, delta)
}

func (h *Hybrid) Find(v *uint64) int {
	if h.size == 0 {
		return 0
	}
	topNode := h.top.Find(v)
	if topNode >= len(h.bottoms) {
		return h.size
	}
	bottomNode := h.bottoms[topNode].Find(v)
	node := topNode*h.blockSize + bottomNode
	if node > h.size {
		node = h.size
	}
	return node
}

func (h *Hybrid) CompFind(v *uint64) int {
	if h.size == 0 {
		return 0
	}
	topNode := h.top.CompFind(v)
	if topNode >= len(h.bottoms) {
		return h.size
	}
	bottomNode := h.bottoms[topNode].CompFind(v)
	node := topNode*h.blockSize + bottomNode
	if node > h.size {
		node = h.size
	}
	return node
}

func (h *Hybrid) Size() int { return h.size }

func (h *Hybrid) BitCount() int {
	total := h.top.BitCount()
	for _, b := range h.bottoms {
		total += b.BitCount()
	}
	return total
}
