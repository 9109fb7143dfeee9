// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import (
	bitops "github.com/gaissmai/fenwick/internal/bits"
	"github.com/gaissmai/fenwick/internal/dynbuf"
)

// bitFBitPos is the closed-form cumulative bit offset of node i in the
// classical bit-packed layout: (BOUNDSIZE+1)*(i-1) - popcount(i-1).
// It works because consecutive nodes pack back to back with no
// padding -- bitPos(i+1) - bitPos(i) always equals BOUNDSIZE+rho(i),
// node i's own width.
func bitFBitPos(i, boundsz int) int {
	return (boundsz+1)*(i-1) - bitops.Popcount(uint64(i-1))
}

// BitF packs every node into exactly BOUNDSIZE+rho(i) bits, the
// tightest of the eight layouts, at the cost of an unaligned read,
// shift and mask on every access.
type BitF struct {
	bound   uint64
	boundsz int
	buf     *dynbuf.Buffer
	size    int
}

var _ FenwickTree = (*BitF)(nil)

func NewBitF(sequence []uint64, bound uint64) *BitF {
	n := len(sequence)
	boundsz := boundSize(bound)
	for _, v := range sequence {
		checkBound("NewBitF", v, bound)
	}

	totalBits := (boundsz+1)*n - bitops.Popcount(uint64(n))
	if totalBits < 0 {
		totalBits = 0
	}
	t := &BitF{bound: bound, boundsz: boundsz, buf: dynbuf.New((totalBits + 7) / 8), size: n}

	for j := 1; j <= n; j++ {
		t.writeNode(j, rho(j), sequence[j-1])
	}
	for m := 2; m <= n; m <<= 1 {
		for idx := m; idx <= n; idx += m {
			t.addNode(idx, rho(idx), int64(t.readNode(idx-m/2, rho(idx-m/2))))
		}
	}
	return t
}

func (t *BitF) readNode(i, h int) uint64 {
	bitpos := bitFBitPos(i, t.boundsz)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	width := uint(t.boundsz + h)
	mask := bitops.CompactBitmask(width, shift)
	return (t.buf.Load64(bytePos) & mask) >> shift
}

func (t *BitF) writeNode(i, h int, val uint64) {
	bitpos := bitFBitPos(i, t.boundsz)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	width := uint(t.boundsz + h)
	mask := bitops.CompactBitmask(width, shift)
	word := t.buf.Load64(bytePos)
	word = (word &^ mask) | ((val << shift) & mask)
	t.buf.Store64(bytePos, word)
}

func (t *BitF) addNode(i, h int, delta int64) {
	bitpos := bitFBitPos(i, t.boundsz)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	word := t.buf.Load64(bytePos)
	word = uint64(int64(word) + (delta << shift))
	t.buf.Store64(bytePos, word)
}

func (t *BitF) Prefix(i int) uint64 {
	if i < 0 || i > t.size {
		violate("BitF.Prefix", "index out of range")
	}
	var sum uint64
	for i != 0 {
		sum += t.readNode(i, rho(i))
		i = clearRho(i)
	}
	return sum
}

func (t *BitF) Add(i int, delta int64) {
	checkIndex("BitF.Add", i, t.size)
	for i <= t.size {
		t.addNode(i, rho(i), delta)
		i += maskRho(i)
	}
}

func (t *BitF) Find(v *uint64) int {
	if t.size == 0 {
		return 0
	}
	node := 0
	for m := maskLambda(t.size); m != 0; m >>= 1 {
		if node+m-1 >= t.size {
			continue
		}
		value := t.readNode(node+m, rho(node+m))
		if *v >= value {
			node += m
			*v -= value
		}
	}
	return node
}

func (t *BitF) CompFind(v *uint64) int {
	if t.size == 0 {
		return 0
	}
	node := 0
	for m := maskLambda(t.size); m != 0; m >>= 1 {
		if node+m-1 >= t.size {
			continue
		}
		h := rho(node + m)
		value := (t.bound << uint(h)) - t.readNode(node+m, h)
		if *v >= value {
			node += m
			*v -= value
		}
	}
	return node
}

func (t *BitF) Size() int { return t.size }

func (t *BitF) BitCount() int { return t.buf.BitCount() }
