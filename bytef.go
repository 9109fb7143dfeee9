// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import (
	bitops "github.com/gaissmai/fenwick/internal/bits"
	"github.com/gaissmai/fenwick/internal/dynbuf"
)

// byteWidth returns the number of bytes needed for a node of height h
// under the given BOUNDSIZE: ceil((h+BOUNDSIZE)/8).
func byteWidth(h, boundsize int) int {
	return (h + boundsize + 7) / 8
}

// ByteF is the classical layout with nodes compressed to the exact
// number of bytes their height needs, read back through an unaligned
// 64-bit load masked with internal/bits.ByteMask. Unlike BitF it never
// splits a field across a byte it doesn't own, trading a few wasted
// bits per node (up to 7) for branch-free, intra-byte-shift-free
// access.
type ByteF struct {
	bound   uint64
	boundsz int
	buf     *dynbuf.Buffer
	pos     []int // pos[i] = byte offset of node i, 1 <= i <= size; pos[0] unused
	size    int
}

var _ FenwickTree = (*ByteF)(nil)

func NewByteF(sequence []uint64, bound uint64) *ByteF {
	n := len(sequence)
	boundsz := boundSize(bound)
	for _, v := range sequence {
		checkBound("NewByteF", v, bound)
	}

	pos := make([]int, n+1)
	offset := 0
	for i := 1; i <= n; i++ {
		pos[i] = offset
		offset += byteWidth(rho(i), boundsz)
	}

	t := &ByteF{bound: bound, boundsz: boundsz, buf: dynbuf.New(offset), pos: pos, size: n}

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

func (t *ByteF) readNode(i, h int) uint64 {
	mask := bitops.ByteMask[byteWidth(h, t.boundsz)]
	return t.buf.Load64(t.pos[i]) & mask
}

func (t *ByteF) writeNode(i, h int, val uint64) {
	mask := bitops.ByteMask[byteWidth(h, t.boundsz)]
	word := t.buf.Load64(t.pos[i])
	word = (word &^ mask) | (val & mask)
	t.buf.Store64(t.pos[i], word)
}

func (t *ByteF) addNode(i, h int, delta int64) {
	mask := bitops.ByteMask[byteWidth(h, t.boundsz)]
	word := t.buf.Load64(t.pos[i])
	val := (uint64(int64(word&mask) + delta)) & mask
	word = (word &^ mask) | val
	t.buf.Store64(t.pos[i], word)
}

func (t *ByteF) Prefix(i int) uint64 {
	if i < 0 || i > t.size {
		violate("ByteF.Prefix", "index out of range")
	}
	var sum uint64
	for i != 0 {
		sum += t.readNode(i, rho(i))
		i = clearRho(i)
	}
	return sum
}

func (t *ByteF) Add(i int, delta int64) {
	checkIndex("ByteF.Add", i, t.size)
	for i <= t.size {
		t.addNode(i, rho(i), delta)
		i += maskRho(i)
	}
}

func (t *ByteF) Find(v *uint64) int {
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

func (t *ByteF) CompFind(v *uint64) int {
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

func (t *ByteF) Size() int { return t.size }

func (t *ByteF) BitCount() int { return t.buf.BitCount() + len(t.pos)*64 }
