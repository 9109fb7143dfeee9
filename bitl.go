// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import (
	bitops "github.com/gaissmai/fenwick/internal/bits"
	"github.com/gaissmai/fenwick/internal/dynbuf"
)

// BitL combines BitF's exact bit-width packing with level-ordered
// placement: every node at height h is BOUNDSIZE+h bits wide, and all
// nodes of a given height sit in one contiguous bit region, so the
// find descent (one node per height) walks Levels regions in order
// instead of scattering across the whole buffer.
type BitL struct {
	bound   uint64
	boundsz int
	buf     *dynbuf.Buffer
	level   []int // bit offsets per height, length Levels
	size    int
}

var _ FenwickTree = (*BitL)(nil)

func (t *BitL) width(h int) int { return t.boundsz + h }

func NewBitL(sequence []uint64, bound uint64) *BitL {
	n := len(sequence)
	boundsz := boundSize(bound)
	for _, v := range sequence {
		checkBound("NewBitL", v, bound)
	}

	t := &BitL{bound: bound, boundsz: boundsz, size: n}
	level := buildLevels(n, t.width)
	t.level = level
	t.buf = dynbuf.New((level[len(level)-1] + 7) / 8)

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

func (t *BitL) bitPos(i, h int) int {
	return t.level[h] + (i>>uint(h+1))*t.width(h)
}

func (t *BitL) readNode(i, h int) uint64 {
	bitpos := t.bitPos(i, h)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	width := uint(t.width(h))
	mask := bitops.CompactBitmask(width, shift)
	return (t.buf.Load64(bytePos) & mask) >> shift
}

func (t *BitL) writeNode(i, h int, val uint64) {
	bitpos := t.bitPos(i, h)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	width := uint(t.width(h))
	mask := bitops.CompactBitmask(width, shift)
	word := t.buf.Load64(bytePos)
	word = (word &^ mask) | ((val << shift) & mask)
	t.buf.Store64(bytePos, word)
}

func (t *BitL) addNode(i, h int, delta int64) {
	bitpos := t.bitPos(i, h)
	bytePos := bitpos / 8
	shift := uint(bitpos % 8)
	word := t.buf.Load64(bytePos)
	word = uint64(int64(word) + (delta << shift))
	t.buf.Store64(bytePos, word)
}

func (t *BitL) Prefix(i int) uint64 {
	if i < 0 || i > t.size {
		violate("BitL.Prefix", "index out of range")
	}
	var sum uint64
	for i != 0 {
		h := rho(i)
		sum += t.readNode(i, h)
		i = clearRho(i)
	}
	return sum
}

func (t *BitL) Add(i int, delta int64) {
	checkIndex("BitL.Add", i, t.size)
	for i <= t.size {
		t.addNode(i, rho(i), delta)
		i += maskRho(i)
	}
}

func (t *BitL) Find(v *uint64) int {
	if t.size == 0 {
		return 0
	}
	node, idx := 0, 0
	levels := len(t.level)
	for height := levels - 2; height >= 0; height-- {
		w := t.width(height)
		pos := t.level[height] + idx*w
		idx <<= 1
		if pos >= t.level[height+1] {
			continue
		}
		bytePos := pos / 8
		shift := uint(pos % 8)
		mask := bitops.CompactBitmask(uint(w), shift)
		value := (t.buf.Load64(bytePos) & mask) >> shift
		if *v >= value {
			idx++
			*v -= value
			node += 1 << uint(height)
		}
	}
	if node > t.size {
		node = t.size
	}
	return node
}

func (t *BitL) CompFind(v *uint64) int {
	if t.size == 0 {
		return 0
	}
	node, idx := 0, 0
	levels := len(t.level)
	for height := levels - 2; height >= 0; height-- {
		w := t.width(height)
		pos := t.level[height] + idx*w
		idx <<= 1
		if pos >= t.level[height+1] {
			continue
		}
		bytePos := pos / 8
		shift := uint(pos % 8)
		mask := bitops.CompactBitmask(uint(w), shift)
		stored := (t.buf.Load64(bytePos) & mask) >> shift
		value := (t.bound << uint(height)) - stored
		if *v >= value {
			idx++
			*v -= value
			node += 1 << uint(height)
		}
	}
	if node > t.size {
		node = t.size
	}
	return node
}

func (t *BitL) Size() int { return t.size }

func (t *BitL) BitCount() int { return t.buf.BitCount() + len(t.level)*64 }
