// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

// Package dynbuf implements the owning, resizable byte buffer that the
// byte- and bit-packed Fenwick tree layouts store their nodes in.
//
// It always carries 8 bytes of trailing padding beyond the logical
// length so that any in-range node position can be read with a single
// unaligned 64-bit load without risking an out-of-bounds access -- the
// same guarantee the reference C++ implementation gets from allocating
// "+4" or "+8" bytes past the last element (see e.g. BitF's
// tree(get_bitpos(size)/8 + 4) in pacman616/fenwick_tree).
//
// Modeled after the owning-slice-plus-arithmetic style of
// github.com/gaissmai/bart/internal/sparse.Array: no pointers, no
// per-element boxing, just a slice and index math.
package dynbuf

import "encoding/binary"

// padding is the number of guaranteed-readable/writable bytes kept
// beyond the logical length.
const padding = 8

// Buffer is an owning byte buffer with bit-count accounting and a
// safety tail for unaligned 64-bit loads/stores.
type Buffer struct {
	data []byte // len(data) == size+padding
	size int    // logical length in bytes
}

// New allocates a Buffer with the given logical size in bytes.
func New(size int) *Buffer {
	b := &Buffer{}
	b.Resize(size)
	return b
}

// Resize grows or shrinks the logical length to size, preserving
// existing content and zero-filling new bytes.
func (b *Buffer) Resize(size int) {
	if size < 0 {
		panic("dynbuf: negative size")
	}

	need := size + padding
	switch {
	case b.data == nil || cap(b.data) < need:
		nd := make([]byte, need)
		copy(nd, b.data)
		b.data = nd
	case need > len(b.data):
		b.data = b.data[:need]
	default:
		// shrinking within the existing backing array: zero the bytes
		// that become part of the padding tail again so a later grow
		// doesn't resurrect stale data.
		for i := size; i < len(b.data); i++ {
			b.data[i] = 0
		}
		b.data = b.data[:need]
	}

	b.size = size
}

// Shrink is Resize to a smaller size; it panics if size is larger than
// the current length.
func (b *Buffer) Shrink(size int) {
	if size > b.size {
		panic("dynbuf: Shrink to a larger size")
	}
	b.Resize(size)
}

// Len returns the logical length in bytes.
func (b *Buffer) Len() int {
	return b.size
}

// BitCount returns the total number of bits of heap footprint,
// including the padding tail, for the space-usage benchmarks in
// FenwickTree.BitCount implementations.
func (b *Buffer) BitCount() int {
	return len(b.data) * 8
}

// Byte returns the byte at i.
func (b *Buffer) Byte(i int) byte {
	return b.data[i]
}

// SetByte sets the byte at i.
func (b *Buffer) SetByte(i int, v byte) {
	b.data[i] = v
}

// Load64 performs an unaligned 64-bit load starting at byte offset
// pos. pos+8 may exceed the logical length but must stay within
// len(data), which the padding tail guarantees for any pos < size.
func (b *Buffer) Load64(pos int) uint64 {
	return binary.LittleEndian.Uint64(b.data[pos : pos+8])
}

// Store64 performs an unaligned 64-bit store starting at byte offset pos.
func (b *Buffer) Store64(pos int, v uint64) {
	binary.LittleEndian.PutUint64(b.data[pos:pos+8], v)
}

// Bytes returns the logical (non-padding) content, suitable for
// serialization.
func (b *Buffer) Bytes() []byte {
	return b.data[:b.size]
}

// SetBytes overwrites the logical content from raw, resizing to
// len(raw) first.
func (b *Buffer) SetBytes(raw []byte) {
	b.Resize(len(raw))
	copy(b.data, raw)
}
