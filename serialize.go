// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gaissmai/fenwick/internal/dynbuf"
)

// Wire format, all integers big-endian 64-bit:
//
//	size: u64be
//	[level-ordered only] levels: u64be, then levels x level[i]: u64be
//	byte_len: u64be, then raw backing bytes
//
// TypeF and TypeL instead emit three (length, raw little-endian bytes)
// pairs after size, one per typed array, in the fixed order u8, u16,
// u64. bound is not part of the wire format; callers must supply the
// same bound the tree was built with to every Read* function, the way
// a decompressor needs to be told its dictionary out of band.

func writeU64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readU64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func writeBytes(w io.Writer, b []byte) error {
	if err := writeU64(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readBytes(r io.Reader) ([]byte, error) {
	n, err := readU64(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

func writeLevels(w io.Writer, level []int) error {
	if err := writeU64(w, uint64(len(level))); err != nil {
		return err
	}
	for _, l := range level {
		if err := writeU64(w, uint64(l)); err != nil {
			return err
		}
	}
	return nil
}

func readLevels(r io.Reader) ([]int, error) {
	n, err := readU64(r)
	if err != nil {
		return nil, err
	}
	level := make([]int, n)
	for i := range level {
		v, err := readU64(r)
		if err != nil {
			return nil, err
		}
		level[i] = int(v)
	}
	return level, nil
}

func dynbufFromBytes(raw []byte) *dynbuf.Buffer {
	buf := dynbuf.New(0)
	buf.SetBytes(raw)
	return buf
}

// countingWriter tracks bytes written so WriteTo implementations can
// report an accurate count even when an early write fails.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteTo serializes t. It implements io.WriterTo.
func (t *FixedF) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	buf := make([]byte, len(t.tree)*8)
	for i, v := range t.tree {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	err := writeBytes(cw, buf)
	return cw.n, err
}

// ReadFixedF deserializes a FixedF written by WriteTo. bound must match
// the bound the tree was originally built with.
func ReadFixedF(r io.Reader, bound uint64) (*FixedF, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(size)*8 {
		return nil, fmt.Errorf("fenwick: FixedF: byte length %d does not match size %d", len(raw), size)
	}
	tree := make([]uint64, size)
	for i := range tree {
		tree[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return &FixedF{bound: bound, tree: tree, size: int(size)}, nil
}

func (t *FixedL) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	if err := writeLevels(cw, t.level); err != nil {
		return cw.n, err
	}
	buf := make([]byte, len(t.tree)*8)
	for i, v := range t.tree {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	err := writeBytes(cw, buf)
	return cw.n, err
}

func ReadFixedL(r io.Reader, bound uint64) (*FixedL, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	level, err := readLevels(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	tree := make([]uint64, len(raw)/8)
	for i := range tree {
		tree[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return &FixedL{bound: bound, tree: tree, level: level, size: int(size)}, nil
}

func (t *ByteF) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	err := writeBytes(cw, t.buf.Bytes())
	return cw.n, err
}

func ReadByteF(r io.Reader, bound uint64) (*ByteF, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	boundsz := boundSize(bound)
	pos := make([]int, int(size)+1)
	offset := 0
	for i := 1; i <= int(size); i++ {
		pos[i] = offset
		offset += byteWidth(rho(i), boundsz)
	}
	return &ByteF{bound: bound, boundsz: boundsz, buf: dynbufFromBytes(raw), pos: pos, size: int(size)}, nil
}

func (t *ByteL) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	if err := writeLevels(cw, t.level); err != nil {
		return cw.n, err
	}
	err := writeBytes(cw, t.buf.Bytes())
	return cw.n, err
}

func ReadByteL(r io.Reader, bound uint64) (*ByteL, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	level, err := readLevels(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return &ByteL{bound: bound, boundsz: boundSize(bound), buf: dynbufFromBytes(raw), level: level, size: int(size)}, nil
}

func (t *BitF) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	err := writeBytes(cw, t.buf.Bytes())
	return cw.n, err
}

func ReadBitF(r io.Reader, bound uint64) (*BitF, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return &BitF{bound: bound, boundsz: boundSize(bound), buf: dynbufFromBytes(raw), size: int(size)}, nil
}

func (t *BitL) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	if err := writeLevels(cw, t.level); err != nil {
		return cw.n, err
	}
	err := writeBytes(cw, t.buf.Bytes())
	return cw.n, err
}

func ReadBitL(r io.Reader, bound uint64) (*BitL, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	level, err := readLevels(r)
	if err != nil {
		return nil, err
	}
	raw, err := readBytes(r)
	if err != nil {
		return nil, err
	}
	return &BitL{bound: bound, boundsz: boundSize(bound), buf: dynbufFromBytes(raw), level: level, size: int(size)}, nil
}

// writeTypedArrays and readTypedArrays serialize TypeF/TypeL's three
// typed arrays in the fixed order u8, u16, u64, each as a
// (length-in-elements, raw little-endian bytes) pair.
func writeTypedArrays(w io.Writer, u8 []uint8, u16 []uint16, u64s []uint64) error {
	if err := writeU64(w, uint64(len(u8))); err != nil {
		return err
	}
	if _, err := w.Write(u8); err != nil {
		return err
	}

	if err := writeU64(w, uint64(len(u16))); err != nil {
		return err
	}
	buf16 := make([]byte, len(u16)*2)
	for i, v := range u16 {
		binary.LittleEndian.PutUint16(buf16[i*2:], v)
	}
	if _, err := w.Write(buf16); err != nil {
		return err
	}

	if err := writeU64(w, uint64(len(u64s))); err != nil {
		return err
	}
	buf64 := make([]byte, len(u64s)*8)
	for i, v := range u64s {
		binary.LittleEndian.PutUint64(buf64[i*8:], v)
	}
	_, err := w.Write(buf64)
	return err
}

func readTypedArrays(r io.Reader) (u8 []uint8, u16 []uint16, u64s []uint64, err error) {
	n8, err := readU64(r)
	if err != nil {
		return nil, nil, nil, err
	}
	u8 = make([]uint8, n8)
	if _, err := io.ReadFull(r, u8); err != nil {
		return nil, nil, nil, err
	}

	n16, err := readU64(r)
	if err != nil {
		return nil, nil, nil, err
	}
	buf16 := make([]byte, n16*2)
	if _, err := io.ReadFull(r, buf16); err != nil {
		return nil, nil, nil, err
	}
	u16 = make([]uint16, n16)
	for i := range u16 {
		u16[i] = binary.LittleEndian.Uint16(buf16[i*2:])
	}

	n64, err := readU64(r)
	if err != nil {
		return nil, nil, nil, err
	}
	buf64 := make([]byte, n64*8)
	if _, err := io.ReadFull(r, buf64); err != nil {
		return nil, nil, nil, err
	}
	u64s = make([]uint64, n64)
	for i := range u64s {
		u64s[i] = binary.LittleEndian.Uint64(buf64[i*8:])
	}
	return u8, u16, u64s, nil
}

func (t *TypeF) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	err := writeTypedArrays(cw, t.u8, t.u16, t.u64)
	return cw.n, err
}

func ReadTypeF(r io.Reader, bound uint64) (*TypeF, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	u8, u16, u64s, err := readTypedArrays(r)
	if err != nil {
		return nil, err
	}

	boundsz := boundSize(bound)
	cat := make([]uint8, int(size)+1)
	off := make([]int, int(size)+1)
	var c8, c16, c64 int
	for i := 1; i <= int(size); i++ {
		switch typeCategory(boundsz + rho(i)) {
		case 0:
			cat[i], off[i] = 0, c8
			c8++
		case 1:
			cat[i], off[i] = 1, c16
			c16++
		default:
			cat[i], off[i] = 2, c64
			c64++
		}
	}
	return &TypeF{
		bound: bound, boundsz: boundsz,
		u8: u8, u16: u16, u64: u64s,
		cat: cat, off: off, size: int(size),
	}, nil
}

func (t *TypeL) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(t.size)); err != nil {
		return cw.n, err
	}
	err := writeTypedArrays(cw, t.u8, t.u16, t.u64)
	return cw.n, err
}

func ReadTypeL(r io.Reader, bound uint64) (*TypeL, error) {
	size, err := readU64(r)
	if err != nil {
		return nil, err
	}
	u8, u16, u64s, err := readTypedArrays(r)
	if err != nil {
		return nil, err
	}

	boundsz := boundSize(bound)
	levels := numLevels(int(size))
	catAt := make([]uint8, levels-1)
	offAt := make([]int, levels-1)
	var c8, c16, c64 int
	for h := 0; h < levels-1; h++ {
		switch typeCategory(boundsz + h) {
		case 0:
			catAt[h], offAt[h] = 0, c8
			c8 += heightCount(int(size), h)
		case 1:
			catAt[h], offAt[h] = 1, c16
			c16 += heightCount(int(size), h)
		default:
			catAt[h], offAt[h] = 2, c64
			c64 += heightCount(int(size), h)
		}
	}
	return &TypeL{
		bound: bound, boundsz: boundsz,
		u8: u8, u16: u16, u64: u64s,
		catAt: catAt, offAt: offAt, size: int(size),
	}, nil
}
