// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package rankselect

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gaissmai/fenwick"
)

// Wire format: bit_length: u64be, then ceil(bit_length/64) words as
// u64be, then the inner Fenwick tree in its own format.

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

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// TreeDecoder reconstructs a fenwick.FenwickTree from its wire format.
// fenwick's ReadFixedF, ReadByteL, etc. each have this shape modulo
// their concrete return type; the DecodeXxx adapters below close over
// the right one.
type TreeDecoder func(r io.Reader, bound uint64) (fenwick.FenwickTree, error)

func DecodeFixedF(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadFixedF(r, bound)
}

func DecodeFixedL(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadFixedL(r, bound)
}

func DecodeByteF(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadByteF(r, bound)
}

func DecodeByteL(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadByteL(r, bound)
}

func DecodeBitF(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadBitF(r, bound)
}

func DecodeBitL(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadBitL(r, bound)
}

func DecodeTypeF(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadTypeF(r, bound)
}

func DecodeTypeL(r io.Reader, bound uint64) (fenwick.FenwickTree, error) {
	return fenwick.ReadTypeL(r, bound)
}

// WriteTo serializes the bitvector followed by the inner tree. The
// inner tree's concrete type must implement io.WriterTo, which all
// eight fenwick variants do.
func (s *Stride) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := writeU64(cw, uint64(len(s.words)*64)); err != nil {
		return cw.n, err
	}
	for _, word := range s.words {
		if err := writeU64(cw, word); err != nil {
			return cw.n, err
		}
	}

	wt, ok := s.tree.(io.WriterTo)
	if !ok {
		return cw.n, fmt.Errorf("rankselect: tree type %T does not implement io.WriterTo", s.tree)
	}
	_, err := wt.WriteTo(cw)
	return cw.n, err
}

// ReadStride deserializes a Stride written by WriteTo. w must match
// the stride width it was built with; decode must match the fenwick
// variant its inner tree was built with.
func ReadStride(r io.Reader, w int, decode TreeDecoder) (*Stride, error) {
	if w <= 0 {
		violate("ReadStride", "stride width must be >= 1")
	}

	bitLen, err := readU64(r)
	if err != nil {
		return nil, err
	}
	numWords := (bitLen + 63) / 64
	words := make([]uint64, numWords)
	for i := range words {
		v, err := readU64(r)
		if err != nil {
			return nil, err
		}
		words[i] = v
	}

	bound := uint64(64 * w)
	tree, err := decode(r, bound)
	if err != nil {
		return nil, err
	}
	return &Stride{words: words, w: w, tree: tree, bound: bound}, nil
}
