// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package rankselect

import (
	"bytes"
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaissmai/fenwick"
)

func TestStrideScenario5(t *testing.T) {
	t.Parallel()

	words := []uint64{0xF0F0F0F0F0F0F0F0, 0, 0x1}
	s := NewStride(words, 2, fenwick.FactoryFixedF)

	require.EqualValues(t, 32, s.Rank(64))
	require.EqualValues(t, 63, s.Select(31))
	require.EqualValues(t, 128, s.Select(32))
	require.EqualValues(t, 0, s.SelectZero(0))
}

func popcountAll(words []uint64) uint64 {
	var total uint64
	for _, w := range words {
		total += uint64(bits.OnesCount64(w))
	}
	return total
}

func bruteRank(words []uint64, pos int) uint64 {
	var total uint64
	for i := 0; i < pos; i++ {
		word := words[i/64]
		if word&(uint64(1)<<uint(i%64)) != 0 {
			total++
		}
	}
	return total
}

func TestStrideRankAgreesWithBruteForce(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	words := make([]uint64, 20)
	for i := range words {
		words[i] = rng.Uint64()
	}

	for _, w := range []int{1, 2, 3, 5} {
		s := NewStride(append([]uint64(nil), words...), w, fenwick.FactoryFixedF)
		for pos := 0; pos <= len(words)*64; pos += 7 {
			require.Equalf(t, bruteRank(words, pos), s.Rank(pos), "w=%d Rank(%d)", w, pos)
		}
	}
}

func TestStrideRankSelectInverse(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(43))
	words := make([]uint64, 30)
	for i := range words {
		words[i] = rng.Uint64()
	}
	s := NewStride(words, 3, fenwick.FactoryFixedF)

	total := popcountAll(words)
	for r := uint64(0); r < total; r += 3 {
		pos := s.Select(r)
		require.NotEqualf(t, fenwick.NotFound, pos, "Select(%d)", r)
		require.Equalf(t, r, s.Rank(int(pos)), "Rank(Select(%d)=%d)", r, pos)
		bit := words[pos/64] & (uint64(1) << uint(pos%64))
		require.NotZerof(t, bit, "Select(%d) = %d, but that bit is not set", r, pos)
	}

	require.Equal(t, fenwick.NotFound, s.Select(total))
}

func TestStrideSelectZeroSymmetry(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(44))
	words := make([]uint64, 25)
	complement := make([]uint64, 25)
	for i := range words {
		words[i] = rng.Uint64()
		complement[i] = ^words[i]
	}

	s := NewStride(words, 4, fenwick.FactoryFixedF)
	sComplement := NewStride(complement, 4, fenwick.FactoryFixedF)

	totalZeros := popcountAll(complement)
	for r := uint64(0); r < totalZeros; r += 5 {
		require.Equalf(t, sComplement.Select(r), s.SelectZero(r), "SelectZero(%d) vs Select(%d) on complement", r, r)
	}
}

func TestStrideUpdateConsistency(t *testing.T) {
	t.Parallel()

	words := make([]uint64, 12)
	s := NewStride(words, 3, fenwick.FactoryFixedF)

	s.Update(5, 0xFFFFFFFFFFFFFFFF)
	idx := 5/3 + 1
	want := popcountAll([]uint64{0xFFFFFFFFFFFFFFFF})
	require.Equal(t, want, s.Rank((idx)*3*64)-s.Rank((idx-1)*3*64))

	// Spec phrasing: tree's prefix at i/W+1 equals popcount of the
	// first (i+1)*64 bits, since word i is the last word in its
	// stride's prefix range only when w == 1; check the general
	// invariant instead: Rank((i/W+1)*W*64) sums exactly the first
	// i/W+1 strides, matching the tree's own Prefix at that index.
	require.Equal(t, s.Rank(idx*3*64), s.tree.Prefix(idx))
}

func TestStrideSetClearToggle(t *testing.T) {
	t.Parallel()

	words := make([]uint64, 8)
	s := NewStride(words, 2, fenwick.FactoryFixedF)

	s.Set(10)
	require.EqualValues(t, 1, s.Rank(11)-s.Rank(10), "Set(10) did not set bit 10")
	s.Clear(10)
	require.EqualValues(t, 0, s.Rank(11)-s.Rank(10), "Clear(10) did not clear bit 10")
	s.Toggle(10)
	require.EqualValues(t, 1, s.Rank(11)-s.Rank(10), "Toggle(10) on a clear bit did not set it")
	s.Toggle(10)
	require.EqualValues(t, 0, s.Rank(11)-s.Rank(10), "Toggle(10) on a set bit did not clear it")
}

func TestStrideSerializeRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(45))
	words := make([]uint64, 17)
	for i := range words {
		words[i] = rng.Uint64()
	}
	s := NewStride(words, 3, fenwick.FactoryByteF)

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	restored, err := ReadStride(&buf, 3, DecodeByteF)
	require.NoError(t, err)

	for pos := 0; pos <= len(words)*64; pos += 11 {
		require.Equalf(t, s.Rank(pos), restored.Rank(pos), "Rank(%d)", pos)
	}
}
