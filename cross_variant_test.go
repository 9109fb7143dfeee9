// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// allVariants builds one instance of every layout over the same
// sequence and bound, for the cross-variant equivalence property in
// the testable-properties scenario 6: identical input must yield
// identical prefix/find/compFind on all eight variants.
func allVariants(sequence []uint64, bound uint64) map[string]FenwickTree {
	return map[string]FenwickTree{
		"FixedF": NewFixedF(sequence, bound),
		"FixedL": NewFixedL(sequence, bound),
		"ByteF":  NewByteF(sequence, bound),
		"ByteL":  NewByteL(sequence, bound),
		"BitF":   NewBitF(sequence, bound),
		"BitL":   NewBitL(sequence, bound),
		"TypeF":  NewTypeF(sequence, bound),
		"TypeL":  NewTypeL(sequence, bound),
	}
}

func TestCrossVariantPrefixAgreement(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	const n, bound = 500, uint64(64)

	seq := make([]uint64, n)
	for i := range seq {
		seq[i] = uint64(rng.Intn(int(bound) + 1))
	}

	trees := allVariants(seq, bound)
	for k := 0; k <= n; k++ {
		var want uint64
		var wantSet bool
		for name, tree := range trees {
			got := tree.Prefix(k)
			if !wantSet {
				want, wantSet = got, true
				continue
			}
			require.Equalf(t, want, got, "%s.Prefix(%d)", name, k)
		}
	}
}

func TestCrossVariantFindAndCompFindAgreement(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(2))
	const n, bound = 500, uint64(64)

	seq := make([]uint64, n)
	var total uint64
	for i := range seq {
		seq[i] = uint64(rng.Intn(int(bound) + 1))
		total += seq[i]
	}

	trees := allVariants(seq, bound)
	for q := 0; q < 200; q++ {
		v := uint64(rng.Intn(int(total) + 1))

		var wantNode int
		var wantRem uint64
		var wantSet bool
		for name, tree := range trees {
			vv := v
			node := tree.Find(&vv)
			if !wantSet {
				wantNode, wantRem, wantSet = node, vv, true
				continue
			}
			require.Equalf(t, wantNode, node, "%s.Find(%d) node", name, v)
			require.Equalf(t, wantRem, vv, "%s.Find(%d) remainder", name, v)
		}
	}

	for q := 0; q < 200; q++ {
		compTotal := bound*uint64(n) - total
		v := uint64(rng.Intn(int(compTotal) + 1))

		var wantNode int
		var wantRem uint64
		var wantSet bool
		for name, tree := range trees {
			vv := v
			node := tree.CompFind(&vv)
			if !wantSet {
				wantNode, wantRem, wantSet = node, vv, true
				continue
			}
			require.Equalf(t, wantNode, node, "%s.CompFind(%d) node", name, v)
			require.Equalf(t, wantRem, vv, "%s.CompFind(%d) remainder", name, v)
		}
	}
}

func TestCrossVariantAddLinearity(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(3))
	const n, bound = 200, uint64(64)

	seq := make([]uint64, n)
	for i := range seq {
		seq[i] = uint64(rng.Intn(int(bound) + 1))
	}

	for name, tree := range allVariants(seq, bound) {
		idx := rng.Intn(n) + 1
		d1, d2 := int64(3), int64(-2)

		combined := allVariants(seq, bound)[name]
		combined.Add(idx, d1+d2)

		tree.Add(idx, d1)
		tree.Add(idx, d2)

		for k := 0; k <= n; k++ {
			require.Equalf(t, combined.Prefix(k), tree.Prefix(k),
				"%s: Add(d1) then Add(d2) vs Add(d1+d2) diverge at Prefix(%d)", name, k)
		}
	}
}

func TestCrossVariantLargeScaleAgreement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large-scale cross-variant scan in -short mode")
	}
	t.Parallel()

	rng := rand.New(rand.NewSource(4))
	const n, bound = 10_000, uint64(64)

	seq := make([]uint64, n)
	for i := range seq {
		seq[i] = uint64(rng.Intn(int(bound) + 1))
	}

	trees := allVariants(seq, bound)

	for i := 0; i < 10_000; i++ {
		idx := rng.Intn(n) + 1
		prefixBefore := trees["FixedF"].Prefix(idx - 1)
		maxDelta := int64(bound) - int64(trees["FixedF"].Prefix(idx)-prefixBefore)
		delta := int64(rng.Intn(int(maxDelta)+1)) - int64(rng.Intn(int(trees["FixedF"].Prefix(idx)-prefixBefore)+1))
		for _, tree := range trees {
			tree.Add(idx, delta)
		}
	}

	for q := 0; q < 10_000; q++ {
		k := rng.Intn(n + 1)
		var want uint64
		var wantSet bool
		for name, tree := range trees {
			got := tree.Prefix(k)
			if !wantSet {
				want, wantSet = got, true
				continue
			}
			require.Equalf(t, want, got, "%s.Prefix(%d) after random Add storm", name, k)
		}
	}
}
