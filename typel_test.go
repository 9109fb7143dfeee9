// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

package fenwick

import "testing"

func TestTypeLScenario1(t *testing.T) {
	t.Parallel()

	tree := NewTypeL([]uint64{3, 1, 4, 1, 5, 9, 2, 6}, 64)

	if got := tree.Prefix(4); got != 9 {
		t.Fatalf("Prefix(4) = %d, want 9", got)
	}

	v := uint64(8)
	if got := tree.Find(&v); got != 3 {
		t.Fatalf("Find(8) = %d, want 3", got)
	}

	tree.Add(2, 10)
	if got := tree.Prefix(2); got != 14 {
		t.Fatalf("Prefix(2) after Add(2,10) = %d, want 14", got)
	}
}

func TestTypeLScenario3(t *testing.T) {
	t.Parallel()

	tree := NewTypeL(make([]uint64, 16), 64)
	v := uint64(0)
	if got := tree.Find(&v); got != 16 {
		t.Fatalf("Find(0) = %d, want 16", got)
	}
}

func TestTypeLAgreesWithTypeF(t *testing.T) {
	t.Parallel()

	seq := []uint64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9, 0, 2, 3, 60, 1}
	a := NewTypeF(seq, 64)
	b := NewTypeL(seq, 64)

	for k := 0; k <= len(seq); k++ {
		if pa, pb := a.Prefix(k), b.Prefix(k); pa != pb {
			t.Fatalf("Prefix(%d): TypeF=%d TypeL=%d", k, pa, pb)
		}
	}

	for _, v := range []uint64{0, 5, 10, 20, 40, 70} {
		va, vb := v, v
		if fa, fb := a.Find(&va), b.Find(&vb); fa != fb || va != vb {
			t.Fatalf("Find(%d): TypeF=(%d,%d) TypeL=(%d,%d)", v, fa, va, fb, vb)
		}
	}
}
