// Copyright (c) 2025 The fenwick authors
// SPDX-License-Identifier: MIT

// Command fenwickdump builds a Fenwick tree of one of the eight
// variants from a pseudo-random sequence and prints a diagnostic
// summary: size, bit count, and a handful of sample prefix sums. With
// -out it also writes the serialized tree to that path; it never
// reads a tree back.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/gaissmai/fenwick"
)

var variants = map[string]fenwick.TreeFactory{
	"fixedf": fenwick.FactoryFixedF,
	"fixedl": fenwick.FactoryFixedL,
	"bytef":  fenwick.FactoryByteF,
	"bytel":  fenwick.FactoryByteL,
	"bitf":   fenwick.FactoryBitF,
	"bitl":   fenwick.FactoryBitL,
	"typef":  fenwick.FactoryTypeF,
	"typel":  fenwick.FactoryTypeL,
}

func main() {
	variant := flag.String("variant", "fixedf", "tree variant: fixedf, fixedl, bytef, bytel, bitf, bitl, typef, typel")
	size := flag.Int("size", 16, "number of elements in the generated sequence")
	bound := flag.Uint64("bound", 64, "inclusive upper bound on each element")
	seed := flag.Int64("seed", 1, "PRNG seed for the generated sequence")
	out := flag.String("out", "", "write the serialized tree to this path instead of just dumping it")
	flag.Parse()

	factory, ok := variants[*variant]
	if !ok {
		log.Fatalf("fenwickdump: unknown variant %q", *variant)
	}

	rng := rand.New(rand.NewSource(*seed))
	sequence := make([]uint64, *size)
	for i := range sequence {
		sequence[i] = uint64(rng.Intn(int(*bound) + 1))
	}

	tree := factory(sequence, *bound)

	fmt.Printf("variant:  %s\n", *variant)
	fmt.Printf("size:     %d\n", tree.Size())
	fmt.Printf("bound:    %d\n", *bound)
	fmt.Printf("bitCount: %d\n", tree.BitCount())

	fmt.Println("sample prefixes:")
	for _, k := range sampleIndices(tree.Size()) {
		fmt.Printf("  prefix(%d) = %d\n", k, tree.Prefix(k))
	}

	if *out == "" {
		return
	}

	writer, ok := tree.(io.WriterTo)
	if !ok {
		log.Fatalf("fenwickdump: variant %q does not support serialization", *variant)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("fenwickdump: %v", err)
	}
	defer f.Close()

	if _, err := writer.WriteTo(f); err != nil {
		log.Fatalf("fenwickdump: write: %v", err)
	}
}

func sampleIndices(n int) []int {
	if n == 0 {
		return nil
	}
	idx := []int{0, n}
	if mid := n / 2; mid != 0 && mid != n {
		idx = append(idx, mid)
	}
	return idx
}
