// Command generate-golden regenerates the golden factorial table used by
// the factorial package tests. The oracle computes n! with math/big,
// independently of the uint64 code under test, so the table catches any
// overflow or loop error in the fast path.
//
// Usage:
//
//	go run ./cmd/generate-golden [-out path]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
)

// maxN is the largest argument whose factorial fits in a uint64.
const maxN = 20

// factBig computes n! exactly using arbitrary-precision arithmetic.
func factBig(n uint64) *big.Int {
	result := big.NewInt(1)
	for i := uint64(2); i <= n; i++ {
		result.Mul(result, new(big.Int).SetUint64(i))
	}
	return result
}

func main() {
	out := flag.String("out", "internal/factorial/testdata/factorials.golden", "output path for the golden table")
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# Golden factorial values for the uint64 range.")
	fmt.Fprintln(w, "# Generated by cmd/generate-golden. Do not edit by hand.")
	for n := uint64(0); n <= maxN; n++ {
		v := factBig(n)
		if !v.IsUint64() {
			log.Fatalf("%d! does not fit in a uint64; the table stops at %d", n, maxN)
		}
		fmt.Fprintf(w, "%d %d\n", n, v.Uint64())
	}
	if err := w.Flush(); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	fmt.Printf("wrote %s (0..%d)\n", *out, maxN)
}
