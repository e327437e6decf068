// Package gf2 implements dense matrices over the binary field GF(2).
//
// Rows are bit-packed with bitset.BitSet rather than one byte per entry,
// per the storage preference for this scheme: additions are XOR and
// multiplications are AND, so the whole algebra maps onto bitset's
// word-level set operations. make_systematic and rref mirror the
// reference C implementation's column-swap-only and full-pivot
// algorithms respectively.
package gf2
