// Package seedgen deterministically expands a 32-byte seed into a
// uniformly random binary matrix and, on top of that, implements the
// get-or-generate resolution order of the scheme's seeded matrix
// generator: load from cache, else expand from a (cached or fresh) seed,
// else fall back to unseeded generation.
package seedgen

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/sha3"

	"wavecfs/errs"
	"wavecfs/gf2"
)

// SeedSize is the length in bytes of a Seed.
const SeedSize = 32

// Seed is a 32-byte immutable value that, together with (prefix, n, k, d),
// deterministically identifies a generated matrix.
type Seed [SeedSize]byte

// Source abstracts the CSPRNG used for matrix generation: FillRandom
// draws unseeded system entropy, FromSeed returns a deterministic byte
// stream keyed by seed. Any stream cipher or XOF that meets this
// contract is acceptable, provided it is used consistently so cached
// matrices stay reproducible.
type Source interface {
	FillRandom(buf []byte) error
	FromSeed(seed Seed) io.Reader
}

// Shake256Source implements Source with SHAKE256: unseeded entropy comes
// from crypto/rand, and the seeded stream is the SHAKE256 XOF output of
// the seed bytes, consumed bit by bit in row-major order by the matrix
// expander below.
type Shake256Source struct{}

// FillRandom draws len(buf) bytes of system entropy.
func (Shake256Source) FillRandom(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return errs.NewIOError("", err)
	}
	return nil
}

// FromSeed returns the SHAKE256 XOF stream keyed by seed.
func (Shake256Source) FromSeed(seed Seed) io.Reader {
	x := sha3.NewShake256()
	x.Write(seed[:])
	return x
}

// NewSeed draws a fresh seed from src.
func NewSeed(src Source) (Seed, error) {
	var s Seed
	if err := src.FillRandom(s[:]); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// shapeSeed derives a seed bound to (r, c) by folding the dimensions
// into the seed bytes through SHAKE256, independent of which Source the
// caller uses for the actual expansion. Without this, requesting two
// different shapes from the same raw seed would draw overlapping
// prefixes of the same underlying stream, since Source.FromSeed always
// restarts the stream from the seed bytes alone.
func shapeSeed(seed Seed, r, c int) Seed {
	h := sha3.NewShake256()
	h.Write(seed[:])
	var dims [8]byte
	binary.BigEndian.PutUint32(dims[0:4], uint32(r))
	binary.BigEndian.PutUint32(dims[4:8], uint32(c))
	h.Write(dims[:])
	var out Seed
	if _, err := io.ReadFull(h, out[:]); err != nil {
		panic("seedgen: unexpected short read deriving shaped seed: " + err.Error())
	}
	return out
}

// ExpandMatrix deterministically fills an r x c binary matrix from the
// byte stream produced by src.FromSeed, consuming bits in row-major
// order, one bit per stream bit (MSB first within each byte). The same
// seed and the same (r, c) always yield the same matrix; different
// shapes drawn from the same seed are unrelated, since the shape is
// folded into the seed before the stream is requested.
func ExpandMatrix(src Source, seed Seed, r, c int) *gf2.Matrix {
	stream := src.FromSeed(shapeSeed(seed, r, c))
	m := gf2.New(r, c)
	nbits := r * c
	buf := make([]byte, (nbits+7)/8)
	if _, err := io.ReadFull(stream, buf); err != nil {
		// SHAKE/XOF streams are unbounded; ReadFull only fails if the
		// reader itself errors, which a pure XOF never does.
		panic("seedgen: unexpected short read from seed stream: " + err.Error())
	}
	bit := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			byteIdx := bit / 8
			bitIdx := 7 - uint(bit%8)
			if (buf[byteIdx]>>bitIdx)&1 == 1 {
				m.Set(i, j, 1)
			}
			bit++
		}
	}
	return m
}
