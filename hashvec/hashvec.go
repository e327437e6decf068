// Package hashvec turns an arbitrary message into the fixed-length
// binary vector s consumed by the signer and verifier. Hashing is an
// abstract, pluggable step rather than a fixed primitive; this package
// supplies the source-faithful default plus one alternative.
package hashvec

import "golang.org/x/crypto/sha3"

// Hasher reduces a message to a length-bit binary vector, one byte per
// bit (0 or 1), suitable for gf2.NewRowVector.
type Hasher interface {
	Hash(message []byte, length int) []byte
}

// Normalize truncates or zero-pads message to exactly length bytes, per
// the reference's fixed-width message handling ahead of hashing.
func Normalize(message []byte, length int) []byte {
	out := make([]byte, length)
	copy(out, message)
	return out
}

// ParityHasher reproduces the reference implementation's hash vector
// construction exactly: s[i] = message_bytes[i] mod 2, after Normalize
// has fixed the message to length bytes. This is the default Hasher.
type ParityHasher struct{}

// Hash implements Hasher.
func (ParityHasher) Hash(message []byte, length int) []byte {
	norm := Normalize(message, length)
	s := make([]byte, length)
	for i, b := range norm {
		s[i] = b & 1
	}
	return s
}

// Shake256Hasher derives s from the SHAKE256 XOF of the raw message
// rather than from the message bytes' parities directly. It is an
// alternative to ParityHasher, not a replacement: selecting it changes
// which vector gets signed, so it must be opted into explicitly by
// callers that want hash-derived (rather than parity-derived) s.
type Shake256Hasher struct{}

// Hash implements Hasher.
func (Shake256Hasher) Hash(message []byte, length int) []byte {
	x := sha3.NewShake256()
	x.Write(message)
	buf := make([]byte, (length+7)/8)
	x.Read(buf)
	s := make([]byte, length)
	for i := 0; i < length; i++ {
		byteIdx, bitIdx := i/8, uint(7-i%8)
		s[i] = (buf[byteIdx] >> bitIdx) & 1
	}
	return s
}
