// Package signer assembles the public key F from a key triple and
// produces signatures whose syndrome under H_A matches F times the
// message's hash vector.
package signer

import (
	"wavecfs/codeparams"
	"wavecfs/gf2"
	"wavecfs/hashvec"
)

// Result is everything a sign operation produces and persists.
type Result struct {
	Hash  []byte // length c1.K (== ca.K), one bit per byte
	F     *gf2.Matrix
	Sigma []byte // length ca.N, one bit per byte
}

// ComputePublicKey computes F = H_A^(1)*G1^T xor H_A^(2)*G2^T, where
// H_A^(1) and H_A^(2) are H_A's left n1 and right n2 column blocks.
func ComputePublicKey(ha, g1, g2 *gf2.Matrix, n1 int) (*gf2.Matrix, error) {
	ha1 := ha.ColumnBlock(0, n1)
	ha2 := ha.ColumnBlock(n1, ha.Cols())

	left, err := gf2.Multiply(ha1, g1.Transpose())
	if err != nil {
		return nil, err
	}
	right, err := gf2.Multiply(ha2, g2.Transpose())
	if err != nil {
		return nil, err
	}
	return gf2.Add(left, right)
}

// Sign hashes message into a length-ca.K vector s, computes the public
// key F, and returns sigma = (s*G1 || s*G2), whose syndrome under H_A
// equals F*s^T by construction.
func Sign(message []byte, ca, c1, c2 codeparams.CodeParams, ha, g1, g2 *gf2.Matrix, hasher hashvec.Hasher) (Result, error) {
	hash := hasher.Hash(message, ca.K)

	f, err := ComputePublicKey(ha, g1, g2, c1.N)
	if err != nil {
		return Result{}, err
	}

	s := gf2.NewRowVector(hash)
	sg1, err := gf2.Multiply(s, g1)
	if err != nil {
		return Result{}, err
	}
	sg2, err := gf2.Multiply(s, g2)
	if err != nil {
		return Result{}, err
	}

	sigma := make([]byte, 0, ca.N)
	sigma = append(sigma, sg1.RowBits(0)...)
	sigma = append(sigma, sg2.RowBits(0)...)

	return Result{Hash: hash, F: f, Sigma: sigma}, nil
}
