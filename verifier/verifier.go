// Package verifier recomputes both sides of the syndrome identity a
// signature must satisfy and reports whether they match. A mismatch is
// a cryptographic reject, not an error: only missing or malformed
// inputs are reported as errors.
package verifier

import "wavecfs/gf2"

// Verify computes L = F*hash^T and R = H_A*sigma^T and reports whether
// they are elementwise equal. hash must have length F.Cols() and sigma
// must have length ha.Cols().
func Verify(hash, sigma []byte, f, ha *gf2.Matrix) (bool, error) {
	hashVec := gf2.NewRowVector(hash).Transpose()
	sigmaVec := gf2.NewRowVector(sigma).Transpose()

	l, err := gf2.Multiply(f, hashVec)
	if err != nil {
		return false, err
	}
	r, err := gf2.Multiply(ha, sigmaVec)
	if err != nil {
		return false, err
	}
	return l.Equal(r), nil
}
