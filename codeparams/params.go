// Package codeparams defines the (n, k, d) code parameters shared by the
// outer concatenated code C_A and the two inner codes C1, C2, and the
// BCH-like derivation used when parameters are not entered freely. This
// re-architects the reference implementation's three file-scoped static
// Params globals into an explicit, immutable value passed through the
// call chain.
package codeparams

import "wavecfs/errs"

// CodeParams is a code's (n, k, d): codeword length, message length, and
// minimum distance. The zero value is never valid on its own; use New or
// DeriveBCH.
type CodeParams struct {
	N, K, D int
}

// New validates and constructs a CodeParams: n must exceed both k and d
// for the code to make sense (a codeword can't be shorter than the
// message it encodes or the errors it corrects).
func New(n, k, d int) (CodeParams, error) {
	if n <= k || n <= d {
		return CodeParams{}, errs.NewConfigurationError("invalid code params n=%d k=%d d=%d: require n>k and n>d", n, k, d)
	}
	return CodeParams{N: n, K: k, D: d}, nil
}

// DeriveBCH computes BCH-like defaults from (m, t):
//
//	n = 2^m - 1
//	k = m * t
//	d = 2*t + 1
func DeriveBCH(m, t int) (CodeParams, error) {
	if m <= 0 || t <= 0 {
		return CodeParams{}, errs.NewConfigurationError("invalid BCH params m=%d t=%d: require m>0 and t>0", m, t)
	}
	n := (1 << uint(m)) - 1
	k := m * t
	d := 2*t + 1
	return New(n, k, d)
}

// Concatenate derives C_A = (n1+n2, k1, d1+d2) from two inner codes whose
// message lengths must already agree. Use CoerceK first if they don't.
//
// The resulting distance is the sum d1+d2. For the juxtaposed codeword
// (s*G1 || s*G2) it is a lower bound whenever d1 and d2 are the inner
// codes' actual minimum distances; nothing here checks that they are.
func Concatenate(c1, c2 CodeParams) (CodeParams, error) {
	if c1.K != c2.K {
		return CodeParams{}, errs.NewConfigurationError("inner codes have mismatched message lengths: G1.k=%d G2.k=%d", c1.K, c2.K)
	}
	return New(c1.N+c2.N, c1.K, c1.D+c2.D)
}

// CoerceK forces c2.K to equal c1.K, reporting whether a coercion
// actually happened. Callers that accept freely-entered parameters use
// this before Concatenate instead of failing outright on a mismatch.
func CoerceK(c1 CodeParams, c2 CodeParams) (coerced CodeParams, changed bool) {
	if c1.K == c2.K {
		return c2, false
	}
	c2.K = c1.K
	return c2, true
}
