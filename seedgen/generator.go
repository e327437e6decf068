package seedgen

import "wavecfs/gf2"

// Cache is the persistence surface GetOrGenerate needs; matcache.Cache
// satisfies it. Kept as a narrow interface here so seedgen does not
// import matcache back (matcache already imports seedgen for the Seed
// type).
type Cache interface {
	LoadMatrix(prefix string, n, k, d int) (*gf2.Matrix, bool, error)
	SaveMatrix(prefix string, n, k, d int, m *gf2.Matrix) error
	LoadSeed(prefix string, n, k, d int) (Seed, bool, error)
	SaveSeed(prefix string, n, k, d int, seed Seed) error
}

// Options controls GetOrGenerate's resolution order.
type Options struct {
	UseSeedMode bool
	Regenerate  bool
}

// GetOrGenerate resolves a (prefix, n, k, d)-keyed matrix of shape
// (rows, cols):
//
//  1. If !Regenerate and a cached matrix exists, load and return it.
//  2. Else if UseSeedMode: load a cached seed or draw and persist a
//     fresh one, expand it into a matrix, systematize, persist, return.
//  3. Else: draw a matrix directly from the CSPRNG (not reproducible),
//     systematize, persist, return.
//
// rows/cols is the raw shape to expand: (n-k, n) for a parity-check
// matrix H_A, or (k, n) for a generator matrix G1/G2. identityOffset is
// forwarded to gf2.MakeSystematic — pass k for H_A (identity block at
// the end, [A | I_{n-k}]) or 0 for a generator matrix (identity block
// at the start, [I_k | P]).
func GetOrGenerate(cache Cache, src Source, prefix string, n, k, d, rows, cols, identityOffset int, opts Options) (*gf2.Matrix, Seed, error) {
	if !opts.Regenerate {
		if m, ok, err := cache.LoadMatrix(prefix, n, k, d); err != nil {
			return nil, Seed{}, err
		} else if ok {
			return m, Seed{}, nil
		}
	}

	var seed Seed
	var m *gf2.Matrix
	if opts.UseSeedMode {
		var cached Seed
		var ok bool
		if !opts.Regenerate {
			var err error
			cached, ok, err = cache.LoadSeed(prefix, n, k, d)
			if err != nil {
				return nil, Seed{}, err
			}
		}
		if ok {
			seed = cached
		} else {
			fresh, err := NewSeed(src)
			if err != nil {
				return nil, Seed{}, err
			}
			seed = fresh
			if err := cache.SaveSeed(prefix, n, k, d, seed); err != nil {
				return nil, Seed{}, err
			}
		}
		m = ExpandMatrix(src, seed, rows, cols)
	} else {
		m = gf2.New(rows, cols)
		buf := make([]byte, (rows*cols+7)/8)
		if err := src.FillRandom(buf); err != nil {
			return nil, Seed{}, err
		}
		bit := 0
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				byteIdx, bitIdx := bit/8, uint(7-bit%8)
				if (buf[byteIdx]>>bitIdx)&1 == 1 {
					m.Set(i, j, 1)
				}
				bit++
			}
		}
	}

	gf2.MakeSystematic(identityOffset, m)
	if err := cache.SaveMatrix(prefix, n, k, d, m); err != nil {
		return nil, Seed{}, err
	}
	return m, seed, nil
}
