// Package keygen generates the three structured matrices that make up
// a key pair: the outer parity-check matrix H_A and the two inner
// generator matrices G1, G2, each obtained from the seeded matrix
// generator under caller-supplied seed/regeneration flags.
package keygen

import (
	"sync"

	"wavecfs/codeparams"
	"wavecfs/errs"
	"wavecfs/gf2"
	"wavecfs/seedgen"
)

// Options controls how each of the three matrices is resolved and
// whether they are generated concurrently.
type Options struct {
	UseSeedMode bool
	Regenerate  bool
	// Concurrent generates H_A on one goroutine and G1, G2 on another.
	// H_A shares no cache state with the inner generators, but G1 and
	// G2 both resolve under the shared "G" prefix (see genG1/genG2
	// below) and so must stay sequential relative to each other.
	Concurrent bool
}

// Result is a key triple plus the seeds that reproduce it. A seed is
// only set for a matrix that was expanded from a seed on this call; it
// is zero when UseSeedMode was off or the matrix was loaded from the
// cache.
type Result struct {
	HA, G1, G2             *gf2.Matrix
	SeedHA, SeedG1, SeedG2 seedgen.Seed
}

// GenerateKeys produces H_A for the outer code ca, and G1/G2 for the
// inner codes c1, c2. Each matrix is independent: H_A has shape
// (ca.N-ca.K, ca.N) and is systematized with the identity block at the
// end ([A | I]); G1, G2 have shape (ci.K, ci.N) and are systematized
// with the identity block at the start ([I | P]).
func GenerateKeys(cache seedgen.Cache, src seedgen.Source, ca, c1, c2 codeparams.CodeParams, opts Options) (Result, error) {
	genHA := func() (*gf2.Matrix, seedgen.Seed, error) {
		ha, seed, err := seedgen.GetOrGenerate(cache, src, "H", ca.N, ca.K, ca.D, ca.N-ca.K, ca.N, ca.K, seedgen.Options{
			UseSeedMode: opts.UseSeedMode,
			Regenerate:  opts.Regenerate,
		})
		if err != nil {
			return nil, seedgen.Seed{}, err
		}
		// make_systematic is a column-swap-only greedy pass; it can leave
		// H_A partially systematic (see gf2.MakeSystematic). RREF is the
		// fallback to complete the rightmost identity block, and the
		// only place a singular matrix is fatal to keygen.
		if !gf2.IsSystematic(ca.K, ha) {
			if !gf2.RREF(ha) {
				return nil, seedgen.Seed{}, &errs.SingularMatrixError{Column: ca.K}
			}
		}
		return ha, seed, nil
	}
	// Both inner generators resolve under the same "G" prefix,
	// distinguished only by (n,k,d) — matching get_or_generate_matrix_with_seed("G", ...)
	// being called for both C1 and C2. When C1 and C2 share (n,k,d),
	// G1 and G2 resolve to the same cache entry: whichever of genG1,
	// genG2 runs first generates and saves it, and the other simply
	// loads what was just saved.
	genG1 := func() (*gf2.Matrix, seedgen.Seed, error) {
		return seedgen.GetOrGenerate(cache, src, "G", c1.N, c1.K, c1.D, c1.K, c1.N, 0, seedgen.Options{
			UseSeedMode: opts.UseSeedMode,
			Regenerate:  opts.Regenerate,
		})
	}
	genG2 := func() (*gf2.Matrix, seedgen.Seed, error) {
		return seedgen.GetOrGenerate(cache, src, "G", c2.N, c2.K, c2.D, c2.K, c2.N, 0, seedgen.Options{
			UseSeedMode: opts.UseSeedMode,
			Regenerate:  opts.Regenerate,
		})
	}

	if !opts.Concurrent {
		ha, seedHA, err := genHA()
		if err != nil {
			return Result{}, err
		}
		g1, seedG1, err := genG1()
		if err != nil {
			return Result{}, err
		}
		g2, seedG2, err := genG2()
		if err != nil {
			return Result{}, err
		}
		return Result{HA: ha, G1: g1, G2: g2, SeedHA: seedHA, SeedG1: seedG1, SeedG2: seedG2}, nil
	}

	var (
		ha, g1, g2             *gf2.Matrix
		seedHA, seedG1, seedG2 seedgen.Seed
		errHA, errG1, errG2    error
		wg                     sync.WaitGroup
	)
	wg.Add(2)
	go func() { defer wg.Done(); ha, seedHA, errHA = genHA() }()
	go func() {
		defer wg.Done()
		g1, seedG1, errG1 = genG1()
		if errG1 != nil {
			return
		}
		g2, seedG2, errG2 = genG2()
	}()
	wg.Wait()

	if errHA != nil {
		return Result{}, errHA
	}
	if errG1 != nil {
		return Result{}, errG1
	}
	if errG2 != nil {
		return Result{}, errG2
	}
	return Result{HA: ha, G1: g1, G2: g2, SeedHA: seedHA, SeedG1: seedG1, SeedG2: seedG2}, nil
}
