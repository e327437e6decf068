package seedgen

import (
	"fmt"
	"testing"

	"wavecfs/gf2"
)

// fakeCache is a minimal in-memory Cache for exercising GetOrGenerate's
// resolution branches directly, without a filesystem.
type fakeCache struct {
	matrices map[string]*gf2.Matrix
	seeds    map[string]Seed
}

func newFakeCache() *fakeCache {
	return &fakeCache{matrices: map[string]*gf2.Matrix{}, seeds: map[string]Seed{}}
}

func fakeKey(prefix string, n, k, d int) string { return fmt.Sprintf("%s_%d_%d_%d", prefix, n, k, d) }

func (c *fakeCache) LoadMatrix(prefix string, n, k, d int) (*gf2.Matrix, bool, error) {
	m, ok := c.matrices[fakeKey(prefix, n, k, d)]
	return m, ok, nil
}
func (c *fakeCache) SaveMatrix(prefix string, n, k, d int, m *gf2.Matrix) error {
	c.matrices[fakeKey(prefix, n, k, d)] = m
	return nil
}
func (c *fakeCache) LoadSeed(prefix string, n, k, d int) (Seed, bool, error) {
	s, ok := c.seeds[fakeKey(prefix, n, k, d)]
	return s, ok, nil
}
func (c *fakeCache) SaveSeed(prefix string, n, k, d int, seed Seed) error {
	c.seeds[fakeKey(prefix, n, k, d)] = seed
	return nil
}

// TestGetOrGenerateCacheHitSkipsGeneration covers resolution step 1: a
// cached matrix is returned as-is, with a zero Seed (no generation work
// happened, so there is nothing to report).
func TestGetOrGenerateCacheHitSkipsGeneration(t *testing.T) {
	cache := newFakeCache()
	cached := gf2.New(2, 5)
	cached.Set(0, 0, 1)
	cached.Set(1, 4, 1)
	cache.matrices[fakeKey("G", 5, 2, 3)] = cached

	m, seed, err := GetOrGenerate(cache, Shake256Source{}, "G", 5, 2, 3, 2, 5, 0, Options{})
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if !m.Equal(cached) {
		t.Fatalf("cache hit did not return the cached matrix unchanged")
	}
	if seed != (Seed{}) {
		t.Fatalf("cache hit should report a zero Seed, got %v", seed)
	}
}

// TestGetOrGenerateSeedModeDrawsAndCachesFreshSeed covers resolution
// step 2's fresh-seed sub-case: no cached matrix and no cached seed, so
// GetOrGenerate draws a seed, persists it, expands it, systematizes it,
// and persists the resulting matrix.
func TestGetOrGenerateSeedModeDrawsAndCachesFreshSeed(t *testing.T) {
	cache := newFakeCache()
	src := Shake256Source{}

	m, seed, err := GetOrGenerate(cache, src, "G", 7, 3, 3, 3, 7, 0, Options{UseSeedMode: true})
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if seed == (Seed{}) {
		t.Fatalf("expected a freshly drawn, non-zero seed")
	}
	cachedSeed, ok, err := cache.LoadSeed("G", 7, 3, 3)
	if err != nil || !ok {
		t.Fatalf("expected the fresh seed to be persisted: ok=%v err=%v", ok, err)
	}
	if cachedSeed != seed {
		t.Fatalf("persisted seed does not match the returned seed")
	}
	want := ExpandMatrix(src, seed, 3, 7)
	gf2.MakeSystematic(0, want)
	if !m.Equal(want) {
		t.Fatalf("returned matrix does not match systematized ExpandMatrix(seed, 3, 7)")
	}
	cachedMatrix, ok, err := cache.LoadMatrix("G", 7, 3, 3)
	if err != nil || !ok {
		t.Fatalf("expected the expanded matrix to be persisted: ok=%v err=%v", ok, err)
	}
	if !cachedMatrix.Equal(m) {
		t.Fatalf("persisted matrix does not match the returned matrix")
	}
}

// TestGetOrGenerateSeedModeReusesCachedSeed covers resolution step 2's
// cached-seed sub-case: the matrix is not cached, but a seed already
// is (e.g. the matrix cache entry was cleared while the seed file
// survived). GetOrGenerate must reuse that seed rather than draw a new
// one, and the result must match ExpandMatrix's own output for it after
// the same MakeSystematic pass.
func TestGetOrGenerateSeedModeReusesCachedSeed(t *testing.T) {
	cache := newFakeCache()
	preset := testSeed(0x55)
	cache.seeds[fakeKey("G", 7, 3, 3)] = preset

	m, seed, err := GetOrGenerate(cache, Shake256Source{}, "G", 7, 3, 3, 3, 7, 0, Options{UseSeedMode: true})
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if seed != preset {
		t.Fatalf("expected the preset cached seed to be reused, got a different seed")
	}
	want := ExpandMatrix(Shake256Source{}, preset, 3, 7)
	gf2.MakeSystematic(0, want)
	if !m.Equal(want) {
		t.Fatalf("returned matrix does not match systematized ExpandMatrix(presetSeed, 3, 7)")
	}
}

// TestGetOrGenerateUnseededFreshDrawIgnoresCache covers resolution
// step 3: with UseSeedMode false and Regenerate true, GetOrGenerate
// draws straight from the CSPRNG, bypassing any stale cache entry, and
// reports a zero Seed since no seed was involved.
func TestGetOrGenerateUnseededFreshDrawIgnoresCache(t *testing.T) {
	cache := newFakeCache()
	stale := gf2.New(3, 7)
	for i := 0; i < 3; i++ {
		for j := 0; j < 7; j++ {
			stale.Set(i, j, 1)
		}
	}
	cache.matrices[fakeKey("G", 7, 3, 3)] = stale

	m, seed, err := GetOrGenerate(cache, Shake256Source{}, "G", 7, 3, 3, 3, 7, 0, Options{Regenerate: true})
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if seed != (Seed{}) {
		t.Fatalf("unseeded generation should report a zero Seed, got %v", seed)
	}
	if m.Rows() != 3 || m.Cols() != 7 {
		t.Fatalf("shape = (%d,%d), want (3,7)", m.Rows(), m.Cols())
	}
	if m.Equal(stale) {
		t.Fatalf("Regenerate must ignore the cached all-ones placeholder and draw fresh entropy")
	}
	cachedMatrix, ok, err := cache.LoadMatrix("G", 7, 3, 3)
	if err != nil || !ok {
		t.Fatalf("expected the freshly drawn matrix to overwrite the cache: ok=%v err=%v", ok, err)
	}
	if !cachedMatrix.Equal(m) {
		t.Fatalf("persisted matrix does not match the returned matrix")
	}
}

// TestGetOrGenerateRegenerateWithSeedModeDrawsFreshSeed covers the
// Regenerate+UseSeedMode combination: a cached seed must be ignored too,
// not just the cached matrix, since Regenerate means "start over."
func TestGetOrGenerateRegenerateWithSeedModeDrawsFreshSeed(t *testing.T) {
	cache := newFakeCache()
	oldSeed := testSeed(0x99)
	cache.seeds[fakeKey("G", 7, 3, 3)] = oldSeed
	cache.matrices[fakeKey("G", 7, 3, 3)] = gf2.New(3, 7)

	_, seed, err := GetOrGenerate(cache, Shake256Source{}, "G", 7, 3, 3, 3, 7, 0, Options{UseSeedMode: true, Regenerate: true})
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if seed == oldSeed {
		t.Fatalf("Regenerate should draw a fresh seed rather than reuse the cached one")
	}
}
