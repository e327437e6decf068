// Package matcache persists generated matrices and seeds to a content
// addressed cache directory, keyed by (prefix, n, k, d). A missing entry
// is a plain cache miss; an entry that exists but cannot be parsed is
// reported as an IOError. A parsed matrix is not checked against the
// shape its (n, k, d) key implies.
// Grounded on the reference implementation's generate_matrix_filename,
// generate_seed_filename, save_matrix/load_matrix and their cache
// directory convention (CACHE_DIR).
package matcache

import (
	"fmt"
	"os"
	"path/filepath"

	"wavecfs/errs"
	"wavecfs/gf2"
	"wavecfs/seedgen"
)

// DefaultDir is the cache directory used when a CLI does not override it.
const DefaultDir = "./matrix_cache/"

// Cache is a directory-backed store for (prefix, n, k, d)-keyed matrices
// and seeds.
type Cache struct {
	Dir string
}

// New returns a Cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.NewIOError(dir, err)
	}
	return &Cache{Dir: dir}, nil
}

func matrixFilename(prefix string, n, k, d int) string {
	return fmt.Sprintf("%s_%d_%d_%d.txt", prefix, n, k, d)
}

func seedFilename(prefix string, n, k, d int) string {
	return fmt.Sprintf("%s_%d_%d_%d.seed", prefix, n, k, d)
}

// MatrixPath returns the path a matrix for (prefix, n, k, d) would live at.
func (c *Cache) MatrixPath(prefix string, n, k, d int) string {
	return filepath.Join(c.Dir, matrixFilename(prefix, n, k, d))
}

// SeedPath returns the path a seed for (prefix, n, k, d) would live at.
func (c *Cache) SeedPath(prefix string, n, k, d int) string {
	return filepath.Join(c.Dir, seedFilename(prefix, n, k, d))
}

// LoadMatrix loads a cached matrix, reporting (nil, false, nil) on a
// plain cache miss and an error only when the file exists but is
// unreadable or shape-corrupt in a way ReadText can detect.
func (c *Cache) LoadMatrix(prefix string, n, k, d int) (*gf2.Matrix, bool, error) {
	path := c.MatrixPath(prefix, n, k, d)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.NewIOError(path, err)
	}
	defer f.Close()
	m, err := gf2.ReadText(f)
	if err != nil {
		return nil, false, errs.NewIOError(path, err)
	}
	return m, true, nil
}

// SaveMatrix writes m to the cache entry for (prefix, n, k, d).
func (c *Cache) SaveMatrix(prefix string, n, k, d int, m *gf2.Matrix) error {
	path := c.MatrixPath(prefix, n, k, d)
	f, err := os.Create(path)
	if err != nil {
		return errs.NewIOError(path, err)
	}
	defer f.Close()
	if err := m.WriteText(f); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}

// LoadSeed loads a cached seed, reporting (Seed{}, false, nil) on a miss.
func (c *Cache) LoadSeed(prefix string, n, k, d int) (seedgen.Seed, bool, error) {
	path := c.SeedPath(prefix, n, k, d)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return seedgen.Seed{}, false, nil
	}
	if err != nil {
		return seedgen.Seed{}, false, errs.NewIOError(path, err)
	}
	if len(data) != seedgen.SeedSize {
		return seedgen.Seed{}, false, errs.NewIOError(path, fmt.Errorf("corrupt seed file: %d bytes, want %d", len(data), seedgen.SeedSize))
	}
	var s seedgen.Seed
	copy(s[:], data)
	return s, true, nil
}

// SaveSeed writes the raw 32 bytes of seed to the cache entry for
// (prefix, n, k, d).
func (c *Cache) SaveSeed(prefix string, n, k, d int, seed seedgen.Seed) error {
	path := c.SeedPath(prefix, n, k, d)
	if err := os.WriteFile(path, seed[:], 0o644); err != nil {
		return errs.NewIOError(path, err)
	}
	return nil
}
