package gf2

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Matrix is a dense matrix over GF(2). Each row is stored as an
// independently owned bitset; ownership is exclusive and copies are
// explicit via Clone.
type Matrix struct {
	r, c int
	rows []*bitset.BitSet
}

// New returns an r x c zero matrix.
func New(r, c int) *Matrix {
	if r < 0 || c < 0 {
		panic("gf2: negative dimension")
	}
	rows := make([]*bitset.BitSet, r)
	for i := range rows {
		rows[i] = bitset.New(uint(c))
	}
	return &Matrix{r: r, c: c, rows: rows}
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.c }

// Get returns the bit at (i, j) as 0 or 1.
func (m *Matrix) Get(i, j int) byte {
	m.checkBounds(i, j)
	if m.rows[i].Test(uint(j)) {
		return 1
	}
	return 0
}

// Set writes bit v (0 or 1) at (i, j).
func (m *Matrix) Set(i, j int, v byte) {
	m.checkBounds(i, j)
	if v&1 == 1 {
		m.rows[i].Set(uint(j))
	} else {
		m.rows[i].Clear(uint(j))
	}
}

func (m *Matrix) checkBounds(i, j int) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		panic(fmt.Sprintf("gf2: index (%d,%d) out of bounds for %dx%d matrix", i, j, m.r, m.c))
	}
}

// Row returns the underlying bitset for row i. Callers must not mutate it
// directly unless they own the matrix exclusively.
func (m *Matrix) Row(i int) *bitset.BitSet {
	if i < 0 || i >= m.r {
		panic(fmt.Sprintf("gf2: row %d out of bounds for %d rows", i, m.r))
	}
	return m.rows[i]
}

// Clone returns a deep, independently owned copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{r: m.r, c: m.c, rows: make([]*bitset.BitSet, m.r)}
	for i, row := range m.rows {
		out.rows[i] = row.Clone()
	}
	return out
}

// Equal reports whether two matrices have identical shape and contents.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.r != o.r || m.c != o.c {
		return false
	}
	for i := range m.rows {
		if !m.rows[i].Equal(o.rows[i]) {
			return false
		}
	}
	return true
}

// SwapRows exchanges rows i and j in place.
func (m *Matrix) SwapRows(i, j int) {
	if i == j {
		return
	}
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
}

// XorRowInto XORs row src into row dst (dst ^= src), in place.
func (m *Matrix) XorRowInto(dst, src int) {
	m.rows[dst].InPlaceSymmetricDifference(m.rows[src])
}

// Add returns the elementwise XOR of m and o. Dimensions must match.
func Add(m, o *Matrix) (*Matrix, error) {
	if m.r != o.r || m.c != o.c {
		return nil, fmt.Errorf("gf2: Add dimension mismatch: %dx%d vs %dx%d", m.r, m.c, o.r, o.c)
	}
	out := New(m.r, m.c)
	for i := range out.rows {
		out.rows[i] = m.rows[i].SymmetricDifference(o.rows[i])
	}
	return out, nil
}

// Transpose returns the transpose of m.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if m.Get(i, j) == 1 {
				out.Set(j, i, 1)
			}
		}
	}
	return out
}

// Multiply computes C = A * B over GF(2); A.Cols() must equal B.Rows().
//
// Each output bit is the parity of the popcount of (row i of A) AND
// (column j of B): summing AND-products mod 2 is exactly XORing them, so
// the whole inner loop collapses to one bitset intersection and a
// Count() per output entry instead of a per-bit triple loop.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a.c != b.r {
		return nil, fmt.Errorf("gf2: Multiply dimension mismatch: %dx%d * %dx%d", a.r, a.c, b.r, b.c)
	}
	bt := b.Transpose()
	out := New(a.r, b.c)
	for i := 0; i < a.r; i++ {
		ai := a.rows[i]
		for j := 0; j < b.c; j++ {
			if ai.IntersectionCardinality(bt.rows[j])%2 == 1 {
				out.rows[i].Set(uint(j))
			}
		}
	}
	return out, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// ColumnBlock returns the columns [from, to) as an independent matrix.
func (m *Matrix) ColumnBlock(from, to int) *Matrix {
	if from < 0 || to > m.c || from > to {
		panic(fmt.Sprintf("gf2: invalid column block [%d,%d) for %d columns", from, to, m.c))
	}
	out := New(m.r, to-from)
	for i := 0; i < m.r; i++ {
		for j := from; j < to; j++ {
			if m.Get(i, j) == 1 {
				out.Set(i, j-from, 1)
			}
		}
	}
	return out
}

// NewRowVector builds a 1 x len(bits) matrix from a slice of 0/1 bytes.
func NewRowVector(bits []byte) *Matrix {
	out := New(1, len(bits))
	for j, v := range bits {
		if v&1 == 1 {
			out.Set(0, j, 1)
		}
	}
	return out
}

// RowBits returns row i as a slice of 0/1 bytes.
func (m *Matrix) RowBits(i int) []byte {
	out := make([]byte, m.c)
	for j := 0; j < m.c; j++ {
		out[j] = m.Get(i, j)
	}
	return out
}

// Weight returns the Hamming weight (popcount) of row i.
func (m *Matrix) Weight(i int) int {
	return int(m.rows[i].Count())
}

// HCat returns the horizontal concatenation [m | o]; row counts must match.
func HCat(m, o *Matrix) (*Matrix, error) {
	if m.r != o.r {
		return nil, fmt.Errorf("gf2: HCat row mismatch: %d vs %d", m.r, o.r)
	}
	out := New(m.r, m.c+o.c)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if m.Get(i, j) == 1 {
				out.Set(i, j, 1)
			}
		}
		for j := 0; j < o.c; j++ {
			if o.Get(i, j) == 1 {
				out.Set(i, m.c+j, 1)
			}
		}
	}
	return out, nil
}
