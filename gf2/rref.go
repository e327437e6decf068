package gf2

// RREF reduces an r x c binary matrix to reduced row echelon form in
// place, processing the rightmost r columns in order. For each target
// column it finds a pivot (searching downward and swapping rows if the
// current pivot position is zero), then XORs the pivot row into every
// other row with a 1 in that column, both below (forward substitution)
// and above (back substitution). On success the rightmost r columns form
// the identity.
//
// RREF reports false, leaving h partially reduced, if it hits an
// all-zero pivot column with no row below to swap in — the matrix
// restricted to those columns is singular. Unlike the reference
// implementation, which only logs this and returns void, the caller
// decides whether a singular reduction is fatal.
func RREF(h *Matrix) bool {
	r, c := h.Rows(), h.Cols()
	startCol := c - r
	for pivotRow, col := 0, startCol; col < c; pivotRow, col = pivotRow+1, col+1 {
		if h.Get(pivotRow, col) == 0 {
			swapRow := -1
			for sr := pivotRow + 1; sr < r; sr++ {
				if h.Get(sr, col) == 1 {
					swapRow = sr
					break
				}
			}
			if swapRow == -1 {
				return false
			}
			h.SwapRows(pivotRow, swapRow)
		}

		for sr := pivotRow + 1; sr < r; sr++ {
			if h.Get(sr, col) == 1 {
				h.XorRowInto(sr, pivotRow)
			}
		}
		for sr := 0; sr < pivotRow; sr++ {
			if h.Get(sr, col) == 1 {
				h.XorRowInto(sr, pivotRow)
			}
		}
	}
	return true
}
