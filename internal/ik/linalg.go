package ik

import "math"

// solveLinearSystem solves A x = b for the N x N system represented as a
// row-major slice of rows, via Gaussian elimination with partial pivoting.
// A and b are not mutated; a working copy is used internally. Returns
// false if the system is singular to working precision (pivot magnitude
// below eps).
func solveLinearSystem(a [][]float64, b []float64) ([]float64, bool) {
	n := len(b)
	// Augment a copy of A with b for elimination.
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		m[i] = row
	}

	const eps = 1e-12

	for col := 0; col < n; col++ {
		pivotRow := col
		pivotVal := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > pivotVal {
				pivotRow = r
				pivotVal = v
			}
		}
		if pivotVal < eps {
			return nil, false
		}
		m[col], m[pivotRow] = m[pivotRow], m[col]

		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := m[r][col] / m[col][col]
			if factor == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = m[i][n] / m[i][i]
	}
	return x, true
}
