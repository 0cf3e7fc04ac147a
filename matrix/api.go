// SPDX-License-Identifier: MIT
// Public API facades.
//
// Purpose:
//   - Provide thin, documented entry points for common tasks across the package.
//   - Avoid logic duplication: each facade delegates to the canonical implementation.

package matrix

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1.0
	}

	return I, nil
}

// AsDense returns m itself when it is a *Dense, otherwise a *Dense copy.
// Errors: ErrNilMatrix, wrapped At errors.
func AsDense(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if d, ok := m.(*Dense); ok {
		return d, nil
	}

	return toDense(m)
}

// ColumnMeans returns the mean of every column of X.
func ColumnMeans(X Matrix) ([]float64, error) { return columnMeans(X) }

// CenterColumns subtracts per-column means and returns (centered copy, means).
func CenterColumns(X Matrix) (*Dense, []float64, error) { return centerColumns(X) }

// AddRowVector returns X with v added to every row (Y[i,j] = X[i,j] + v[j]).
// Inverse of CenterColumns when v is the returned means.
func AddRowVector(X Matrix, v []float64) (*Dense, error) { return ewBroadcastCols(X, v, +1) }

// Covariance returns the sample covariance of X's columns and the column means.
// Requires at least two rows.
func Covariance(X Matrix) (*Dense, []float64, error) { return covariance(X) }

// AllClose reports whether |a-b| ≤ atol + rtol*|b| holds element-wise.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	return ewAllClose(a, b, rtol, atol)
}

// EigenSym is Eigen with the package defaults (DefaultEigenTol, DefaultEigenMaxSweeps).
func EigenSym(m Matrix) ([]float64, Matrix, error) {
	return Eigen(m, DefaultEigenTol, DefaultEigenMaxSweeps)
}
