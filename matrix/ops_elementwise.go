// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise micro-kernels (ew*) shared by statistics and facades.
//   - Each kernel returns a fresh *Dense; inputs are never mutated.
//
// Determinism:
//   - Fixed i→j traversal; Dense fast paths operate on the flat buffer.

package matrix

import "math"

const (
	opBroadcastCols = "BroadcastCols"
	opAllClose      = "AllClose"
)

// ewBroadcastCols returns Y[i,j] = X[i,j] + sign*v[j].
// sign=-1 subtracts column means (centering); sign=+1 adds them back.
// Errors: ErrNilMatrix, ErrDimensionMismatch (len(v) != Cols).
// Complexity: O(r*c).
func ewBroadcastCols(X Matrix, v []float64, sign float64) (*Dense, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, matrixErrorf(opBroadcastCols, err)
	}
	r, c := X.Rows(), X.Cols()
	if err := ValidateVecLen(v, c); err != nil {
		return nil, matrixErrorf(opBroadcastCols, err)
	}
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opBroadcastCols, err)
	}

	var i, j, base int
	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base = i * c
			for j = 0; j < c; j++ {
				out.data[base+j] = d.data[base+j] + sign*v[j]
			}
		}
		return out, nil
	}

	var x float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if x, err = X.At(i, j); err != nil {
				return nil, matrixErrorf(opBroadcastCols, err)
			}
			out.data[i*c+j] = x + sign*v[j]
		}
	}

	return out, nil
}

// ewAllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol|; non-finite tolerances are rejected.
func ewAllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, matrixErrorf(opAllClose, ErrNaNInf)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range da.data {
				if math.Abs(da.data[idx]-db.data[idx]) > atol+rtol*math.Abs(db.data[idx]) {
					return false, nil // early-exit on first violation
				}
			}
			return true, nil
		}
	}

	var av, bv float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j) // shapes are validated above
			bv, _ = b.At(i, j)
			if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}
