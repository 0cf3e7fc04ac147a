// SPDX-License-Identifier: MIT
// Package matrix provides universal operations on any Matrix implementation,
// including element-wise addition, subtraction, matrix multiplication, the
// ranged multiply-accumulate used by incremental reconstruction, transpose,
// scalar scaling and symmetric eigen-decomposition. All functions perform
// strict fail-fast validation and return clear errors on dimension mismatches.
//
// Notes:
//   - *Dense operands take flat-slice fast paths; other Matrix implementations
//     go through At/Set with identical loop orders, so results are bitwise equal.

package matrix

import (
	"fmt"
	"math"
)

// NormZero is the additive identity for norm and accumulation operations.
const NormZero = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd         = "Add"
	opSub         = "Sub"
	opMul         = "Mul"
	opMulAddRange = "MulAddRange"
	opTranspose   = "Transpose"
	opScale       = "Scale"
	opEigen       = "Eigen"
	opFrobenius   = "FrobeniusNorm"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// addSub is the shared body of Add and Sub: C = A + sign*B.
// Inputs must have identical shapes; a fresh Dense is allocated.
func addSub(a, b Matrix, sign float64, opTag string) (Matrix, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	r, c := a.Rows(), a.Cols()
	res, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}

	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			for idx := range res.data {
				res.data[idx] = da.data[idx] + sign*db.data[idx]
			}
			return res, nil
		}
	}

	var (
		i, j   int
		av, bv float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if av, err = a.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return nil, matrixErrorf(opTag, err)
			}
			res.data[i*c+j] = av + sign*bv
		}
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Add(a, b Matrix) (Matrix, error) { return addSub(a, b, +1, opAdd) }

// Sub computes the element-wise difference C = A - B and returns a fresh Dense result.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Sub(a, b Matrix) (Matrix, error) { return addSub(a, b, -1, opSub) }

// Mul performs standard matrix multiplication C = A × B (no aliasing).
// Implementation:
//   - Stage 1: Validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: Delegate to mulAddRange over the full inner range [0, A.Cols)
//     into a zero-initialized result.
//
// Behavior highlights:
//   - Deterministic i→k→j loops; one allocation for C; zero A[i,k] are skipped.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
//
// Notes:
//   - Because Mul and MulAddRange share one kernel, accumulating consecutive
//     ranges reproduces Mul bit for bit.
func Mul(a, b Matrix) (Matrix, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = mulAddRange(res, a, b, 0, a.Cols()); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	return res, nil
}

// MulAddRange accumulates a partial product in place:
//
//	dst += A[:, lo:hi] · B[lo:hi, :]
//
// Implementation:
//   - Stage 1: Validate operands (non-nil, A.Cols == B.Rows), the inner range
//     0 ≤ lo ≤ hi ≤ A.Cols, and dst shape (A.Rows × B.Cols).
//   - Stage 2: i→k→j accumulation over k ∈ [lo, hi) only.
//
// Behavior highlights:
//   - Cost is O(A.Rows * (hi-lo) * B.Cols): independent of how much has been
//     accumulated before. hi-lo == 1 is a rank-1 (outer product) update.
//   - lo == hi is a legal no-op.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrOutOfRange.
//
// Determinism:
//   - Summation order per cell is k ascending, identical to Mul.
func MulAddRange(dst *Dense, a, b Matrix, lo, hi int) error {
	if dst == nil {
		return matrixErrorf(opMulAddRange, ErrNilMatrix)
	}
	if err := ValidateMulCompatible(a, b); err != nil {
		return matrixErrorf(opMulAddRange, err)
	}
	if err := ValidateInnerRange(lo, hi, a.Cols()); err != nil {
		return matrixErrorf(opMulAddRange, err)
	}
	if dst.r != a.Rows() || dst.c != b.Cols() {
		return matrixErrorf(opMulAddRange, ErrDimensionMismatch)
	}
	if err := mulAddRange(dst, a, b, lo, hi); err != nil {
		return matrixErrorf(opMulAddRange, err)
	}

	return nil
}

// mulAddRange is the unchecked kernel behind Mul and MulAddRange.
// Preconditions are validated by the callers.
func mulAddRange(dst *Dense, a, b Matrix, lo, hi int) error {
	rows, inner, cols := a.Rows(), a.Cols(), b.Cols()
	var (
		i, j, k int
		av, bv  float64
		err     error
	)

	// Fast-path for two Dense matrices.
	if da, okA := a.(*Dense); okA {
		if db, okB := b.(*Dense); okB {
			var rowA, rowB, rowD int
			for i = 0; i < rows; i++ {
				rowA = i * inner
				rowD = i * cols
				for k = lo; k < hi; k++ {
					av = da.data[rowA+k]
					if av == 0 {
						continue // skip zero for performance
					}
					rowB = k * cols
					for j = 0; j < cols; j++ {
						dst.data[rowD+j] += av * db.data[rowB+j]
					}
				}
			}
			return nil
		}
	}

	// Fallback: same i→k→j order through the interface.
	for i = 0; i < rows; i++ {
		for k = lo; k < hi; k++ {
			if av, err = a.At(i, k); err != nil {
				return fmt.Errorf("At(%d,%d): %w", i, k, err)
			}
			if av == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				if bv, err = b.At(k, j); err != nil {
					return fmt.Errorf("At(%d,%d): %w", k, j, err)
				}
				dst.data[i*cols+j] += av * bv
			}
		}
	}

	return nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// The input is never mutated. Errors: ErrNilMatrix.
// Complexity: O(r*c).
func Transpose(m Matrix) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	r, c := m.Rows(), m.Cols()
	res, err := NewDense(c, r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if d, ok := m.(*Dense); ok {
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				res.data[j*r+i] = d.data[i*c+j]
			}
		}
		return res, nil
	}

	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*r+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// The input is never mutated. Errors: ErrNilMatrix, ErrNaNInf (alpha).
func Scale(m Matrix, alpha float64) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if isNonFinite(alpha) {
		return nil, matrixErrorf(opScale, ErrNaNInf)
	}
	r, c := m.Rows(), m.Cols()
	res, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}

	if d, ok := m.(*Dense); ok {
		for idx, v := range d.data {
			res.data[idx] = alpha * v
		}
		return res, nil
	}

	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opScale, err)
			}
			res.data[i*c+j] = alpha * v
		}
	}

	return res, nil
}

// FrobeniusNorm returns sqrt(Σ m[i,j]²) as a plain sum of squares (no
// overflow rescaling). Errors: ErrNilMatrix.
func FrobeniusNorm(m Matrix) (float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return 0, matrixErrorf(opFrobenius, err)
	}
	sum := NormZero
	if d, ok := m.(*Dense); ok {
		for _, v := range d.data {
			sum += v * v
		}
		return math.Sqrt(sum), nil
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			if v, err = m.At(i, j); err != nil {
				return 0, matrixErrorf(opFrobenius, err)
			}
			sum += v * v
		}
	}

	return math.Sqrt(sum), nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// cyclic Jacobi sweeps.
// Implementation:
//   - Stage 1: Validate symmetric square input within tol.
//   - Stage 2: Copy into a working Dense A and start Q = I.
//   - Stage 3: Each sweep visits every pair (p,q), p<q, in row order and
//     applies the rotation that annihilates A[p,q]; stop when
//     max|A[p,q]| < tol.
//
// Returns:
//   - []float64: eigenvalues (diagonal of the rotated matrix), unsorted.
//   - Matrix: Q whose columns are the matching orthonormal eigenvectors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrBadTolerance,
//     ErrAsymmetry, ErrMatrixEigenFailed (max off-diagonal ≥ tol after maxSweeps).
//
// Determinism:
//   - Fixed sweep order produces stable results.
//
// Complexity:
//   - Time O(sweeps * n^3), Space O(n^2).
//
// Notes:
//   - Pairs with |A[p,q]| ≤ tol are skipped (c=1, s=0) to avoid blow-ups.
func Eigen(m Matrix, tol float64, maxSweeps int) ([]float64, Matrix, error) {
	if err := ValidateSymmetric(m, tol); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if maxSweeps < 1 {
		return nil, nil, matrixErrorf(opEigen, ErrOutOfRange)
	}

	n := m.Rows()
	A, err := toDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	Q, err := NewDense(n, n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i int
	for i = 0; i < n; i++ {
		Q.data[i*n+i] = 1.0
	}

	var (
		sweep, p, q        int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
		a                  = A.data
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		if maxOffDiagonal(a, n) < tol {
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a[p*n+q]
				if math.Abs(apq) <= tol {
					continue
				}
				app = a[p*n+p]
				aqq = a[q*n+q]

				// θ = (aqq−app)/(2*apq); t = sign(θ) / (|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					aip = a[i*n+p]
					aiq = a[i*n+q]
					a[i*n+p] = c*aip - s*aiq
					a[p*n+i] = a[i*n+p]
					a[i*n+q] = s*aip + c*aiq
					a[q*n+i] = a[i*n+q]
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+q], a[q*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = Q.data[i*n+p]
					qiq = Q.data[i*n+q]
					Q.data[i*n+p] = c*qip - s*qiq
					Q.data[i*n+q] = s*qip + c*qiq
				}
			}
		}
	}
	if maxOffDiagonal(a, n) >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a[i*n+i]
	}

	return eigs, Q, nil
}

// maxOffDiagonal returns max_{i<j} |a[i,j]| of a flat n×n buffer.
func maxOffDiagonal(a []float64, n int) float64 {
	maxOff := NormZero
	var i, j int
	var off float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a[i*n+j])
			if off > maxOff {
				maxOff = off
			}
		}
	}

	return maxOff
}

// toDense returns an independent *Dense copy of any Matrix.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d.copyDense(), nil
	}
	r, c := m.Rows(), m.Cols()
	res, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, err
			}
			res.data[i*c+j] = v
		}
	}

	return res, nil
}
