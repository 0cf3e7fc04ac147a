// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra layer used by the PCA
// pipeline and the incremental reconstructor.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set and an
//     optional finite-only numeric policy.
//   - Kernels: Add, Sub, Mul, Transpose, Scale and MulAddRange, the block
//     update dst += A[:, lo:hi] · B[lo:hi, :] that drives incremental
//     reconstruction.
//   - Statistics: CenterColumns, ColumnMeans, Covariance.
//   - Spectral: Eigen, cyclic Jacobi sweeps for symmetric matrices.
//   - Comparison helpers: AllClose, FrobeniusNorm.
//
// Every public function returns package sentinels (see errors.go), wrapped
// with an operation tag; match them with errors.Is. Passing *Dense unlocks
// flat-slice fast paths; any other Matrix goes through At/Set.
package matrix
