// SPDX-License-Identifier: MIT

// Package pca fits a principal-component basis to row samples and maps
// samples to and from component coordinates.
//
// Two solvers are available:
//
//   - SolverJacobi (default) builds the sample covariance with the matrix
//     package and diagonalizes it with cyclic Jacobi sweeps. Exact and
//     dependency-free, but O(N³) per sweep in the feature count N.
//   - SolverSVD factorizes the centered data with gonum's thin SVD, which
//     scales to image-sized feature counts (e.g. 28×28 = 784).
//
// Components are returned as rows (k×N), ordered by decreasing variance,
// with a deterministic sign: the largest-magnitude entry of each component is
// positive. The component matrix is exactly the basis the reconstruct
// package consumes.
package pca
