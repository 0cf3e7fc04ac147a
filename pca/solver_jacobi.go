// SPDX-License-Identifier: MIT

package pca

import (
	"github.com/katalvlaran/eigenframes/matrix"
)

// solveJacobi diagonalizes the sample covariance of X.
// Eigenvectors are the columns of Q; they are copied out as axes.
func solveJacobi(X matrix.Matrix, o options) (*decomposition, error) {
	cov, mean, err := matrix.Covariance(X)
	if err != nil {
		return nil, err
	}
	vals, Q, err := matrix.Eigen(cov, o.tol, o.maxSweeps)
	if err != nil {
		return nil, err
	}

	N := cov.Rows()
	c := cov.Values()
	d := &decomposition{mean: mean, values: vals, axes: make([][]float64, N)}
	var i, j int
	for j = 0; j < N; j++ {
		axis := make([]float64, N)
		for i = 0; i < N; i++ {
			axis[i], _ = Q.At(i, j)
		}
		d.axes[j] = axis
		d.total += c[j*N+j]
	}
	sortDescending(d)

	return d, nil
}
