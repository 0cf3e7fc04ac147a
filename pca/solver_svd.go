// SPDX-License-Identifier: MIT

package pca

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/eigenframes/matrix"
)

// solveSVD factorizes the centered data Xc = U Σ Vᵀ. The right singular
// vectors (columns of V) are the principal axes and σ²/(n-1) the variances.
// Singular values come back in descending order already.
func solveSVD(X matrix.Matrix) (*decomposition, error) {
	Xc, mean, err := matrix.CenterColumns(X)
	if err != nil {
		return nil, err
	}
	n, N := Xc.Shape()
	g := mat.NewDense(n, N, Xc.Values())

	var svd mat.SVD
	if ok := svd.Factorize(g, mat.SVDThin); !ok {
		return nil, ErrSolverFailed
	}
	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	scale := 1.0 / float64(n-1)
	d := &decomposition{
		mean:   mean,
		values: make([]float64, len(sigma)),
		axes:   make([][]float64, len(sigma)),
	}
	for i, s := range sigma {
		d.values[i] = s * s * scale
		d.axes[i] = mat.Col(nil, i, &v)
		d.total += d.values[i]
	}
	sortDescending(d)

	return d, nil
}
