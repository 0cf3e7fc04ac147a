// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenframes/matrix"
)

func TestColumnMeans(t *testing.T) {
	X := NewFilledDense(t, 3, 2, []float64{1, 10, 2, 20, 3, 30})
	for _, m := range []matrix.Matrix{X, hide{X}} {
		means, err := matrix.ColumnMeans(m)
		require.NoError(t, err)
		assert.Equal(t, []float64{2, 20}, means)
	}
	_, err := matrix.ColumnMeans(nil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestCenterColumns_RoundTrip(t *testing.T) {
	X := RandFilledDense(t, 5, 4, 11)
	Xc, means, err := matrix.CenterColumns(X)
	require.NoError(t, err)

	cm, err := matrix.ColumnMeans(Xc)
	require.NoError(t, err)
	assert.InDeltaSlice(t, make([]float64, 4), cm, 1e-15)

	back, err := matrix.AddRowVector(Xc, means)
	require.NoError(t, err)
	CompareClose(t, X, back, 0, 1e-15)
}

func TestCovariance_Known(t *testing.T) {
	// Columns x and 2x: var(x)=1, cov=2, var(2x)=4.
	X := NewFilledDense(t, 3, 2, []float64{1, 2, 2, 4, 3, 6})
	cov, means, err := matrix.Covariance(X)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, means)
	CompareExact(t, [][]float64{{1, 2}, {2, 4}}, cov)
}

func TestCovariance_ExactlySymmetric(t *testing.T) {
	cov, _, err := matrix.Covariance(RandFilledDense(t, 9, 5, 12))
	require.NoError(t, err)
	var i, j int
	for i = 0; i < 5; i++ {
		for j = i + 1; j < 5; j++ {
			assert.Equal(t, MustAt(t, cov, i, j), MustAt(t, cov, j, i))
		}
	}
	// Passes the strictest symmetry check, so Eigen accepts it as is.
	assert.NoError(t, matrix.ValidateSymmetric(cov, 1e-300))
}

func TestCovariance_NeedsTwoRows(t *testing.T) {
	_, _, err := matrix.Covariance(MustDense(t, 1, 3))
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}
