// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenframes/matrix"
)

func TestAddRowVector(t *testing.T) {
	X := NewFilledDense(t, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	for _, m := range []matrix.Matrix{X, hide{X}} {
		Y, err := matrix.AddRowVector(m, []float64{10, 0, -1})
		require.NoError(t, err)
		CompareExact(t, [][]float64{{11, 2, 2}, {14, 5, 5}}, Y)
	}
	// Input untouched.
	assert.Equal(t, 1.0, MustAt(t, X, 0, 0))

	_, err := matrix.AddRowVector(X, []float64{1})
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AddRowVector(X, nil)
	AssertErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestAllClose(t *testing.T) {
	a := NewFilledDense(t, 1, 2, []float64{1, 100})
	b := NewFilledDense(t, 1, 2, []float64{1 + 1e-10, 100 + 1e-6})

	ok, err := matrix.AllClose(a, b, 1e-7, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, hide{b}, 0, 1e-9)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.AllClose(a, b, math.Inf(1), 0)
	AssertErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.AllClose(a, MustDense(t, 2, 1), 0, 0)
	AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
}
