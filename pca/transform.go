// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Transform projects the rows of X onto the kept axes: Z = (X − mean)·Cᵀ.
// The result is n×k.
//
// Errors: ErrFeatureMismatch when X.Cols() != Features().
func (m *Model) Transform(X matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("pca.Transform: %w", err)
	}
	if X.Cols() != m.Features() {
		return nil, fmt.Errorf("pca.Transform: width %d, want %d: %w", X.Cols(), m.Features(), ErrFeatureMismatch)
	}
	neg := make([]float64, len(m.mean))
	for i, v := range m.mean {
		neg[i] = -v
	}
	Xc, err := matrix.AddRowVector(X, neg)
	if err != nil {
		return nil, fmt.Errorf("pca.Transform: %w", err)
	}
	Ct, err := matrix.Transpose(m.components)
	if err != nil {
		return nil, fmt.Errorf("pca.Transform: %w", err)
	}
	Z, err := matrix.Mul(Xc, Ct)
	if err != nil {
		return nil, fmt.Errorf("pca.Transform: %w", err)
	}

	return matrix.AsDense(Z)
}

// InverseTransform maps coordinates back to feature space using only the
// first j components: X̂ = Z[:, :j]·C[:j, :] + mean.
//
// The product is accumulated with matrix.MulAddRange, the same kernel the
// reconstruct package folds block by block, so the result for j equals the
// incremental snapshot that has consumed j columns plus the mean.
//
// Errors: ErrFeatureMismatch when Z.Cols() != K(); ErrInvalidComponents when
// j is outside [1, K()].
func (m *Model) InverseTransform(Z matrix.Matrix, j int) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(Z); err != nil {
		return nil, fmt.Errorf("pca.InverseTransform: %w", err)
	}
	if Z.Cols() != m.K() {
		return nil, fmt.Errorf("pca.InverseTransform: %d coordinates, want %d: %w", Z.Cols(), m.K(), ErrFeatureMismatch)
	}
	if j < 1 || j > m.K() {
		return nil, fmt.Errorf("pca.InverseTransform: j=%d not in [1,%d]: %w", j, m.K(), ErrInvalidComponents)
	}
	acc, err := matrix.NewDense(Z.Rows(), m.Features())
	if err != nil {
		return nil, fmt.Errorf("pca.InverseTransform: %w", err)
	}
	if err = matrix.MulAddRange(acc, Z, m.components, 0, j); err != nil {
		return nil, fmt.Errorf("pca.InverseTransform: %w", err)
	}
	out, err := matrix.AddRowVector(acc, m.mean)
	if err != nil {
		return nil, fmt.Errorf("pca.InverseTransform: %w", err)
	}

	return out, nil
}
