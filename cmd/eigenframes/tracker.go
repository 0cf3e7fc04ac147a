// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/eigenframes/matrix"
	"github.com/katalvlaran/eigenframes/pca"
	"github.com/katalvlaran/eigenframes/reconstruct"
)

// errorTracker measures how far a snapshot is from the k-component
// reconstruction (final) and from the centered input.
type errorTracker struct {
	final, centered         *matrix.Dense
	finalNorm, centeredNorm float64
}

func newErrorTracker(X matrix.Matrix, model *pca.Model, Z *matrix.Dense) (*errorTracker, error) {
	final, err := matrix.Mul(Z, model.Components())
	if err != nil {
		return nil, err
	}
	mean := model.Mean()
	for j := range mean {
		mean[j] = -mean[j]
	}
	centered, err := matrix.AddRowVector(X, mean)
	if err != nil {
		return nil, err
	}
	t := &errorTracker{centered: centered}
	if t.final, err = matrix.AsDense(final); err != nil {
		return nil, err
	}
	if t.finalNorm, err = matrix.FrobeniusNorm(t.final); err != nil {
		return nil, err
	}
	if t.centeredNorm, err = matrix.FrobeniusNorm(centered); err != nil {
		return nil, err
	}

	return t, nil
}

// errors returns ‖final − partial‖/‖final‖ and ‖centered − partial‖/‖centered‖.
// A zero reference norm yields the absolute error instead.
func (t *errorTracker) errors(s reconstruct.Step) (toFinal, toInput float64, err error) {
	if toFinal, err = relDiff(t.final, s.Partial, t.finalNorm); err != nil {
		return 0, 0, err
	}
	if toInput, err = relDiff(t.centered, s.Partial, t.centeredNorm); err != nil {
		return 0, 0, err
	}

	return toFinal, toInput, nil
}

func relDiff(ref, got matrix.Matrix, refNorm float64) (float64, error) {
	d, err := matrix.Sub(ref, got)
	if err != nil {
		return 0, err
	}
	n, err := matrix.FrobeniusNorm(d)
	if err != nil {
		return 0, err
	}
	if refNorm == 0 {
		return n, nil
	}

	return n / refNorm, nil
}
