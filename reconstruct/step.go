// SPDX-License-Identifier: MIT

package reconstruct

import (
	"fmt"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Step is one snapshot of the reconstruction.
type Step struct {
	// Partial is an independent copy of the accumulator (n×N).
	Partial *matrix.Dense

	// Index is the zero-based index of the last column folded in.
	Index int

	// Consumed is the number of basis vectors folded in so far (Index+1).
	// The final step has Consumed equal to the number of data columns.
	Consumed int
}

// WithMean adds a per-feature mean back to every row, turning a centered
// reconstruction into displayable samples.
func (s Step) WithMean(mean []float64) (*matrix.Dense, error) {
	if s.Partial == nil {
		return nil, fmt.Errorf("step %d: %w", s.Index, matrix.ErrNilMatrix)
	}
	out, err := matrix.AddRowVector(s.Partial, mean)
	if err != nil {
		return nil, fmt.Errorf("step %d: %w", s.Index, err)
	}

	return out, nil
}

// Sample returns a copy of reconstructed sample i.
func (s Step) Sample(i int) ([]float64, error) {
	if s.Partial == nil {
		return nil, fmt.Errorf("step %d: %w", s.Index, matrix.ErrNilMatrix)
	}

	return s.Partial.Row(i)
}
