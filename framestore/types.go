// SPDX-License-Identifier: MIT

package framestore

import (
	"fmt"
	"time"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Session describes one reconstruction run.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Samples    int // n, rows of the reconstructed matrix
	Features   int // N, columns of the reconstructed matrix
	Components int // c, basis vectors folded in by the final frame
	BlockSize  int
	Label      string
	Mean       []float64 // optional per-feature mean to add back to frames
}

// Frame is one stored snapshot.
type Frame struct {
	SessionID string
	Index     int // zero-based index of the last column folded in
	Consumed  int
	Rows      int
	Cols      int
	Data      []float64 // row-major, len Rows*Cols
}

// Matrix rebuilds the snapshot as a *matrix.Dense.
func (f Frame) Matrix() (*matrix.Dense, error) {
	m, err := matrix.NewDenseFrom(f.Rows, f.Cols, f.Data, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("frame %s/%d: %w", f.SessionID, f.Index, err)
	}

	return m, nil
}
