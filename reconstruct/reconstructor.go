// SPDX-License-Identifier: MIT

package reconstruct

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Reconstructor yields partial reconstructions Z[:, :j] · P[:j, :] for
// increasing j, folding blockSize basis vectors into its accumulator per step.
//
// The accumulator is private; every Step carries its own copy, so snapshots
// never alias each other or the running state.
type Reconstructor struct {
	data      *matrix.Dense // n×c projected coordinates
	basis     *matrix.Dense // c×N basis, one vector per row
	acc       *matrix.Dense // n×N running sum
	blockSize int
	cols      int   // c
	next      int   // first unconsumed column
	err       error // sticky kernel failure, reported by Err
}

// New validates the inputs and returns a Reconstructor positioned before the
// first step. No arithmetic happens here.
//
// Errors:
//   - ErrInvalidArgument: nil data or basis, block size < 1, or data without
//     rows/columns.
//   - ErrShapeMismatch: basis.Rows() != data.Cols().
//
// *matrix.Dense inputs are used in place; mutating them while the sequence is
// being consumed changes later snapshots. Other Matrix implementations are
// copied once.
func New(data, basis matrix.Matrix, opts ...Option) (*Reconstructor, error) {
	o := gatherOptions(opts...)
	if data == nil || basis == nil {
		return nil, fmt.Errorf("%w: nil data or basis", ErrInvalidArgument)
	}
	if o.blockSize < 1 {
		return nil, fmt.Errorf("%w: block size %d < 1", ErrInvalidArgument, o.blockSize)
	}
	if data.Rows() < 1 || data.Cols() < 1 {
		return nil, fmt.Errorf("%w: data is %dx%d", ErrInvalidArgument, data.Rows(), data.Cols())
	}
	if basis.Rows() != data.Cols() {
		return nil, fmt.Errorf("%w: data has %d columns, basis has %d rows",
			ErrShapeMismatch, data.Cols(), basis.Rows())
	}

	z, err := matrix.AsDense(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	p, err := matrix.AsDense(basis)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	acc, err := matrix.NewDense(z.Rows(), p.Cols())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return &Reconstructor{
		data:      z,
		basis:     p,
		acc:       acc,
		blockSize: o.blockSize,
		cols:      z.Cols(),
	}, nil
}

// Next folds in the next block and returns a snapshot of the accumulator.
// The last step takes whatever columns remain (between 1 and blockSize).
// It returns false once every column has been consumed.
func (r *Reconstructor) Next() (Step, bool) {
	if r.err != nil || r.next >= r.cols {
		return Step{}, false
	}
	hi := min(r.next+r.blockSize, r.cols)
	if err := matrix.MulAddRange(r.acc, r.data, r.basis, r.next, hi); err != nil {
		r.err = err
		return Step{}, false
	}
	r.next = hi

	return Step{Partial: r.acc.Copy(), Index: hi - 1, Consumed: hi}, true
}

// Steps adapts Next to range-over-func. Breaking out of the loop leaves the
// remaining blocks uncomputed.
func (r *Reconstructor) Steps() iter.Seq[Step] {
	return func(yield func(Step) bool) {
		for {
			s, ok := r.Next()
			if !ok || !yield(s) {
				return
			}
		}
	}
}

// Err reports a failure that ended the sequence early. It is nil after a
// normal exhaustion.
func (r *Reconstructor) Err() error { return r.err }

// Len is the total number of steps, ceil(c / blockSize).
func (r *Reconstructor) Len() int { return ceilDiv(r.cols, r.blockSize) }

// Remaining is the number of steps not yet produced.
func (r *Reconstructor) Remaining() int { return ceilDiv(r.cols-r.next, r.blockSize) }

// Consumed is the number of basis vectors folded in so far.
func (r *Reconstructor) Consumed() int { return r.next }

// BlockSize returns the configured step width.
func (r *Reconstructor) BlockSize() int { return r.blockSize }

// Reconstruct validates its inputs eagerly and returns a fresh sequence.
// Each call starts from a zero accumulator.
func Reconstruct(data, basis matrix.Matrix, blockSize int) (iter.Seq[Step], error) {
	r, err := New(data, basis, WithBlockSize(blockSize))
	if err != nil {
		return nil, err
	}

	return r.Steps(), nil
}

// Collect runs a whole session and returns every step in order.
func Collect(data, basis matrix.Matrix, blockSize int) ([]Step, error) {
	r, err := New(data, basis, WithBlockSize(blockSize))
	if err != nil {
		return nil, err
	}
	out := make([]Step, 0, r.Len())
	for s := range r.Steps() {
		out = append(out, s)
	}
	if err = r.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
