// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Solver selects the decomposition used by Fit.
type Solver int

const (
	// SolverJacobi diagonalizes the covariance matrix with matrix.Eigen.
	SolverJacobi Solver = iota

	// SolverSVD factorizes the centered data with gonum's thin SVD.
	SolverSVD
)

// String returns the flag spelling of the solver.
func (s Solver) String() string {
	switch s {
	case SolverJacobi:
		return "jacobi"
	case SolverSVD:
		return "svd"
	default:
		return fmt.Sprintf("Solver(%d)", int(s))
	}
}

// ParseSolver maps "jacobi" or "svd" (case-insensitive) to a Solver.
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jacobi":
		return SolverJacobi, nil
	case "svd":
		return SolverSVD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
	}
}

// Option configures Fit.
type Option func(*options)

type options struct {
	solver    Solver
	tol       float64 // Jacobi off-diagonal threshold
	maxSweeps int     // Jacobi sweep cap
}

// WithSolver picks the decomposition.
func WithSolver(s Solver) Option {
	return func(o *options) { o.solver = s }
}

// WithTolerance sets the Jacobi convergence threshold (see matrix.Eigen).
func WithTolerance(tol float64) Option {
	return func(o *options) { o.tol = tol }
}

// WithMaxSweeps caps the number of Jacobi sweeps.
func WithMaxSweeps(n int) Option {
	return func(o *options) { o.maxSweeps = n }
}

func gatherOptions(user ...Option) options {
	o := options{
		solver:    SolverJacobi,
		tol:       matrix.DefaultEigenTol,
		maxSweeps: matrix.DefaultEigenMaxSweeps,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
