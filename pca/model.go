// SPDX-License-Identifier: MIT

package pca

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/eigenframes/matrix"
)

// Model is a fitted principal-component basis.
// It is immutable after Fit; accessors return copies.
type Model struct {
	mean          []float64     // per-feature means of the training data (len N)
	components    *matrix.Dense // k×N, rows are unit principal axes
	eigenvalues   []float64     // variance along each kept axis (len k), non-increasing
	totalVariance float64       // trace of the sample covariance over all N axes
	samples       int
	solver        Solver
}

// Fit learns the top-k principal components of the rows of X.
// Implementation:
//   - Stage 1: validate n ≥ 2 and 1 ≤ k ≤ N (k ≤ min(n, N) for SolverSVD).
//   - Stage 2: run the selected solver to obtain eigenpairs in descending order.
//   - Stage 3: orient every component so its largest-magnitude entry is positive.
//
// Errors:
//   - ErrTooFewSamples, ErrInvalidComponents, ErrSolverFailed, wrapped matrix errors.
//
// Complexity:
//   - Jacobi: O(n*N² + sweeps*N³). SVD: O(n*N*min(n,N)).
func Fit(X matrix.Matrix, k int, opts ...Option) (*Model, error) {
	if err := matrix.ValidateNotNil(X); err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}
	o := gatherOptions(opts...)
	n, N := X.Rows(), X.Cols()
	if n < 2 {
		return nil, fmt.Errorf("pca.Fit: n=%d: %w", n, ErrTooFewSamples)
	}
	limit := N
	if o.solver == SolverSVD {
		limit = min(n, N)
	}
	if k < 1 || k > limit {
		return nil, fmt.Errorf("pca.Fit: k=%d not in [1,%d]: %w", k, limit, ErrInvalidComponents)
	}

	var (
		res *decomposition
		err error
	)
	switch o.solver {
	case SolverJacobi:
		res, err = solveJacobi(X, o)
	case SolverSVD:
		res, err = solveSVD(X)
	default:
		return nil, fmt.Errorf("pca.Fit: %v: %w", o.solver, ErrUnknownSolver)
	}
	if err != nil {
		return nil, fmt.Errorf("pca.Fit(%v): %w", o.solver, err)
	}

	comps, err := matrix.NewDense(k, N)
	if err != nil {
		return nil, fmt.Errorf("pca.Fit: %w", err)
	}
	eigs := make([]float64, k)
	var i, j int
	row := make([]float64, N)
	for i = 0; i < k; i++ {
		copy(row, res.axes[i])
		orient(row)
		for j = 0; j < N; j++ {
			_ = comps.Set(i, j, row[j]) // in range by construction
		}
		// Round-off can leave tiny negative variances on rank-deficient data.
		eigs[i] = math.Max(res.values[i], 0)
	}

	return &Model{
		mean:          res.mean,
		components:    comps,
		eigenvalues:   eigs,
		totalVariance: res.total,
		samples:       n,
		solver:        o.solver,
	}, nil
}

// decomposition is the solver-independent result: axes sorted by variance.
type decomposition struct {
	mean   []float64
	axes   [][]float64 // unit vectors of length N, descending by value
	values []float64
	total  float64
}

// sortDescending orders (values, axes) by decreasing value; ties keep the
// solver's order so results are deterministic.
func sortDescending(d *decomposition) {
	idx := make([]int, len(d.values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return d.values[idx[a]] > d.values[idx[b]] })

	vals := make([]float64, len(idx))
	axes := make([][]float64, len(idx))
	for i, src := range idx {
		vals[i] = d.values[src]
		axes[i] = d.axes[src]
	}
	d.values, d.axes = vals, axes
}

// orient flips v in place so that its largest-magnitude entry is positive.
// The first such entry wins ties.
func orient(v []float64) {
	best, at := -1.0, 0
	for i, x := range v {
		if a := math.Abs(x); a > best {
			best, at = a, i
		}
	}
	if v[at] < 0 {
		for i := range v {
			v[i] = -v[i]
		}
	}
}

// Samples returns the number of rows the model was fitted on.
func (m *Model) Samples() int { return m.samples }

// Features returns N, the sample width.
func (m *Model) Features() int { return m.components.Cols() }

// K returns the number of kept components.
func (m *Model) K() int { return m.components.Rows() }

// Solver reports which decomposition produced the model.
func (m *Model) Solver() Solver { return m.solver }

// Components returns a copy of the k×N component matrix (rows are axes).
func (m *Model) Components() *matrix.Dense { return m.components.Copy() }

// Mean returns a copy of the per-feature training means.
func (m *Model) Mean() []float64 { return append([]float64(nil), m.mean...) }

// Eigenvalues returns a copy of the kept variances, non-increasing.
func (m *Model) Eigenvalues() []float64 { return append([]float64(nil), m.eigenvalues...) }

// TotalVariance returns the summed variance over all N feature axes.
func (m *Model) TotalVariance() float64 { return m.totalVariance }
