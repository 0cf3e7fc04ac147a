// SPDX-License-Identifier: MIT

package pca

import "errors"

var (
	// ErrInvalidComponents is returned when the requested component count is
	// outside [1, N] (or [1, min(n, N)] for the SVD solver).
	ErrInvalidComponents = errors.New("pca: invalid number of components")

	// ErrTooFewSamples is returned when fewer than two samples are given.
	ErrTooFewSamples = errors.New("pca: need at least two samples")

	// ErrFeatureMismatch is returned when input width differs from the
	// fitted feature count, or coordinates do not match the component count.
	ErrFeatureMismatch = errors.New("pca: feature count mismatch")

	// ErrInvalidFraction is returned for a variance fraction outside (0, 1].
	ErrInvalidFraction = errors.New("pca: variance fraction must be in (0, 1]")

	// ErrFractionUnreachable is returned when the kept components explain less
	// variance than requested.
	ErrFractionUnreachable = errors.New("pca: kept components do not reach the requested variance")

	// ErrSolverFailed is returned when the factorization does not converge.
	ErrSolverFailed = errors.New("pca: solver failed")

	// ErrUnknownSolver is returned by ParseSolver for unrecognized names.
	ErrUnknownSolver = errors.New("pca: unknown solver")
)
