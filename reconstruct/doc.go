// SPDX-License-Identifier: MIT

// Package reconstruct rebuilds samples from their projected coordinates one
// block of basis vectors at a time.
//
// Given compressed coordinates Z (n×c) and a basis P (c×N) whose rows are
// basis vectors, a Reconstructor keeps a running accumulator L (n×N) and, at
// every step, folds in the next block of columns of Z against the matching
// rows of P:
//
//	L += Z[:, m:m+k] · P[m:m+k, :]
//
// and hands out an independent snapshot of L. After consuming j columns the
// snapshot equals Z[:, :j] · P[:j, :], the reconstruction from the first j
// components, at the cost of only the newly added block per step.
//
// The sequence is pulled by the consumer (Next, or range over Steps); nothing
// is computed ahead of demand, and abandoning the sequence simply stops the
// work. A Reconstructor is single-use and not safe for concurrent use.
//
// Example:
//
//	r, err := reconstruct.New(Z, P, reconstruct.WithBlockSize(8))
//	if err != nil {
//		return err
//	}
//	for step := range r.Steps() {
//		render(step.Partial, step.Consumed)
//	}
package reconstruct
