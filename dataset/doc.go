// SPDX-License-Identifier: MIT

// Package dataset supplies sample matrices for PCA: numeric CSV files, a
// deterministic generator of digit-like images, and helpers to reshape a
// flattened image row back into a 2-D grid.
//
// Every sample is one row of a *matrix.Dense; an image of side s occupies
// s*s columns in row-major pixel order.
package dataset
