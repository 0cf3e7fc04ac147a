// SPDX-License-Identifier: MIT

package dataset

import "errors"

var (
	// ErrEmpty is returned when the input holds no samples.
	ErrEmpty = errors.New("dataset: no samples")

	// ErrRaggedRows is returned when CSV records differ in field count.
	ErrRaggedRows = errors.New("dataset: rows have different lengths")

	// ErrBadWidth is returned when a row cannot be reshaped to the given width.
	ErrBadWidth = errors.New("dataset: width does not divide row length")

	// ErrBadSize is returned for non-positive sample counts or too small images.
	ErrBadSize = errors.New("dataset: invalid size")
)
