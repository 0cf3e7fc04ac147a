// SPDX-License-Identifier: MIT

package reconstruct

import "errors"

var (
	// ErrShapeMismatch is returned when the basis row count differs from the
	// number of coordinate columns.
	ErrShapeMismatch = errors.New("reconstruct: basis rows must equal data columns")

	// ErrInvalidArgument is returned for a block size below 1, nil inputs, or
	// data without columns.
	ErrInvalidArgument = errors.New("reconstruct: invalid argument")
)
