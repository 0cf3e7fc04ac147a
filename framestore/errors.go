// SPDX-License-Identifier: MIT

package framestore

import (
	"errors"
	"fmt"
)

var (
	// ErrStoreClosed is returned by every method after Close.
	ErrStoreClosed = errors.New("framestore: store is closed")

	// ErrSessionNotFound is returned when a session id is unknown.
	ErrSessionNotFound = errors.New("framestore: session not found")

	// ErrFrameNotFound is returned when a session has no frame at an index.
	ErrFrameNotFound = errors.New("framestore: frame not found")

	// ErrCorruptFrame is returned when a stored BLOB does not match its shape.
	ErrCorruptFrame = errors.New("framestore: corrupt frame data")

	// ErrEmptyFrame is returned when saving a step without a snapshot.
	ErrEmptyFrame = errors.New("framestore: step has no snapshot")
)

// storeErrorf tags err with the failing operation.
func storeErrorf(op string, err error) error {
	return fmt.Errorf("framestore.%s: %w", op, err)
}
