// SPDX-License-Identifier: MIT

package framestore

import (
	"encoding/binary"
	"fmt"
	"math"
)

const float64Size = 8

// encodeFloats packs v as consecutive little-endian IEEE-754 words.
func encodeFloats(v []float64) []byte {
	buf := make([]byte, len(v)*float64Size)
	for i, x := range v {
		binary.LittleEndian.PutUint64(buf[i*float64Size:], math.Float64bits(x))
	}

	return buf
}

// decodeFloats is the inverse of encodeFloats; want is the expected count.
func decodeFloats(b []byte, want int) ([]float64, error) {
	if want < 0 || len(b) != want*float64Size {
		return nil, fmt.Errorf("%d bytes for %d values: %w", len(b), want, ErrCorruptFrame)
	}
	out := make([]float64, want)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*float64Size:]))
	}

	return out, nil
}
