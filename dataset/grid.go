// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"strings"
)

// Grid reshapes a flattened row-major image into rows of the given width.
// The returned rows are copies.
func Grid(row []float64, width int) ([][]float64, error) {
	if width <= 0 || len(row) == 0 || len(row)%width != 0 {
		return nil, fmt.Errorf("dataset.Grid: len=%d width=%d: %w", len(row), width, ErrBadWidth)
	}
	h := len(row) / width
	out := make([][]float64, h)
	for i := range out {
		out[i] = append([]float64(nil), row[i*width:(i+1)*width]...)
	}

	return out, nil
}

// shades maps intensities in [0,1] to glyphs, dark to light.
var shades = []rune(" .:-=+*#%@")

// Render draws a grid as ASCII art, one line per row. Intensities are
// clamped to [0,1].
func Render(grid [][]float64) string {
	var b strings.Builder
	top := float64(len(shades) - 1)
	for _, row := range grid {
		for _, v := range row {
			v = min(max(v, 0), 1)
			b.WriteRune(shades[int(v*top+0.5)])
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// Normalize rescales v linearly onto [0,1] so signed data such as principal
// components can be rendered. A constant vector maps to 0.5.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	if len(v) == 0 {
		return out
	}
	lo, hi := v[0], v[0]
	for _, x := range v[1:] {
		lo, hi = min(lo, x), max(hi, x)
	}
	span := hi - lo
	for i, x := range v {
		if span == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = (x - lo) / span
	}

	return out
}
