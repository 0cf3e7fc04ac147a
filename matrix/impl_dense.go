// SPDX-License-Identifier: MIT

// Dense: the one concrete Matrix in this module.
//
// Storage is a single []float64 of length r*c; element (i,j) lives at i*c+j.
// Samples are rows, so a sample is a contiguous slice and row copies are a
// single copy() call. Accessors report bad indices as errors. Whether
// NaN/Inf may be stored is fixed per matrix at construction (options.go).
//
// Cost: NewDense/Clone/Values O(r*c); At/Set O(1); Submatrix O(window).

package matrix

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Method tags for error wrapping.
const (
	ctxAt        = "At"
	ctxSet       = "Set"
	ctxRow       = "Row"
	ctxSubmatrix = "Submatrix"
	ctxFrom      = "NewDenseFrom"
	ctxFromRows  = "FromRows"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf formats "Dense.<method>(row,col): <sentinel>", keeping the sentinel for errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major float64 matrix. The zero value is not usable; build
// one with NewDense, NewDenseFrom or FromRows.
type Dense struct {
	r, c           int       // row and column counts (>0 for public constructors)
	data           []float64 // len r*c, row-major
	validateNaNInf bool      // Set rejects NaN/Inf when true
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense returns an r×c matrix of zeros with the default numeric policy.
// Errors: ErrInvalidDimensions when either dimension is not positive.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom builds an r×c Dense from a row-major buffer.
// The buffer is copied; the caller keeps ownership of data.
//
// Implementation:
//   - Stage 1: validate shape and len(data) == rows*cols.
//   - Stage 2: resolve options; when the finite-only policy is on, scan for NaN/Inf.
//   - Stage 3: copy into a fresh buffer.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape (length mismatch), ErrNaNInf (policy).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len(data)=%d, want %d: %w", ctxFrom, len(data), rows*cols, ErrBadShape)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		for idx, v := range data {
			if isNonFinite(v) {
				return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNaNInf)
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: o.validateNaNInf}, nil
}

// FromRows builds a Dense from a slice of equally sized rows.
// Ragged input yields ErrBadShape; empty input yields ErrInvalidDimensions.
// Complexity: O(r*c).
func FromRows(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	r, c := len(rows), len(rows[0])
	flat := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w", ctxFromRows, i, len(row), c, ErrBadShape)
		}
		flat = append(flat, row...)
	}

	return NewDenseFrom(r, c, flat, opts...)
}

// Rows returns the number of samples (rows).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of features (columns).
func (m *Dense) Cols() int { return m.c }

// Shape returns (Rows, Cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf maps (row,col) to a buffer offset; callers add the coordinates to the error.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At reads element (row, col). Errors: ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set writes element (row, col).
// Errors: ErrOutOfRange; ErrNaNInf for a non-finite v under the finite-only policy.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone satisfies Matrix; the result is always a *Dense (see Copy).
func (m *Dense) Clone() Matrix {
	return m.copyDense()
}

// copyDense is Clone without the interface boxing.
func (m *Dense) copyDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Copy returns an independent *Dense with identical shape, data and policy.
// Use it when the concrete type matters (snapshots, persistence).
func (m *Dense) Copy() *Dense { return m.copyDense() }

// Values returns a row-major copy of the backing buffer.
// Complexity: O(r*c).
func (m *Dense) Values() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// Submatrix materializes the half-open window [r0:r1, c0:c1) as a new Dense.
// Implementation:
//   - Stage 1: validate 0 ≤ r0 < r1 ≤ r and 0 ≤ c0 < c1 ≤ c.
//   - Stage 2: copy row slices of the window into a fresh buffer.
//
// Behavior highlights:
//   - Result is independent of m; the numeric policy is preserved.
//
// Errors:
//   - ErrOutOfRange when the window is empty or exceeds the bounds.
//
// Complexity:
//   - Time O((r1-r0)*(c1-c0)), Space same.
func (m *Dense) Submatrix(r0, r1, c0, c1 int) (*Dense, error) {
	if r0 < 0 || c0 < 0 || r1 > m.r || c1 > m.c || r0 >= r1 || c0 >= c1 {
		return nil, fmt.Errorf("Dense.%s(%d:%d,%d:%d): %w", ctxSubmatrix, r0, r1, c0, c1, ErrOutOfRange)
	}
	rows, cols := r1-r0, c1-c0
	buf := make([]float64, rows*cols)
	var i int
	for i = 0; i < rows; i++ {
		copy(buf[i*cols:(i+1)*cols], m.data[(r0+i)*m.c+c0:(r0+i)*m.c+c1])
	}

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: m.validateNaNInf}, nil
}

// String prints one bracketed, comma-separated line per row ("[1, 2]\n").
// Meant for examples and debugging.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(strconv.FormatFloat(m.data[base+j], 'g', -1, 64))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do calls f on every element in row-major order until f returns false.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
