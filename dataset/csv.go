// SPDX-License-Identifier: MIT

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/eigenframes/matrix"
)

// LoadCSV reads one sample per record into an n×N matrix.
// Implementation:
//   - Stage 1: read records; lines starting with '#' are comments.
//   - Stage 2: a first record in which no field parses as a number is a header
//     and is skipped.
//   - Stage 3: parse every field as float64; all records must match the width
//     of the first data record.
//
// Errors:
//   - ErrEmpty, ErrRaggedRows, wrapped strconv/csv errors, matrix.ErrNaNInf.
func LoadCSV(r io.Reader) (*matrix.Dense, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1 // width is checked below with a domain error
	cr.TrimLeadingSpace = true

	var (
		flat  []float64
		width int
		rows  int
		line  int
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset.LoadCSV: %w", err)
		}
		line++
		if line == 1 && isHeader(rec) {
			continue
		}
		if width == 0 {
			width = len(rec)
		}
		if len(rec) != width {
			return nil, fmt.Errorf("dataset.LoadCSV: record %d has %d fields, want %d: %w", line, len(rec), width, ErrRaggedRows)
		}
		for j, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("dataset.LoadCSV: record %d field %d: %w", line, j+1, err)
			}
			flat = append(flat, v)
		}
		rows++
	}
	if rows == 0 {
		return nil, fmt.Errorf("dataset.LoadCSV: %w", ErrEmpty)
	}

	m, err := matrix.NewDenseFrom(rows, width, flat)
	if err != nil {
		return nil, fmt.Errorf("dataset.LoadCSV: %w", err)
	}

	return m, nil
}

func isHeader(rec []string) bool {
	for _, f := range rec {
		if _, err := strconv.ParseFloat(strings.TrimSpace(f), 64); err == nil {
			return false
		}
	}

	return len(rec) > 0
}

// WriteCSV writes m as one record per row using the shortest float encoding
// that round-trips ('g', -1).
func WriteCSV(w io.Writer, m matrix.Matrix) error {
	if err := matrix.ValidateNotNil(m); err != nil {
		return fmt.Errorf("dataset.WriteCSV: %w", err)
	}
	cw := csv.NewWriter(w)
	rec := make([]string, m.Cols())
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = range rec {
			if v, err = m.At(i, j); err != nil {
				return fmt.Errorf("dataset.WriteCSV: %w", err)
			}
			rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err = cw.Write(rec); err != nil {
			return fmt.Errorf("dataset.WriteCSV: %w", err)
		}
	}
	cw.Flush()
	if err = cw.Error(); err != nil {
		return fmt.Errorf("dataset.WriteCSV: %w", err)
	}

	return nil
}
