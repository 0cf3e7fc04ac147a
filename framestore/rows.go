// SPDX-License-Identifier: MIT

package framestore

import (
	"fmt"
	"time"
)

// sessionRow mirrors the sessions table for sqlx scanning.
type sessionRow struct {
	ID         string `db:"id"`
	CreatedAt  int64  `db:"created_at"` // unix nanoseconds, UTC
	Samples    int    `db:"samples"`
	Features   int    `db:"features"`
	Components int    `db:"components"`
	BlockSize  int    `db:"block_size"`
	Label      string `db:"label"`
	Mean       []byte `db:"mean"`
}

func newSessionRow(s Session) sessionRow {
	return sessionRow{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt.UnixNano(),
		Samples:    s.Samples,
		Features:   s.Features,
		Components: s.Components,
		BlockSize:  s.BlockSize,
		Label:      s.Label,
		Mean:       encodeFloats(s.Mean),
	}
}

func (r sessionRow) session() (Session, error) {
	s := Session{
		ID:         r.ID,
		CreatedAt:  time.Unix(0, r.CreatedAt).UTC(),
		Samples:    r.Samples,
		Features:   r.Features,
		Components: r.Components,
		BlockSize:  r.BlockSize,
		Label:      r.Label,
	}
	if len(r.Mean) > 0 {
		mean, err := decodeFloats(r.Mean, len(r.Mean)/float64Size)
		if err != nil {
			return Session{}, fmt.Errorf("session %s mean: %w", r.ID, err)
		}
		s.Mean = mean
	}

	return s, nil
}

// frameRow mirrors the frames table.
type frameRow struct {
	SessionID string `db:"session_id"`
	Index     int    `db:"idx"`
	Consumed  int    `db:"consumed"`
	Rows      int    `db:"n_rows"`
	Cols      int    `db:"n_cols"`
	Data      []byte `db:"data"`
}

func (r frameRow) frame() (Frame, error) {
	data, err := decodeFloats(r.Data, r.Rows*r.Cols)
	if err != nil {
		return Frame{}, fmt.Errorf("frame %s/%d: %w", r.SessionID, r.Index, err)
	}

	return Frame{
		SessionID: r.SessionID,
		Index:     r.Index,
		Consumed:  r.Consumed,
		Rows:      r.Rows,
		Cols:      r.Cols,
		Data:      data,
	}, nil
}
