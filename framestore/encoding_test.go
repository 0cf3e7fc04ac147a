// SPDX-License-Identifier: MIT

package framestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenframes/matrix"
	"github.com/katalvlaran/eigenframes/reconstruct"
)

func TestDecodeFloats_LengthChecks(t *testing.T) {
	b := encodeFloats([]float64{1, 2})
	assert.Len(t, b, 16)

	_, err := decodeFloats(b, 3)
	assert.ErrorIs(t, err, ErrCorruptFrame)
	_, err = decodeFloats(b[:15], 2)
	assert.ErrorIs(t, err, ErrCorruptFrame)

	v, err := decodeFloats(nil, 0)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestFrames_CorruptBlob(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "c.db"))
	require.NoError(t, err)
	defer s.Close()

	sess, err := s.CreateSession(ctx, Session{})
	require.NoError(t, err)
	m, err := matrix.NewDenseFrom(1, 2, []float64{1, 2})
	require.NoError(t, err)
	require.NoError(t, s.SaveFrame(ctx, sess.ID, reconstruct.Step{Partial: m, Consumed: 1}))

	_, err = s.db.ExecContext(ctx, `UPDATE frames SET data = ? WHERE session_id = ?`, []byte{1, 2, 3}, sess.ID)
	require.NoError(t, err)

	_, err = s.Frames(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrCorruptFrame)
	_, err = s.Frame(ctx, sess.ID, 0)
	assert.ErrorIs(t, err, ErrCorruptFrame)
}
