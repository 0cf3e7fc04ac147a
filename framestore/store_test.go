// SPDX-License-Identifier: MIT

package framestore_test

import (
	"context"
	"errors"
	"iter"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/eigenframes/framestore"
	"github.com/katalvlaran/eigenframes/matrix"
	"github.com/katalvlaran/eigenframes/reconstruct"
)

func openStore(t *testing.T, opts ...framestore.Option) (*framestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "frames.db")
	s, err := framestore.Open(context.Background(), path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func workedExample(t *testing.T) (*matrix.Dense, *matrix.Dense) {
	t.Helper()
	data, err := matrix.FromRows([][]float64{{1, 0, 2}, {0, 1, 1}})
	require.NoError(t, err)
	pc, err := matrix.FromRows([][]float64{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)

	return data, pc
}

func TestCreateSession_AssignsID(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	created, err := s.CreateSession(ctx, framestore.Session{
		Samples: 2, Features: 2, Components: 3, BlockSize: 1, Label: "demo", Mean: []float64{0.5, -1},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Session(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "demo", got.Label)
	assert.Equal(t, 3, got.Components)
	assert.Equal(t, []float64{0.5, -1}, got.Mean)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestSaveFrame_RoundTripIsBitExact(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	sess, err := s.CreateSession(ctx, framestore.Session{Samples: 2, Features: 3})
	require.NoError(t, err)

	vals := []float64{1.0 / 3, -0.1, math.SmallestNonzeroFloat64, math.MaxFloat64, math.Pi, 0}
	partial, err := matrix.NewDenseFrom(2, 3, vals)
	require.NoError(t, err)
	require.NoError(t, s.SaveFrame(ctx, sess.ID, reconstruct.Step{Partial: partial, Index: 4, Consumed: 5}))

	f, err := s.Frame(ctx, sess.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, f.Consumed)
	assert.Equal(t, 2, f.Rows)
	assert.Equal(t, 3, f.Cols)
	require.Len(t, f.Data, 6)
	for i := range vals {
		assert.Equal(t, math.Float64bits(vals[i]), math.Float64bits(f.Data[i]), "value %d", i)
	}

	m, err := f.Matrix()
	require.NoError(t, err)
	assert.Equal(t, vals, m.Values())
}

func TestSaveFrame_ReplacesSameIndex(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	sess, err := s.CreateSession(ctx, framestore.Session{})
	require.NoError(t, err)

	a, _ := matrix.NewDenseFrom(1, 1, []float64{1})
	b, _ := matrix.NewDenseFrom(1, 1, []float64{2})
	require.NoError(t, s.SaveFrame(ctx, sess.ID, reconstruct.Step{Partial: a, Index: 0, Consumed: 1}))
	require.NoError(t, s.SaveFrame(ctx, sess.ID, reconstruct.Step{Partial: b, Index: 0, Consumed: 1}))

	frames, err := s.Frames(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Equal(t, []float64{2}, frames[0].Data)
}

func TestRecord_StoresWholeSequence(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	data, pc := workedExample(t)

	seq, err := reconstruct.Reconstruct(data, pc, 2)
	require.NoError(t, err)
	sess, n, err := s.Record(ctx, framestore.Session{Samples: 2, Features: 2, Components: 3, BlockSize: 2}, seq)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	want, err := reconstruct.Collect(data, pc, 2)
	require.NoError(t, err)
	frames, err := s.Frames(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, frames, len(want))
	for i, f := range frames {
		assert.Equal(t, want[i].Index, f.Index)
		assert.Equal(t, want[i].Consumed, f.Consumed)
		assert.Equal(t, want[i].Partial.Values(), f.Data)
		assert.Equal(t, sess.ID, f.SessionID)
	}
	assert.Equal(t, []float64{3, 2, 1, 2}, frames[len(frames)-1].Data)
}

func TestRecord_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)

	good, _ := matrix.NewDenseFrom(1, 1, []float64{1})
	var seq iter.Seq[reconstruct.Step] = func(yield func(reconstruct.Step) bool) {
		if !yield(reconstruct.Step{Partial: good, Index: 0, Consumed: 1}) {
			return
		}
		yield(reconstruct.Step{Index: 1, Consumed: 2}) // no snapshot
	}
	_, _, err := s.Record(ctx, framestore.Session{Label: "broken"}, seq)
	require.ErrorIs(t, err, framestore.ErrEmptyFrame)

	sessions, err := s.Sessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRecord_CanceledProducerRollsBack(t *testing.T) {
	s, _ := openStore(t)
	data, pc := workedExample(t)
	seq, err := reconstruct.Reconstruct(data, pc, 1)
	require.NoError(t, err)

	boom := errors.New("render failed")
	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)
	var aborting iter.Seq[reconstruct.Step] = func(yield func(reconstruct.Step) bool) {
		for step := range seq {
			if step.Index == 1 {
				cancel(boom)
				return
			}
			if !yield(step) {
				return
			}
		}
	}

	_, n, err := s.Record(ctx, framestore.Session{Label: "aborted"}, aborting)
	require.ErrorIs(t, err, boom)
	assert.Zero(t, n)

	sessions, err := s.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestSessions_NewestFirst(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s, _ := openStore(t, framestore.WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}))

	var ids []string
	for _, label := range []string{"first", "second", "third"} {
		sess, err := s.CreateSession(ctx, framestore.Session{Label: label})
		require.NoError(t, err)
		ids = append(ids, sess.ID)
	}

	list, err := s.Sessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.True(t, base.Add(3*time.Minute).Equal(list[0].CreatedAt))
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	zero, err := matrix.NewZeros(1, 1)
	require.NoError(t, err)
	step := reconstruct.Step{Partial: zero, Consumed: 1}

	err = s.SaveFrame(ctx, "missing", step)
	assert.ErrorIs(t, err, framestore.ErrSessionNotFound)
	_, err = s.Frames(ctx, "missing")
	assert.ErrorIs(t, err, framestore.ErrSessionNotFound)
	_, err = s.Session(ctx, "missing")
	assert.ErrorIs(t, err, framestore.ErrSessionNotFound)
	assert.ErrorIs(t, s.DeleteSession(ctx, "missing"), framestore.ErrSessionNotFound)

	sess, err := s.CreateSession(ctx, framestore.Session{})
	require.NoError(t, err)
	_, err = s.Frame(ctx, sess.ID, 7)
	assert.ErrorIs(t, err, framestore.ErrFrameNotFound)
	assert.ErrorIs(t, s.SaveFrame(ctx, sess.ID, reconstruct.Step{}), framestore.ErrEmptyFrame)
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	data, pc := workedExample(t)
	seq, err := reconstruct.Reconstruct(data, pc, 1)
	require.NoError(t, err)
	sess, _, err := s.Record(ctx, framestore.Session{}, seq)
	require.NoError(t, err)

	require.NoError(t, s.DeleteSession(ctx, sess.ID))
	_, err = s.Frames(ctx, sess.ID)
	assert.ErrorIs(t, err, framestore.ErrSessionNotFound)
	assert.ErrorIs(t, s.DeleteSession(ctx, sess.ID), framestore.ErrSessionNotFound)
}

func TestReopen_KeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "frames.db")
	s, err := framestore.Open(ctx, path)
	require.NoError(t, err)
	data, pc := workedExample(t)
	seq, err := reconstruct.Reconstruct(data, pc, 1)
	require.NoError(t, err)
	sess, _, err := s.Record(ctx, framestore.Session{Label: "persist"}, seq)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s2, err := framestore.Open(ctx, path)
	require.NoError(t, err)
	defer s2.Close()
	frames, err := s2.Frames(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, frames, 3)
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t)
	require.NoError(t, s.Close())

	_, err := s.Sessions(ctx)
	assert.ErrorIs(t, err, framestore.ErrStoreClosed)
	_, err = s.CreateSession(ctx, framestore.Session{})
	assert.ErrorIs(t, err, framestore.ErrStoreClosed)
	_, _, err = s.Record(ctx, framestore.Session{}, func(func(reconstruct.Step) bool) {})
	assert.ErrorIs(t, err, framestore.ErrStoreClosed)
	assert.ErrorIs(t, s.Close(), framestore.ErrStoreClosed)
}
