// SPDX-License-Identifier: MIT

package framestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/katalvlaran/eigenframes/reconstruct"
)

const (
	opOpen          = "Open"
	opClose         = "Close"
	opCreateSession = "CreateSession"
	opSaveFrame     = "SaveFrame"
	opRecord        = "Record"
	opSession       = "Session"
	opSessions      = "Sessions"
	opFrames        = "Frames"
	opFrame         = "Frame"
	opDeleteSession = "DeleteSession"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	samples     INTEGER NOT NULL,
	features    INTEGER NOT NULL,
	components  INTEGER NOT NULL,
	block_size  INTEGER NOT NULL,
	label       TEXT NOT NULL DEFAULT '',
	mean        BLOB
);

CREATE TABLE IF NOT EXISTS frames (
	session_id  TEXT NOT NULL REFERENCES sessions(id),
	idx         INTEGER NOT NULL,
	consumed    INTEGER NOT NULL,
	n_rows      INTEGER NOT NULL,
	n_cols      INTEGER NOT NULL,
	data        BLOB NOT NULL,
	PRIMARY KEY (session_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_sessions_created_at ON sessions(created_at);
`

const (
	insertSessionSQL = `INSERT INTO sessions (id, created_at, samples, features, components, block_size, label, mean)
		VALUES (:id, :created_at, :samples, :features, :components, :block_size, :label, :mean)`
	insertFrameSQL = `INSERT OR REPLACE INTO frames (session_id, idx, consumed, n_rows, n_cols, data)
		VALUES (:session_id, :idx, :consumed, :n_rows, :n_cols, :data)`
	selectSessionSQL = `SELECT id, created_at, samples, features, components, block_size, label, mean FROM sessions`
	selectFrameSQL   = `SELECT session_id, idx, consumed, n_rows, n_cols, data FROM frames`
)

// Store is a SQLite-backed frame store.
type Store struct {
	mu     sync.RWMutex
	db     *sqlx.DB
	closed bool

	logger *slog.Logger
	now    func() time.Time
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := gatherOptions(opts...)

	db, err := sqlx.ConnectContext(ctx, "sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, storeErrorf(opOpen, err)
	}
	db.SetMaxOpenConns(o.maxOpenConns)
	db.SetConnMaxLifetime(time.Hour)

	if _, err = db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, storeErrorf(opOpen, fmt.Errorf("create tables: %w", err))
	}
	o.logger.Debug("framestore opened", "path", path)

	return &Store{db: db, logger: o.logger, now: o.now}, nil
}

// Close releases the database. Further calls return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storeErrorf(opClose, ErrStoreClosed)
	}
	s.closed = true

	return s.db.Close()
}

// acquire takes the read lock unless the store is closed.
// On success the caller must RUnlock.
func (s *Store) acquire(op string) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return storeErrorf(op, ErrStoreClosed)
	}

	return nil
}

// CreateSession stores sess under a fresh uuid and returns it with ID and
// CreatedAt filled in. A non-zero CreatedAt is kept.
func (s *Store) CreateSession(ctx context.Context, sess Session) (Session, error) {
	if err := s.acquire(opCreateSession); err != nil {
		return Session{}, err
	}
	defer s.mu.RUnlock()

	out, err := s.insertSession(ctx, s.db, sess)
	if err != nil {
		return Session{}, storeErrorf(opCreateSession, err)
	}

	return out, nil
}

func (s *Store) insertSession(ctx context.Context, ex sqlx.ExtContext, sess Session) (Session, error) {
	sess.ID = uuid.New().String()
	if sess.CreatedAt.IsZero() {
		sess.CreatedAt = s.now()
	}
	sess.CreatedAt = sess.CreatedAt.UTC()
	if _, err := sqlx.NamedExecContext(ctx, ex, insertSessionSQL, newSessionRow(sess)); err != nil {
		return Session{}, fmt.Errorf("insert session: %w", err)
	}

	return sess, nil
}

// SaveFrame stores one snapshot of an existing session. Saving the same
// index twice replaces the earlier frame.
func (s *Store) SaveFrame(ctx context.Context, sessionID string, step reconstruct.Step) error {
	if err := s.acquire(opSaveFrame); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	if err := sessionExists(ctx, s.db, sessionID); err != nil {
		return storeErrorf(opSaveFrame, err)
	}
	if err := insertFrame(ctx, s.db, sessionID, step); err != nil {
		return storeErrorf(opSaveFrame, err)
	}

	return nil
}

func insertFrame(ctx context.Context, ex sqlx.ExtContext, sessionID string, step reconstruct.Step) error {
	if step.Partial == nil {
		return fmt.Errorf("index %d: %w", step.Index, ErrEmptyFrame)
	}
	r, c := step.Partial.Shape()
	row := frameRow{
		SessionID: sessionID,
		Index:     step.Index,
		Consumed:  step.Consumed,
		Rows:      r,
		Cols:      c,
		Data:      encodeFloats(step.Partial.Values()),
	}
	if _, err := sqlx.NamedExecContext(ctx, ex, insertFrameSQL, row); err != nil {
		return fmt.Errorf("insert frame %d: %w", step.Index, err)
	}

	return nil
}

func sessionExists(ctx context.Context, q sqlx.QueryerContext, id string) error {
	var one int
	err := sqlx.GetContext(ctx, q, &one, `SELECT 1 FROM sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%q: %w", id, ErrSessionNotFound)
	}

	return err
}

// Record creates a session and stores every step of steps inside a single
// transaction. It returns the created session and the number of frames.
//
// A producer that fails partway should cancel ctx (context.WithCancelCause)
// before ending the sequence: ctx is checked once more after the last step,
// so a canceled run is rolled back and Record returns the cause. On any store
// error the transaction is rolled back as well and nothing is kept.
func (s *Store) Record(ctx context.Context, sess Session, steps iter.Seq[reconstruct.Step]) (Session, int, error) {
	if err := s.acquire(opRecord); err != nil {
		return Session{}, 0, err
	}
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Session{}, 0, storeErrorf(opRecord, fmt.Errorf("begin: %w", err))
	}
	defer func() { _ = tx.Rollback() }() // no-op after Commit

	out, err := s.insertSession(ctx, tx, sess)
	if err != nil {
		return Session{}, 0, storeErrorf(opRecord, err)
	}

	n := 0
	for step := range steps {
		if ctx.Err() != nil {
			return Session{}, 0, storeErrorf(opRecord, context.Cause(ctx))
		}
		if err = insertFrame(ctx, tx, out.ID, step); err != nil {
			return Session{}, 0, storeErrorf(opRecord, err)
		}
		n++
		s.logger.Debug("frame stored", "session", out.ID, "index", step.Index, "consumed", step.Consumed)
	}
	if ctx.Err() != nil {
		s.logger.Warn("session discarded", "session", out.ID, "frames", n, "cause", context.Cause(ctx))
		return Session{}, 0, storeErrorf(opRecord, context.Cause(ctx))
	}

	if err = tx.Commit(); err != nil {
		return Session{}, 0, storeErrorf(opRecord, fmt.Errorf("commit: %w", err))
	}
	s.logger.Info("session recorded", "session", out.ID, "frames", n, "label", out.Label)

	return out, n, nil
}

// Session returns one session by id.
func (s *Store) Session(ctx context.Context, id string) (Session, error) {
	if err := s.acquire(opSession); err != nil {
		return Session{}, err
	}
	defer s.mu.RUnlock()

	var row sessionRow
	err := s.db.GetContext(ctx, &row, selectSessionSQL+` WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, storeErrorf(opSession, fmt.Errorf("%q: %w", id, ErrSessionNotFound))
	}
	if err != nil {
		return Session{}, storeErrorf(opSession, err)
	}
	sess, err := row.session()
	if err != nil {
		return Session{}, storeErrorf(opSession, err)
	}

	return sess, nil
}

// Sessions lists all sessions, newest first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	if err := s.acquire(opSessions); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	var rows []sessionRow
	if err := s.db.SelectContext(ctx, &rows, selectSessionSQL+` ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, storeErrorf(opSessions, err)
	}
	out := make([]Session, 0, len(rows))
	for _, r := range rows {
		sess, err := r.session()
		if err != nil {
			return nil, storeErrorf(opSessions, err)
		}
		out = append(out, sess)
	}

	return out, nil
}

// Frames returns all frames of a session ordered by index.
func (s *Store) Frames(ctx context.Context, sessionID string) ([]Frame, error) {
	if err := s.acquire(opFrames); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	if err := sessionExists(ctx, s.db, sessionID); err != nil {
		return nil, storeErrorf(opFrames, err)
	}
	var rows []frameRow
	if err := s.db.SelectContext(ctx, &rows, selectFrameSQL+` WHERE session_id = ? ORDER BY idx`, sessionID); err != nil {
		return nil, storeErrorf(opFrames, err)
	}
	out := make([]Frame, 0, len(rows))
	for _, r := range rows {
		f, err := r.frame()
		if err != nil {
			return nil, storeErrorf(opFrames, err)
		}
		out = append(out, f)
	}

	return out, nil
}

// Frame returns the frame of a session at a given index.
func (s *Store) Frame(ctx context.Context, sessionID string, index int) (Frame, error) {
	if err := s.acquire(opFrame); err != nil {
		return Frame{}, err
	}
	defer s.mu.RUnlock()

	if err := sessionExists(ctx, s.db, sessionID); err != nil {
		return Frame{}, storeErrorf(opFrame, err)
	}
	var row frameRow
	err := s.db.GetContext(ctx, &row, selectFrameSQL+` WHERE session_id = ? AND idx = ?`, sessionID, index)
	if errors.Is(err, sql.ErrNoRows) {
		return Frame{}, storeErrorf(opFrame, fmt.Errorf("%q index %d: %w", sessionID, index, ErrFrameNotFound))
	}
	if err != nil {
		return Frame{}, storeErrorf(opFrame, err)
	}
	f, err := row.frame()
	if err != nil {
		return Frame{}, storeErrorf(opFrame, err)
	}

	return f, nil
}

// DeleteSession removes a session and all of its frames.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	if err := s.acquire(opDeleteSession); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storeErrorf(opDeleteSession, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM frames WHERE session_id = ?`, id); err != nil {
		return storeErrorf(opDeleteSession, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return storeErrorf(opDeleteSession, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storeErrorf(opDeleteSession, err)
	}
	if n == 0 {
		return storeErrorf(opDeleteSession, fmt.Errorf("%q: %w", id, ErrSessionNotFound))
	}
	if err = tx.Commit(); err != nil {
		return storeErrorf(opDeleteSession, err)
	}
	s.logger.Info("session deleted", "session", id)

	return nil
}
