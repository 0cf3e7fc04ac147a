// SPDX-License-Identifier: MIT

package framestore

import (
	"log/slog"
	"time"
)

// DefaultMaxOpenConns bounds the database/sql pool.
const DefaultMaxOpenConns = 4

// Option configures Open.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	now          func() time.Time
	maxOpenConns int
}

// WithLogger routes store diagnostics to l. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the time source used for Session.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMaxOpenConns sets the connection pool size; values < 1 are ignored.
func WithMaxOpenConns(n int) Option {
	return func(o *options) { o.maxOpenConns = n }
}

func gatherOptions(user ...Option) options {
	o := options{
		logger:       slog.New(slog.DiscardHandler),
		now:          time.Now,
		maxOpenConns: DefaultMaxOpenConns,
	}
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.maxOpenConns < 1 {
		o.maxOpenConns = DefaultMaxOpenConns
	}

	return o
}
