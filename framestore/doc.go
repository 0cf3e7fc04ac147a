// SPDX-License-Identifier: MIT

// Package framestore persists reconstruction sessions and their snapshots in
// a SQLite database (pure-Go driver modernc.org/sqlite, accessed through sqlx).
//
// A Session describes one run: the data shape, the number of components and
// the block size. Each reconstruct.Step of the run is stored as a Frame whose
// accumulator is kept as a little-endian float64 BLOB, so reloaded snapshots
// are bit-identical to the ones produced.
//
// Schema:
//
//	sessions(id TEXT PK, created_at INTEGER, samples, features, components, block_size, label, mean BLOB)
//	frames(session_id TEXT, idx INTEGER, consumed, n_rows, n_cols, data BLOB, PK(session_id, idx))
//
// A Store is safe for concurrent use; every blocking call takes a context.
package framestore
