// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

// Package sqlitepool provides a fixed-size pool of SQLite connections
// with the pragmas the run catalog expects.
//
// The pool is built on zombiezen's sqlitex.Pool and exposes the same
// Take/Put API. Callers [Pool.Take] a connection, perform work, and
// [Pool.Put] it back. The pool is safe for concurrent use; individual
// connections are not, so each goroutine holds its own connection for
// the duration of its work.
//
// Every connection is initialized with journal_mode=WAL (readers never
// block the single writer), synchronous=NORMAL (transactions survive a
// process crash; the run directories on disk remain the source of
// truth), busy_timeout=5000, foreign_keys=ON (the streams table
// references runs), and temp_store=MEMORY. Config.OnConnect runs after
// the pragmas, once per connection, for schema creation.
//
// Usage:
//
//	pool, err := sqlitepool.Open(sqlitepool.Config{
//	    Path:   "runs/catalog.db",
//	    Logger: logger,
//	    OnConnect: func(conn *sqlite.Conn) error {
//	        return sqlitex.ExecuteScript(conn, schema, nil)
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	conn, err := pool.Take(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Put(conn)
package sqlitepool
