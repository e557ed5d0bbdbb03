// Copyright 2026 The Robolog Authors
// SPDX-License-Identifier: Apache-2.0

package sqlitepool

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(Config{})
	if err == nil || !strings.Contains(err.Error(), "Path is required") {
		t.Errorf("Open without a path returned %v", err)
	}
}

func TestTakePutRoundTrip(t *testing.T) {
	pool, err := Open(Config{
		Path:     filepath.Join(t.TempDir(), "pool.db"),
		PoolSize: 2,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteTransient(conn, "CREATE TABLE IF NOT EXISTS kv (v INTEGER)", nil)
		},
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()

	conn, err := pool.Take(ctx)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	err = sqlitex.ExecuteTransient(conn, "INSERT INTO kv (v) VALUES (?)",
		&sqlitex.ExecOptions{Args: []any{42}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	var got int64
	err = sqlitex.ExecuteTransient(conn, "SELECT v FROM kv", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			got = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got != 42 {
		t.Errorf("read back %d, want 42", got)
	}

	var foreignKeys int64
	err = sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			foreignKeys = stmt.ColumnInt64(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if foreignKeys != 1 {
		t.Errorf("foreign_keys pragma = %d, want 1", foreignKeys)
	}

	pool.Put(conn)
	pool.Put(nil)

	if err := pool.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestOnConnectErrorSurfacesFromTake(t *testing.T) {
	pool, err := Open(Config{
		Path:     filepath.Join(t.TempDir(), "pool.db"),
		PoolSize: 1,
		OnConnect: func(*sqlite.Conn) error {
			return errors.New("bad schema")
		},
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer pool.Close()

	_, err = pool.Take(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bad schema") {
		t.Errorf("Take with failing OnConnect returned %v", err)
	}
}
