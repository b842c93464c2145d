// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeBadger   = "badger"
	TypeMemory   = "memory"
)

// Open returns the snapshot store for a database type. For sqlite and
// postgres url is a DSN; for badger it is a directory; memory ignores it.
func Open(dbType, url string) (Store, error) {
	switch dbType {
	case TypeSQLite, TypePostgres:
		conn, err := sql.Open(dbType, url)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if dbType == TypeSQLite {
			// one writer at a time avoids SQLITE_BUSY
			conn.SetMaxOpenConns(1)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("database ping failed: %w", err)
		}
		store, err := NewSQLStore(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return store, nil
	case TypeBadger:
		return NewBadgerStore(url)
	case TypeMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", dbType)
}
