// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db provides the durable stores behind the ledger's persistence gateway.

# Stores

Every backend implements Store, which saves and loads the full ledger
snapshot as one unit. There is no partial or incremental persistence.

	store, err := db.Open(db.TypeSQLite, "file:trustbox.db")
	snap, err := store.Load(ctx)   // db.ErrNoSnapshot when empty
	err = store.Save(ctx, snap)

Backends:

  - sqlite (default): modernc.org/sqlite, pure Go
  - postgres: github.com/lib/pq
  - badger: embedded key-value store in a directory
  - memory: process memory, for tests and throwaway demos

# Schema

The SQL backends share one table, created by CreateSchema:

  - ledger_snapshot: a single row (id = 1) holding the version and JSON payload

Safe to call multiple times - uses IF NOT EXISTS.

# Encoding

Snapshots are stored as JSON (EncodeSnapshot / DecodeSnapshot). Version
checks and upgrades happen in the ledger package, not here.
*/
package db
