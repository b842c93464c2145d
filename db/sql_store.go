// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/trustbox/models"
)

// SQLStore keeps the snapshot in a relational database. Both the sqlite and
// postgres drivers accept the queries below.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore wraps an open connection and creates the schema.
func NewSQLStore(conn *sql.DB) (*SQLStore, error) {
	if err := CreateSchema(conn); err != nil {
		return nil, err
	}
	return &SQLStore{db: conn}, nil
}

func (s *SQLStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var version int
	var payload []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT version, payload FROM ledger_snapshot WHERE id = 1
	`).Scan(&version, &payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		return nil, err
	}
	if snap.Version != version {
		return nil, fmt.Errorf("snapshot version mismatch: row %d, payload %d", version, snap.Version)
	}
	return snap, nil
}

func (s *SQLStore) Save(ctx context.Context, snap *models.Snapshot) error {
	payload, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ledger_snapshot (id, version, payload, saved_at)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			version = EXCLUDED.version,
			payload = EXCLUDED.payload,
			saved_at = EXCLUDED.saved_at
	`, snap.Version, string(payload), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
