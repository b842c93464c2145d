// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/trustbox/models"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Store persists the whole ledger snapshot as one unit.
type Store interface {
	// Load returns the last saved snapshot, or ErrNoSnapshot.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save atomically replaces the stored snapshot.
	Save(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

// EncodeSnapshot serializes a snapshot to its durable JSON form.
func EncodeSnapshot(snap *models.Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot written by EncodeSnapshot.
func DecodeSnapshot(data []byte) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &snap, nil
}
