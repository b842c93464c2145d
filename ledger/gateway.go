// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielhkuo/trustbox/db"
	"github.com/danielhkuo/trustbox/models"
)

// Gateway moves whole snapshots between the ledger and a durable store.
type Gateway struct {
	store db.Store
	log   *slog.Logger
}

func NewGateway(store db.Store, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{store: store, log: log}
}

// LoadOrInit returns the stored snapshot. When the store is empty it seeds
// the initial dataset and persists it before returning. The bool reports
// whether seeding happened.
func (g *Gateway) LoadOrInit(ctx context.Context) (*models.Snapshot, bool, error) {
	snap, err := g.store.Load(ctx)
	if errors.Is(err, db.ErrNoSnapshot) {
		snap = seedSnapshot()
		if err := g.Save(ctx, snap); err != nil {
			return nil, false, err
		}
		g.log.Info("ledger seeded", "accounts", len(snap.Accounts), "boxes", len(snap.Boxes))
		return snap, true, nil
	}
	if err != nil {
		return nil, false, &Error{Kind: KindPersistence, Op: "load", Msg: "failed to load snapshot", Err: err}
	}

	snap, err = upgrade(snap)
	if err != nil {
		return nil, false, err
	}
	return snap, false, nil
}

// Save persists snap as the new durable state. Any store failure is
// reported as a persistence error.
func (g *Gateway) Save(ctx context.Context, snap *models.Snapshot) error {
	snap.Version = models.SnapshotVersion
	if err := g.store.Save(ctx, snap); err != nil {
		g.log.Error("failed to persist snapshot", "error", err)
		return &Error{Kind: KindPersistence, Op: "save", Msg: "failed to persist snapshot", Err: err}
	}
	return nil
}

// upgrade brings an older snapshot to the current schema in memory.
func upgrade(snap *models.Snapshot) (*models.Snapshot, error) {
	if snap.Version > models.SnapshotVersion {
		return nil, newError(KindPersistence, "load", "snapshot version %d is newer than supported version %d",
			snap.Version, models.SnapshotVersion)
	}

	// version 0 predates explicit versioning and may miss collections
	if snap.Accounts == nil {
		snap.Accounts = make(map[string]*models.Account)
	}
	if snap.Boxes == nil {
		snap.Boxes = []*models.Box{}
	}
	if snap.Transactions == nil {
		snap.Transactions = []models.TransactionRecord{}
	}
	for _, a := range snap.Accounts {
		if a.Medals == nil {
			a.Medals = []models.Medal{}
		}
	}
	if n := uint64(len(snap.Transactions)); snap.Seq < n {
		snap.Seq = n
	}
	snap.Version = models.SnapshotVersion
	return snap, nil
}
