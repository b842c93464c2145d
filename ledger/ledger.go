// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/danielhkuo/trustbox/auth"
	"github.com/danielhkuo/trustbox/db"
	"github.com/danielhkuo/trustbox/models"
)

// Options customize a Ledger. Zero values select the defaults.
type Options struct {
	Logger   *slog.Logger
	Now      func() time.Time
	NewBoxID func() string
	NewTxID  func() string
}

// Ledger is the single-writer authority over accounts, boxes and the
// transaction log. Every mutating call runs to completion under one lock,
// including the durable save.
type Ledger struct {
	mu      sync.RWMutex
	snap    *models.Snapshot
	gateway *Gateway
	log     *slog.Logger

	now      func() time.Time
	newBoxID func() string
	newTxID  func() string
}

// New loads the ledger from store, seeding it on first use.
func New(ctx context.Context, store db.Store, opts Options) (*Ledger, error) {
	l := &Ledger{
		log:      opts.Logger,
		now:      opts.Now,
		newBoxID: opts.NewBoxID,
		newTxID:  opts.NewTxID,
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	if l.now == nil {
		l.now = time.Now
	}
	if l.newBoxID == nil {
		l.newBoxID = auth.NewBoxID
	}
	if l.newTxID == nil {
		l.newTxID = auth.NewTxID
	}
	l.gateway = NewGateway(store, l.log)

	snap, seeded, err := l.gateway.LoadOrInit(ctx)
	if err != nil {
		return nil, err
	}
	l.snap = snap
	l.log.Info("ledger loaded",
		"seeded", seeded,
		"accounts", len(snap.Accounts),
		"boxes", len(snap.Boxes),
		"transactions", len(snap.Transactions),
	)
	return l, nil
}

// mutate runs fn against a working copy of the snapshot and commits it only
// if fn succeeds and the copy is saved. On any failure the canonical state
// is left exactly as it was.
func (l *Ledger) mutate(ctx context.Context, fn func(st *state) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := &state{
		snap:     l.snap.Clone(),
		now:      l.now().UTC(),
		newBoxID: l.newBoxID,
		newTxID:  l.newTxID,
	}
	if err := fn(st); err != nil {
		return err
	}
	// an operation that got this far is not cancellable
	if err := l.gateway.Save(context.WithoutCancel(ctx), st.snap); err != nil {
		return err
	}
	l.snap = st.snap
	return nil
}

// Profile returns a copy of the account.
func (l *Ledger) Profile(address string) (models.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	a, ok := l.snap.Accounts[address]
	if !ok {
		return models.Account{}, newError(KindNotFound, "profile", "account %s not found", address)
	}
	return *a.Clone(), nil
}

// ListBoxes returns every box, newest first.
func (l *Ledger) ListBoxes() []models.Box {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return listAll(l.snap)
}

// ListVoting returns the boxes waiting for a resolution vote, newest first.
func (l *Ledger) ListVoting() []models.Box {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return listByStatus(l.snap, models.BoxVoting)
}

// Box returns a single box.
func (l *Ledger) Box(id string) (models.Box, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, b := range l.snap.Boxes {
		if b.ID == id {
			return *b.Clone(), nil
		}
	}
	return models.Box{}, newError(KindNotFound, "box", "box %s not found", id)
}

// Transactions returns the account's log entries, most recent first.
func (l *Ledger) Transactions(address string) []models.TransactionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return queryByAccount(l.snap, address)
}

// Publish escrows the stake and creates a WAITING box.
func (l *Ledger) Publish(ctx context.Context, caller string, p PublishParams) (models.Box, error) {
	var out models.Box
	err := l.mutate(ctx, func(st *state) error {
		b, err := st.publish("publish", caller, p)
		if err != nil {
			return err
		}
		out = *b.Clone()
		return nil
	})
	if err != nil {
		return models.Box{}, err
	}

	l.log.Info("box published",
		"box_id", out.ID,
		"publisher", caller,
		"stake", out.Stake.String(),
		"points_cost", out.PointsCost,
		"surprise_score", out.SurpriseScore,
	)
	return out, nil
}

// Open spends the caller's points to reveal a WAITING box.
func (l *Ledger) Open(ctx context.Context, caller, boxID string) (models.Box, error) {
	var out models.Box
	err := l.mutate(ctx, func(st *state) error {
		b, err := st.open("open", caller, boxID)
		if err != nil {
			return err
		}
		out = *b.Clone()
		return nil
	})
	if err != nil {
		return models.Box{}, err
	}

	l.log.Info("box opened", "box_id", boxID, "opener", caller, "points_cost", out.PointsCost)
	return out, nil
}

// SubmitProof attaches the publisher's fulfillment proof and opens voting.
func (l *Ledger) SubmitProof(ctx context.Context, caller, boxID, proofRef string) (models.Box, error) {
	var out models.Box
	err := l.mutate(ctx, func(st *state) error {
		b, err := st.submitProof("submit_proof", caller, boxID, proofRef)
		if err != nil {
			return err
		}
		out = *b.Clone()
		return nil
	})
	if err != nil {
		return models.Box{}, err
	}

	l.log.Info("proof submitted", "box_id", boxID, "publisher", caller)
	return out, nil
}

// Vote resolves a VOTING box. A single vote is final.
func (l *Ledger) Vote(ctx context.Context, caller, boxID string, approve bool) (models.Settlement, error) {
	var out models.Settlement
	err := l.mutate(ctx, func(st *state) error {
		s, err := st.resolve("vote", caller, boxID, approve)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return models.Settlement{}, err
	}

	l.log.Info("box resolved",
		"box_id", boxID,
		"voter", caller,
		"approved", approve,
		"returned", out.Returned.String(),
		"to_opener", out.ToOpener.String(),
		"burnt", out.Burnt.String(),
	)
	return out, nil
}

// Reset discards all state and reseeds the ledger.
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := seedSnapshot()
	if err := l.gateway.Save(context.WithoutCancel(ctx), snap); err != nil {
		return err
	}
	l.snap = snap
	l.log.Warn("ledger reset to seed data")
	return nil
}

// Stats summarizes where value sits in the ledger.
func (l *Ledger) Stats() models.LedgerStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := models.LedgerStats{
		Accounts:      len(l.snap.Accounts),
		Boxes:         len(l.snap.Boxes),
		Transactions:  len(l.snap.Transactions),
		Circulating:   decimal.Zero,
		Escrowed:      decimal.Zero,
		Burnt:         l.snap.Burnt,
		BoxesByStatus: make(map[models.BoxStatus]int),
	}
	for _, a := range l.snap.Accounts {
		stats.Circulating = stats.Circulating.Add(a.Balance)
	}
	for _, b := range l.snap.Boxes {
		stats.BoxesByStatus[b.Status]++
		if !b.Status.Terminal() {
			stats.Escrowed = stats.Escrowed.Add(b.Stake)
		}
	}
	return stats
}
