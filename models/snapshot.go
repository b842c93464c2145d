// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/shopspring/decimal"

// SnapshotVersion is the schema version written by this build.
// Version 0 marks snapshots written before the field existed.
const SnapshotVersion = 1

// Snapshot is the complete ledger state, persisted and loaded as one unit.
type Snapshot struct {
	Version      int                 `json:"version"`
	Accounts     map[string]*Account `json:"accounts"`
	Boxes        []*Box              `json:"boxes"` // newest first
	Transactions []TransactionRecord `json:"transactions"`
	Burnt        decimal.Decimal     `json:"burnt"`
	Seq          uint64              `json:"seq"`
}

// NewSnapshot returns an empty snapshot at the current version.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Version:      SnapshotVersion,
		Accounts:     make(map[string]*Account),
		Boxes:        []*Box{},
		Transactions: []TransactionRecord{},
	}
}

// Clone returns a deep copy that shares no mutable state with s.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Version:      s.Version,
		Accounts:     make(map[string]*Account, len(s.Accounts)),
		Boxes:        make([]*Box, len(s.Boxes)),
		Transactions: make([]TransactionRecord, len(s.Transactions)),
		Burnt:        s.Burnt,
		Seq:          s.Seq,
	}
	for addr, a := range s.Accounts {
		c.Accounts[addr] = a.Clone()
	}
	for i, b := range s.Boxes {
		c.Boxes[i] = b.Clone()
	}
	copy(c.Transactions, s.Transactions)
	return c
}
