// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the ledger and its API.

# Request Types

Types for parsing incoming JSON:

  - PublishBoxRequest: description, promise_content, stake, preview_ref
  - SubmitProofRequest: proof_ref
  - VoteRequest: approve

# Response Types

Types for JSON responses:

  - ConnectResponse: address, is_new
  - BoxesResponse, TransactionsResponse, VotesResponse: list wrappers
  - VoteResponse: box_id, status, settlement
  - BlobHandleResponse: ref
  - ErrorResponse: error, message, kind

# Domain Types

  - Account: balances, points, medals and activity counters
  - Box: a staked promise and its lifecycle state
  - Settlement: how a resolved stake was split
  - TransactionRecord: one append-only log entry
  - Snapshot: the full ledger state, persisted as one unit
  - LedgerStats: value held by the ledger

# Box Lifecycle

Status values advance strictly forward:

	BoxWaiting → BoxOpened → BoxVoting → BoxCompleted | BoxFailed

BoxStatus.Precedes reports whether a transition is a legal single step.

# Snapshot Versions

Snapshot.Version is stamped with SnapshotVersion on every save. Loaders
treat version 0 as a snapshot written before versioning existed.
*/
package models
