// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the trustbox API.

# Handler Types

Each handler is a struct holding the ledger:

  - AccountHandler: Identity resolution, profile and transaction log
  - BoxHandler: Box listing, publishing, opening and proof submission
  - VotingHandler: Pending votes and resolution
  - AdminHandler: Ledger statistics and reset

Handlers are created via constructor functions that accept the ledger. The
admin handler also takes the Config for its key salt:

	boxHandler := handlers.NewBoxHandler(l)
	adminHandler := handlers.NewAdminHandler(l, cfg)

# Identity

The caller's account address travels in the X-Account-Address header.
Mutating endpoints provision the account on first sight; read endpoints
only look it up. POST /accounts/connect without the header mints a guest.

# Box Lifecycle

Boxes progress strictly forward: waiting → opened → voting → completed | failed

	POST /boxes            → Publish (escrows the stake)
	POST /boxes/{id}/open  → Open (spends points, reveals the promise)
	POST /boxes/{id}/proof → SubmitProof (publisher only)
	POST /votes/{id}       → Vote (anyone but the publisher)

# Errors

Ledger failures map to HTTP statuses by kind:

	NotFound                               → 404
	InsufficientFunds, InsufficientPoints  → 402
	SelfDealing, PermissionDenied          → 403
	InvalidTransition                      → 409
	InvalidInput, InvalidAmount            → 400
	PersistenceError                       → 500

The kind is also returned in the "kind" field of the error body.

# Admin

POST /ledger/reset requires the X-Admin-Key header. The key is an HMAC of
the reset scope under ADMIN_KEY_SALT; run the server with -print-admin-key
to obtain it.
*/
package handlers
