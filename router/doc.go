// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the trustbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(l, cfg)

# Endpoints

Health:

	GET /health

Accounts (identity in X-Account-Address):

	POST /accounts/connect         - Resolve or create the caller's account
	GET  /accounts/me              - Balance, points, medals, reputation
	GET  /accounts/me/transactions - Transaction log, newest first

Boxes:

	GET  /boxes            - All boxes, newest first (?status= filter)
	GET  /boxes/{id}       - One box
	POST /boxes            - Publish (escrows the stake)
	POST /boxes/{id}/open  - Open (spends points)
	POST /boxes/{id}/proof - Submit fulfillment proof (publisher only)
	POST /blobs            - Get a reference for an uploaded image

The hidden promise is only shown to the publisher and the opener.

Votes:

	GET  /votes      - Boxes awaiting a vote
	POST /votes/{id} - Approve or reject

Ledger:

	GET  /ledger/stats - Supply, escrow, burnt value and box counts
	POST /ledger/reset - Reseed (requires X-Admin-Key)

# Handler Initialization

The router creates handler instances with dependency injection:

	accountHandler := handlers.NewAccountHandler(l)
	boxHandler := handlers.NewBoxHandler(l)
	votingHandler := handlers.NewVotingHandler(l)
	adminHandler := handlers.NewAdminHandler(l, cfg)

All handlers share the one ledger; only the admin handler needs the configuration.
*/
package router
