// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the trustbox API server.

trustbox is a promise-box escrow ledger. A publisher stakes currency on a
hidden promise, another account spends points to open it, the publisher
proves fulfillment, and a vote settles the stake: returned on approval,
split between the opener and a burn on rejection.

# Starting the Server

With no configuration the server uses SQLite and needs only a file:

	DATABASE_URL=trustbox.db go run .

Or with flags:

	go run . -p 3318 -t badger -d ./data

# Configuration

  - DATABASE_TYPE (-t): sqlite (default), postgres, badger or memory
  - DATABASE_URL (-d): DSN, file or directory (not needed for memory)
  - PORT (-p): Server port (default: 3318)
  - ADMIN_KEY_SALT (-admin-salt): enables POST /ledger/reset

A .env file is read if present (-env selects another file).
Print the reset key with:

	go run . -print-admin-key

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: accounts, boxes, transaction log, lifecycle and settlement
  - handlers: HTTP request handlers (accounts, boxes, votes, admin)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Domain, request and response types
  - auth: Address normalization, identifiers and admin keys
  - db: Snapshot stores (SQLite, PostgreSQL, Badger, memory)
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
