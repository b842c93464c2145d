// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default), postgres, badger or memory
  - DatabaseURL: connection string, file or directory (required unless memory)
  - AdminKeySalt: Secret for the ledger reset key (optional; empty disables reset)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-admin-salt       Admin key salt
	-env              Env file to load instead of .env
	-print-admin-key  Print the reset key and exit

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	ADMIN_KEY_SALT → -admin-salt

A .env file in the working directory is loaded first if present. It never
overrides variables that are already set. CLI flags take precedence over
both.
*/
package cliparse
