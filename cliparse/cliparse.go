package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/trustbox/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	// AdminKeySalt signs the ledger reset key. Empty disables reset.
	AdminKeySalt  string
	EnvFile       string
	PrintAdminKey bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("trustbox", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL, file path or directory")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres, badger or memory)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	fs.StringVar(&cfg.EnvFile, "env", "", "Load environment from this file instead of .env")
	fs.BoolVar(&cfg.PrintAdminKey, "print-admin-key", false, "Print the ledger reset key and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables already set
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return Config{}, fmt.Errorf("failed to load env file %s: %w", cfg.EnvFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		// a missing .env is fine; a broken one is not
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	switch cfg.DatabaseType {
	case db.TypeSQLite, db.TypePostgres, db.TypeBadger, db.TypeMemory:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != db.TypeMemory {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.PrintAdminKey && cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required to print the admin key")
	}

	return cfg, nil
}
